package model

import "fmt"

// DecodeError reports a raw value that does not satisfy its field
// definition. Field is a dotted path for nested records, e.g.
// "details.actions[1].action_type".
type DecodeError struct {
	Record string
	Field  string
	Value  interface{}
	Reason string
}

func (de *DecodeError) Error() string {
	return fmt.Sprintf(
		"could not decode field [%v#%v]: %v",
		de.Record,
		de.Field,
		de.Reason,
	)
}
