package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RecordType is an ordered, immutable set of field definitions describing one
// kind of wire payload.
type RecordType struct {
	name   string
	fields []*Field
	index  map[string]*Field
}

// NewRecordType declares a record type. It fails if field names or wire
// names collide or if a field is incompletely declared. Nested record types
// must be declared beforehand, so a record type can never contain itself.
func NewRecordType(name string, fields ...*Field) (*RecordType, error) {
	recordType := &RecordType{
		name:   name,
		fields: make([]*Field, 0, len(fields)),
		index:  make(map[string]*Field, len(fields)),
	}

	wireNames := make(map[string]bool, len(fields))

	for _, declared := range fields {
		if err := declared.validate(); err != nil {
			return nil, fmt.Errorf("invalid record type [%v]: %v", name, err)
		}

		if _, exists := recordType.index[declared.name]; exists {
			return nil, fmt.Errorf(
				"invalid record type [%v]: duplicate field [%v]",
				name,
				declared.name,
			)
		}

		if wireNames[declared.WireName()] {
			return nil, fmt.Errorf(
				"invalid record type [%v]: duplicate wire name [%v]",
				name,
				declared.WireName(),
			)
		}

		// Copy so that later builder calls cannot alter the declaration.
		field := *declared
		field.allowedValues = append([]string(nil), declared.allowedValues...)
		field.nilIf = append([]string(nil), declared.nilIf...)
		field.layouts = append([]string(nil), declared.layouts...)

		recordType.fields = append(recordType.fields, &field)
		recordType.index[field.name] = &field
		wireNames[field.WireName()] = true
	}

	return recordType, nil
}

// MustRecordType is like NewRecordType but panics on an invalid declaration.
// It is meant for package-level record type variables.
func MustRecordType(name string, fields ...*Field) *RecordType {
	recordType, err := NewRecordType(name, fields...)
	if err != nil {
		panic(err)
	}

	return recordType
}

func (rt *RecordType) Name() string {
	return rt.name
}

func (rt *RecordType) Fields() []*Field {
	fields := make([]*Field, len(rt.fields))
	copy(fields, rt.fields)
	return fields
}

func (rt *RecordType) Field(name string) (*Field, bool) {
	field, ok := rt.index[name]
	return field, ok
}

// Decode builds a record from its wire mapping, running the typecaster of
// every declared field. Keys without a matching field are ignored.
func (rt *RecordType) Decode(raw Raw) (*Record, error) {
	record := &Record{
		recordType: rt,
		values:     make(map[string]interface{}, len(rt.fields)),
		formats:    make(map[string]*timeFormat),
	}

	for _, field := range rt.fields {
		rawValue, ok := raw[field.WireName()]
		if !ok {
			continue
		}

		value, format, err := decodeField(field, rawValue, raw)
		if err != nil {
			return nil, rt.decodeError(field, rawValue, err)
		}

		if value != nil {
			record.values[field.name] = value
		}

		if format != nil {
			record.formats[field.name] = format
		}
	}

	return record, nil
}

// New builds a record from Go values keyed by field name. Values go through
// the same typecasters as wire input, so already typed values (time.Time,
// *Record, ...) and raw values are both accepted.
func (rt *RecordType) New(values map[string]interface{}) (*Record, error) {
	raw := make(Raw, len(values))

	for name, value := range values {
		field, ok := rt.index[name]
		if !ok {
			return nil, &DecodeError{
				Record: rt.name,
				Field:  name,
				Value:  value,
				Reason: "unknown field",
			}
		}

		raw[field.WireName()] = value
	}

	return rt.Decode(raw)
}

func (rt *RecordType) decodeError(
	field *Field,
	value interface{},
	err error,
) *DecodeError {
	path := field.name

	var entryErr *listEntryError
	if errors.As(err, &entryErr) {
		path = fmt.Sprintf("%v[%v]", field.name, entryErr.index)
		err = entryErr.err
	}

	var nestedErr *DecodeError
	if errors.As(err, &nestedErr) {
		return &DecodeError{
			Record: rt.name,
			Field:  path + "." + nestedErr.Field,
			Value:  nestedErr.Value,
			Reason: nestedErr.Reason,
		}
	}

	return &DecodeError{
		Record: rt.name,
		Field:  path,
		Value:  value,
		Reason: err.Error(),
	}
}

// Record is a fully validated instance of a record type. Absent fields have
// no value at all rather than a zero value. Dates and times keep the layout
// they were read with.
type Record struct {
	recordType *RecordType
	values     map[string]interface{}
	formats    map[string]*timeFormat
}

func (r *Record) Type() *RecordType {
	return r.recordType
}

// Encode returns the wire mapping of the present fields.
func (r *Record) Encode() Raw {
	raw := make(Raw, len(r.values))

	for _, field := range r.recordType.fields {
		value, ok := r.values[field.name]
		if !ok {
			continue
		}

		raw[field.WireName()] = encodeField(field, value, r.formats[field.name])
	}

	return raw
}

// Fields returns the typed values of the present fields keyed by name.
func (r *Record) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(r.values))
	for name, value := range r.values {
		fields[name] = value
	}

	return fields
}

func (r *Record) Has(name string) bool {
	r.mustField(name)
	_, ok := r.values[name]
	return ok
}

func (r *Record) Value(name string) (interface{}, bool) {
	r.mustField(name)
	value, ok := r.values[name]
	return value, ok
}

func (r *Record) Bool(name string) bool {
	value, _ := r.typed(name, KindBoolean).(bool)
	return value
}

func (r *Record) String(name string) string {
	value, _ := r.typed(name, KindString).(string)
	return value
}

func (r *Record) Int(name string) int64 {
	value, _ := r.typed(name, KindInteger).(int64)
	return value
}

func (r *Record) Float(name string) float64 {
	value, _ := r.typed(name, KindFloat).(float64)
	return value
}

func (r *Record) Symbol(name string) string {
	value, _ := r.typed(name, KindSymbol).(string)
	return value
}

// Time returns the value of a date or time field.
func (r *Record) Time(name string) time.Time {
	field := r.mustField(name)
	if field.kind != KindDate && field.kind != KindTime {
		panic(fmt.Sprintf("field [%v] is not a date or time", name))
	}

	value, _ := r.values[name].(time.Time)
	return value
}

func (r *Record) Record(name string) *Record {
	value, _ := r.typed(name, KindRecord).(*Record)
	return value
}

func (r *Record) Records(name string) []*Record {
	value, _ := r.typed(name, KindRecordList).([]*Record)
	return value
}

func (r *Record) typed(name string, kind Kind) interface{} {
	field := r.mustField(name)
	if field.kind != kind {
		panic(fmt.Sprintf("field [%v] is not a %v", name, kind))
	}

	return r.values[name]
}

func (r *Record) mustField(name string) *Field {
	field, ok := r.recordType.index[name]
	if !ok {
		panic(fmt.Sprintf(
			"unknown field [%v] of record type [%v]",
			name,
			r.recordType.name,
		))
	}

	return field
}

// Key returns a canonical representation of the record's type and decoded
// values. Two records have the same key exactly when they are structurally
// equal.
func (r *Record) Key() string {
	canonical := r.canonical()

	key, err := json.Marshal(canonical)
	if err != nil {
		// fmt prints maps with sorted keys, so the key stays canonical.
		return r.recordType.name + fmt.Sprintf("%v", canonical)
	}

	return r.recordType.name + string(key)
}

func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}

	return r.Key() == other.Key()
}

func (r *Record) canonical() map[string]interface{} {
	canonical := make(map[string]interface{}, len(r.values))

	for name, value := range r.values {
		switch typed := value.(type) {
		case time.Time:
			canonical[name] = typed.Format(time.RFC3339Nano)
		case *Record:
			canonical[name] = typed.canonical()
		case []*Record:
			entries := make([]interface{}, len(typed))
			for i, entry := range typed {
				entries[i] = entry.canonical()
			}
			canonical[name] = entries
		default:
			canonical[name] = value
		}
	}

	return canonical
}

func (r *Record) GoString() string {
	return fmt.Sprintf("%v%v", r.recordType.name, r.Fields())
}
