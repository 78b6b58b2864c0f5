package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Raw is the wire representation of a record: a JSON-like mapping with
// camel-cased keys.
type Raw = map[string]interface{}

type Kind int

const (
	KindBoolean Kind = iota
	KindString
	KindInteger
	KindFloat
	KindSymbol
	KindDate
	KindTime
	KindRecord
	KindRecordList
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindSymbol:
		return "symbol"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindRecord:
		return "record"
	case KindRecordList:
		return "record list"
	default:
		panic("unknown field kind")
	}
}

// LayoutEpochMillis is a pseudo layout for time fields transmitted as
// milliseconds since the Unix epoch. It never takes a zone offset.
const LayoutEpochMillis = "epoch-ms"

// LayoutDateTime is the timestamp layout used by most history endpoints.
const LayoutDateTime = "2006-01-02T15:04:05"

// ZoneResolver computes the zone offset (e.g. "+0100") of a time field from
// the raw mapping of the record being decoded.
type ZoneResolver func(siblings Raw) (string, error)

// Field describes one named, typed and validated member of a record type.
// Fields are built with the kind constructors below and are frozen once
// passed to NewRecordType.
type Field struct {
	name          string
	wireName      string
	kind          Kind
	regex         *regexp.Regexp
	allowedValues []string
	nilIf         []string
	layouts       []string
	zone          string
	zoneResolver  ZoneResolver
	recordType    *RecordType
}

func Boolean(name string) *Field {
	return &Field{name: name, kind: KindBoolean}
}

func String(name string) *Field {
	return &Field{name: name, kind: KindString}
}

func Integer(name string) *Field {
	return &Field{name: name, kind: KindInteger}
}

func Float(name string) *Field {
	return &Field{name: name, kind: KindFloat}
}

// Symbol declares an enumerated field. Allowed values are compared after
// lower-casing; no values means any token is accepted.
func Symbol(name string, allowedValues ...string) *Field {
	normalized := make([]string, len(allowedValues))
	for i, value := range allowedValues {
		normalized[i] = strings.ToLower(value)
	}

	return &Field{name: name, kind: KindSymbol, allowedValues: normalized}
}

// Date declares a calendar date field parsed with the first matching layout.
func Date(name string, layouts ...string) *Field {
	return &Field{name: name, kind: KindDate, layouts: layouts}
}

// Time declares a timestamp field parsed with the first matching layout.
// Unless a zone is set with InZone or ZoneFrom, values are read as UTC.
func Time(name string, layouts ...string) *Field {
	return &Field{name: name, kind: KindTime, layouts: layouts}
}

func Nested(name string, recordType *RecordType) *Field {
	return &Field{name: name, kind: KindRecord, recordType: recordType}
}

func List(name string, recordType *RecordType) *Field {
	return &Field{name: name, kind: KindRecordList, recordType: recordType}
}

// Matching restricts a string field to values matching the expression.
func (f *Field) Matching(regex *regexp.Regexp) *Field {
	f.regex = regex
	return f
}

// NilIf makes the given textual values of a date or time field decode as
// absent.
func (f *Field) NilIf(values ...string) *Field {
	f.nilIf = values
	return f
}

// InZone sets a fixed zone offset such as "+0000" or "-0500".
func (f *Field) InZone(offset string) *Field {
	f.zone = offset
	return f
}

// ZoneFrom resolves the zone offset per record from sibling raw fields.
func (f *Field) ZoneFrom(resolver ZoneResolver) *Field {
	f.zoneResolver = resolver
	return f
}

// Wire overrides the camel-cased wire key derived from the field name.
func (f *Field) Wire(wireName string) *Field {
	f.wireName = wireName
	return f
}

func (f *Field) Name() string {
	return f.name
}

func (f *Field) Kind() Kind {
	return f.kind
}

// WireName returns the key under which the field travels on the wire.
func (f *Field) WireName() string {
	if len(f.wireName) > 0 {
		return f.wireName
	}

	return CamelCase(f.name)
}

func (f *Field) RecordType() *RecordType {
	return f.recordType
}

var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

func (f *Field) validate() error {
	if !fieldNamePattern.MatchString(f.name) {
		return fmt.Errorf("invalid field name: [%v]", f.name)
	}

	if f.regex != nil && f.kind != KindString {
		return fmt.Errorf("field [%v]: regex is only valid on strings", f.name)
	}

	if len(f.allowedValues) > 0 && f.kind != KindSymbol {
		return fmt.Errorf(
			"field [%v]: allowed values are only valid on symbols",
			f.name,
		)
	}

	isTemporal := f.kind == KindDate || f.kind == KindTime

	if isTemporal && len(f.layouts) == 0 {
		return fmt.Errorf("field [%v]: missing %v layout", f.name, f.kind)
	}

	if !isTemporal && (len(f.layouts) > 0 || len(f.nilIf) > 0) {
		return fmt.Errorf(
			"field [%v]: layouts and blank values are only valid "+
				"on dates and times",
			f.name,
		)
	}

	hasZone := len(f.zone) > 0 || f.zoneResolver != nil

	if hasZone && f.kind != KindTime {
		return fmt.Errorf("field [%v]: zone is only valid on times", f.name)
	}

	if len(f.zone) > 0 && f.zoneResolver != nil {
		return fmt.Errorf(
			"field [%v]: fixed zone and zone resolver are exclusive",
			f.name,
		)
	}

	if len(f.zone) > 0 {
		if _, err := parseZoneOffset(f.zone); err != nil {
			return fmt.Errorf("field [%v]: %v", f.name, err)
		}
	}

	isRecord := f.kind == KindRecord || f.kind == KindRecordList

	if isRecord && f.recordType == nil {
		return fmt.Errorf("field [%v]: missing record type", f.name)
	}

	return nil
}

// CamelCase transforms a word-separated lower-case identifier into
// initial-lower camel case: "one_two_three" becomes "oneTwoThree".
func CamelCase(name string) string {
	words := strings.Split(name, "_")

	var builder strings.Builder
	builder.WriteString(words[0])

	for _, word := range words[1:] {
		if len(word) == 0 {
			continue
		}

		builder.WriteString(strings.ToUpper(word[:1]))
		builder.WriteString(word[1:])
	}

	return builder.String()
}
