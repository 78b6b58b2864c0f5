package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// typecaster converts a raw value to its typed form and back. Decoding a nil
// value always yields nil (absent) unless the kind says otherwise.
type typecaster struct {
	decode func(field *Field, value interface{}, siblings Raw) (interface{}, error)
	encode func(field *Field, value interface{}) interface{}
}

var typecasters map[Kind]typecaster

func init() {
	typecasters = map[Kind]typecaster{
		KindBoolean:    {decodeBoolean, encodeIdentity},
		KindString:     {decodeString, encodeIdentity},
		KindInteger:    {decodeInteger, encodeIdentity},
		KindFloat:      {decodeFloat, encodeIdentity},
		KindSymbol:     {decodeSymbol, encodeSymbol},
		KindDate:       {decodeDate, encodeDate},
		KindTime:       {decodeTime, encodeTime},
		KindRecord:     {decodeRecord, encodeRecord},
		KindRecordList: {decodeRecordList, encodeRecordList},
	}
}

func encodeIdentity(_ *Field, value interface{}) interface{} {
	return value
}

func decodeBoolean(
	_ *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case bool:
		return typed, nil
	}

	return nil, fmt.Errorf("invalid boolean value: [%v]", value)
}

func decodeString(
	field *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	text := stringify(value)

	if field.regex != nil && !field.regex.MatchString(text) {
		return nil, fmt.Errorf("invalid string value: [%v]", text)
	}

	return text, nil
}

// decodeInteger extracts the integer value of the leading numeric content:
// "42abc" is 42 and "1.5" is 1. A value without leading digits is rejected.
func decodeInteger(
	_ *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case int:
		return int64(typed), nil
	case int64:
		return typed, nil
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return nil, fmt.Errorf("invalid integer value: [%v]", value)
		}
	}

	text := strings.TrimLeft(stringify(value), " \t\n")

	end := 0
	if end < len(text) && (text[end] == '-' || text[end] == '+') {
		end++
	}

	digitsStart := end
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return nil, fmt.Errorf("invalid integer value: [%v]", value)
	}

	integer, err := strconv.ParseInt(text[:end], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer value: [%v]", value)
	}

	return integer, nil
}

func decodeFloat(
	_ *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return nil, fmt.Errorf("invalid float value: [%v]", value)
		}

		return typed, nil
	case int:
		return float64(typed), nil
	case int64:
		return float64(typed), nil
	case json.Number:
		return parseFloat(typed.String())
	case string:
		if len(typed) == 0 {
			return nil, nil
		}

		return parseFloat(typed)
	}

	return nil, fmt.Errorf("invalid float value: [%v]", value)
}

func parseFloat(text string) (interface{}, error) {
	float, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(float) || math.IsInf(float, 0) {
		return nil, fmt.Errorf("invalid float value: [%v]", text)
	}

	return float, nil
}

func decodeSymbol(
	field *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	token := strings.ToLower(stringify(value))

	if len(field.allowedValues) == 0 {
		return token, nil
	}

	for _, allowed := range field.allowedValues {
		if token == allowed {
			return token, nil
		}
	}

	return nil, fmt.Errorf("invalid value: [%v]", token)
}

func encodeSymbol(_ *Field, value interface{}) interface{} {
	return strings.ToUpper(value.(string))
}

// timeFormat is the way a date or time value was written on the wire.
type timeFormat struct {
	layout    string
	upperCase bool
}

func newTimeFormat(layout string, parsed time.Time, text string) *timeFormat {
	format := &timeFormat{layout: layout}

	if layout != LayoutEpochMillis {
		formatted := parsed.Format(layout)
		format.upperCase = formatted != text && strings.ToUpper(formatted) == text
	}

	return format
}

func (f *Field) defaultTimeFormat() *timeFormat {
	return &timeFormat{layout: f.layouts[0]}
}

func decodeDate(
	field *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	date, _, err := parseDate(field, value)
	return date, err
}

func parseDate(
	field *Field,
	value interface{},
) (interface{}, *timeFormat, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil, nil
	case time.Time:
		year, month, day := typed.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil, nil
	case string:
		if field.isBlank(typed) {
			return nil, nil, nil
		}

		for _, layout := range field.layouts {
			if date, err := time.Parse(layout, typed); err == nil {
				return date, newTimeFormat(layout, date, typed), nil
			}
		}

		return nil, nil, fmt.Errorf("failed parsing date: [%v]", typed)
	}

	return nil, nil, fmt.Errorf("invalid date value: [%v]", value)
}

func encodeDate(field *Field, value interface{}) interface{} {
	return formatDate(value.(time.Time), field.defaultTimeFormat())
}

func formatDate(date time.Time, format *timeFormat) string {
	formatted := date.Format(format.layout)
	if format.upperCase {
		return strings.ToUpper(formatted)
	}

	return formatted
}

func decodeTime(
	field *Field,
	value interface{},
	siblings Raw,
) (interface{}, error) {
	timestamp, _, err := parseTime(field, value, siblings)
	return timestamp, err
}

func parseTime(
	field *Field,
	value interface{},
	siblings Raw,
) (interface{}, *timeFormat, error) {
	var text string

	switch typed := value.(type) {
	case nil:
		return nil, nil, nil
	case time.Time:
		return typed, nil, nil
	case string:
		text = typed
	case int, int64, json.Number:
		text = stringify(typed)
	case float64:
		if typed != math.Trunc(typed) {
			return nil, nil, fmt.Errorf("invalid time value: [%v]", value)
		}

		text = stringify(typed)
	default:
		return nil, nil, fmt.Errorf("invalid time value: [%v]", value)
	}

	if field.isBlank(text) {
		return nil, nil, nil
	}

	zone, err := field.resolveZone(siblings)
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve time zone: [%v]", err)
	}

	for _, layout := range field.layouts {
		if layout == LayoutEpochMillis {
			millis, err := strconv.ParseInt(text, 10, 64)
			if err == nil {
				parsed := time.UnixMilli(millis).UTC()
				return parsed, newTimeFormat(layout, parsed, text), nil
			}

			continue
		}

		parsed, err := time.Parse(layout+"-0700", text+zone)
		if err == nil {
			return parsed, newTimeFormat(layout, parsed, text), nil
		}
	}

	return nil, nil, fmt.Errorf("failed parsing time: [%v]", text)
}

func encodeTime(field *Field, value interface{}) interface{} {
	return formatTime(field, value.(time.Time), field.defaultTimeFormat())
}

func formatTime(
	field *Field,
	timestamp time.Time,
	format *timeFormat,
) interface{} {
	if format.layout == LayoutEpochMillis {
		return timestamp.UnixMilli()
	}

	if len(field.zone) > 0 {
		location, _ := parseZoneOffset(field.zone)
		timestamp = timestamp.In(location)
	}

	return formatDate(timestamp, format)
}

// decodeField runs the typecaster of the field and, for dates and times
// read from text, reports the layout the value matched.
func decodeField(
	field *Field,
	value interface{},
	siblings Raw,
) (interface{}, *timeFormat, error) {
	switch field.kind {
	case KindDate:
		return parseDate(field, value)
	case KindTime:
		return parseTime(field, value, siblings)
	}

	decoded, err := typecasters[field.kind].decode(field, value, siblings)
	return decoded, nil, err
}

// encodeField is the inverse of decodeField. Dates and times are written in
// the given format, or in the first declared layout if there is none.
func encodeField(
	field *Field,
	value interface{},
	format *timeFormat,
) interface{} {
	if format != nil {
		switch field.kind {
		case KindDate:
			return formatDate(value.(time.Time), format)
		case KindTime:
			return formatTime(field, value.(time.Time), format)
		}
	}

	return typecasters[field.kind].encode(field, value)
}

func (f *Field) resolveZone(siblings Raw) (string, error) {
	if f.zoneResolver != nil {
		zone, err := f.zoneResolver(siblings)
		if err != nil {
			return "", err
		}

		if _, err := parseZoneOffset(zone); err != nil {
			return "", err
		}

		return zone, nil
	}

	if len(f.zone) > 0 {
		return f.zone, nil
	}

	return "+0000", nil
}

func (f *Field) isBlank(text string) bool {
	for _, blank := range f.nilIf {
		if text == blank {
			return true
		}
	}

	return false
}

func decodeRecord(
	field *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case *Record:
		if typed == nil {
			return nil, nil
		}

		if typed.recordType != field.recordType {
			return nil, fmt.Errorf(
				"incorrect record type: [%v]",
				typed.recordType.name,
			)
		}

		return typed, nil
	case map[string]interface{}:
		return field.recordType.Decode(typed)
	}

	return nil, fmt.Errorf("invalid record value: [%v]", value)
}

func encodeRecord(_ *Field, value interface{}) interface{} {
	return value.(*Record).Encode()
}

func decodeRecordList(
	field *Field,
	value interface{},
	_ Raw,
) (interface{}, error) {
	var entries []interface{}

	switch typed := value.(type) {
	case nil:
		return nil, nil
	case []*Record:
		entries = make([]interface{}, len(typed))
		for i, record := range typed {
			entries[i] = record
		}
	case []map[string]interface{}:
		entries = make([]interface{}, len(typed))
		for i, raw := range typed {
			entries[i] = raw
		}
	case []interface{}:
		entries = typed
	default:
		return nil, fmt.Errorf("invalid record list value: [%v]", value)
	}

	records := make([]*Record, len(entries))
	for i, entry := range entries {
		record, err := decodeRecord(field, entry, nil)
		if err != nil {
			return nil, &listEntryError{index: i, err: err}
		}

		if record == nil {
			return nil, &listEntryError{
				index: i,
				err:   fmt.Errorf("missing record"),
			}
		}

		records[i] = record.(*Record)
	}

	return records, nil
}

func encodeRecordList(_ *Field, value interface{}) interface{} {
	records := value.([]*Record)

	encoded := make([]interface{}, len(records))
	for i, record := range records {
		encoded[i] = record.Encode()
	}

	return encoded
}

type listEntryError struct {
	index int
	err   error
}

func (lee *listEntryError) Error() string {
	return fmt.Sprintf("entry [%v]: %v", lee.index, lee.err)
}

func stringify(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprint(value)
	}
}

func parseZoneOffset(offset string) (*time.Location, error) {
	parsed, err := time.Parse("-0700", offset)
	if err != nil {
		return nil, fmt.Errorf("invalid zone offset: [%v]", offset)
	}

	_, seconds := parsed.Zone()

	return time.FixedZone("", seconds), nil
}
