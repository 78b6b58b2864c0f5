package model

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var entryType = MustRecordType(
	"Entry",
	String("name"),
	Symbol("side", "buy", "sell"),
)

var sampleType = MustRecordType(
	"Sample",
	Boolean("the_boolean"),
	String("the_string"),
	Integer("the_integer"),
	Float("the_float"),
	Symbol("the_symbol", "two_three", "four"),
	Date("the_date", "2006-01-02"),
	Time("the_time", LayoutDateTime),
	Time("the_epoch", LayoutEpochMillis),
	String("zone"),
	Time("the_zoned_time", LayoutDateTime).ZoneFrom(func(siblings Raw) (string, error) {
		zone, _ := siblings["zone"].(string)
		if len(zone) == 0 {
			return "+0000", nil
		}

		return zone, nil
	}),
	Nested("nested", entryType),
	List("entries", entryType),
	String("renamed").Wire("somethingElse"),
)

const sampleJSON = `{
	"theBoolean": true,
	"theString": "abc",
	"theInteger": 42,
	"theFloat": 1.5,
	"theSymbol": "TWO_THREE",
	"theDate": "2010-10-20",
	"theTime": "2016-03-04T05:06:07",
	"theEpoch": 1457067967000,
	"zone": "+0100",
	"theZonedTime": "2016-03-04T05:06:07",
	"nested": {"name": "inner", "side": "BUY"},
	"entries": [{"name": "a"}, {"name": "b", "side": "SELL"}],
	"somethingElse": "renamed value"
}`

func unmarshalRaw(t *testing.T, text string) Raw {
	var raw Raw
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		t.Fatal(err)
	}

	return raw
}

func TestRecordType_DecodeThenEncodeRoundTrips(t *testing.T) {
	record, err := sampleType.Decode(unmarshalRaw(t, sampleJSON))
	require.NoError(t, err)

	encoded, err := json.Marshal(record.Encode())
	require.NoError(t, err)

	assert.JSONEq(t, sampleJSON, string(encoded))
}

func TestRecordType_DecodeTypesValues(t *testing.T) {
	record, err := sampleType.Decode(unmarshalRaw(t, sampleJSON))
	require.NoError(t, err)

	assert.True(t, record.Bool("the_boolean"))
	assert.Equal(t, "abc", record.String("the_string"))
	assert.Equal(t, int64(42), record.Int("the_integer"))
	assert.Equal(t, 1.5, record.Float("the_float"))
	assert.Equal(t, "two_three", record.Symbol("the_symbol"))
	assert.Equal(t, time.Date(2010, time.October, 20, 0, 0, 0, 0, time.UTC), record.Time("the_date"))
	assert.True(t, time.Date(2016, time.March, 4, 4, 6, 7, 0, time.UTC).Equal(record.Time("the_zoned_time")))
	assert.Equal(t, "inner", record.Record("nested").String("name"))
	assert.Equal(t, "buy", record.Record("nested").Symbol("side"))
	assert.Len(t, record.Records("entries"), 2)
	assert.Equal(t, "sell", record.Records("entries")[1].Symbol("side"))
	assert.Equal(t, "renamed value", record.String("renamed"))
}

func TestRecordType_DecodeSkipsAbsentAndUnmappedKeys(t *testing.T) {
	record, err := sampleType.Decode(Raw{
		"theString":  "abc",
		"theFloat":   "",
		"unknownKey": "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"the_string": "abc"}, record.Fields())
	assert.False(t, record.Has("the_float"))
	assert.Equal(t, Raw{"theString": "abc"}, record.Encode())
}

func TestRecordType_DecodeFailsOnWrongListShape(t *testing.T) {
	_, err := sampleType.Decode(Raw{"entries": "not a list"})

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "Sample", decodeErr.Record)
	assert.Equal(t, "entries", decodeErr.Field)
}

func TestRecordType_DecodeNamesNestedField(t *testing.T) {
	_, err := sampleType.Decode(Raw{
		"entries": []interface{}{
			map[string]interface{}{"side": "BUY"},
			map[string]interface{}{"side": "HOLD"},
		},
	})

	assert.EqualError(
		t,
		err,
		"could not decode field [Sample#entries[1].side]: invalid value: [hold]",
	)

	_, err = sampleType.Decode(Raw{"nested": Raw{"side": "HOLD"}})
	assert.EqualError(
		t,
		err,
		"could not decode field [Sample#nested.side]: invalid value: [hold]",
	)
}

func TestRecordType_DecodeIsAllOrNothing(t *testing.T) {
	record, err := sampleType.Decode(Raw{
		"theString":  "abc",
		"theInteger": "not a number",
	})

	assert.Nil(t, record)
	assert.Error(t, err)
}

func TestRecordType_New(t *testing.T) {
	entry, err := entryType.New(map[string]interface{}{"name": "x", "side": "sell"})
	require.NoError(t, err)

	record, err := sampleType.New(map[string]interface{}{
		"the_time": time.Date(2016, time.March, 4, 5, 6, 7, 0, time.UTC),
		"nested":   entry,
		"entries":  []*Record{entry},
	})
	require.NoError(t, err)

	assert.Equal(
		t,
		Raw{
			"theTime": "2016-03-04T05:06:07",
			"nested":  Raw{"name": "x", "side": "SELL"},
			"entries": []interface{}{Raw{"name": "x", "side": "SELL"}},
		},
		record.Encode(),
	)

	_, err = sampleType.New(map[string]interface{}{"nope": 1})
	assert.Error(t, err)

	_, err = sampleType.New(map[string]interface{}{"nested": record})
	assert.Error(t, err)
}

func TestRecordType_DeclarationErrors(t *testing.T) {
	tests := map[string][]*Field{
		"duplicate field":      {String("a"), Integer("a")},
		"duplicate wire name":  {String("a_b"), String("c").Wire("aB")},
		"date without layout":  {Date("expiry")},
		"time without layout":  {Time("created")},
		"regex on integer":     {Integer("a").Matching(fieldNamePattern)},
		"zone on date":         {Date("a", "2006-01-02").InZone("+0000")},
		"invalid zone":         {Time("a", LayoutDateTime).InZone("GMT")},
		"record without type":  {Nested("child", nil)},
		"camel cased name":     {String("camelCase")},
		"blank values on text": {String("a").NilIf("-")},
	}

	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewRecordType("Invalid", fields...)
			assert.Error(t, err)
		})
	}
}

func TestRecordType_NestsTypesSharingName(t *testing.T) {
	node := MustRecordType("Node", String("name"))
	parent := MustRecordType("Parent", Nested("node", node))

	outer, err := NewRecordType("Node", Nested("parent", parent))
	require.NoError(t, err)

	record, err := outer.Decode(Raw{
		"parent": map[string]interface{}{
			"node": map[string]interface{}{"name": "leaf"},
		},
	})
	require.NoError(t, err)

	assert.Equal(
		t,
		"leaf",
		record.Record("parent").Record("node").String("name"),
	)
}

func TestRecordType_NewTreatsNilRecordAsAbsent(t *testing.T) {
	record, err := sampleType.New(map[string]interface{}{
		"the_string": "abc",
		"nested":     (*Record)(nil),
	})
	require.NoError(t, err)

	assert.False(t, record.Has("nested"))
	assert.Equal(t, Raw{"theString": "abc"}, record.Encode())

	_, err = sampleType.New(map[string]interface{}{
		"entries": []*Record{nil},
	})
	assert.EqualError(
		t,
		err,
		"could not decode field [Sample#entries[0]]: missing record",
	)
}

func TestRecordType_EncodeKeepsMatchedLayout(t *testing.T) {
	periodType := MustRecordType(
		"Period",
		Time("period", LayoutDateTime, "02-Jan-06", "Jan-06"),
		Date("day", "2006-01-02", "02/01/2006"),
		Time("stamp", LayoutEpochMillis, LayoutDateTime),
	)

	tests := map[string]Raw{
		"first layout":         {"period": "2020-12-01T00:00:00", "day": "2020-12-01"},
		"day month year":       {"period": "01-DEC-20", "day": "01/12/2020"},
		"month year":           {"period": "DEC-20"},
		"mixed case month":     {"period": "Dec-20"},
		"epoch milliseconds":   {"stamp": int64(1457067967000)},
		"fallback time layout": {"stamp": "2016-03-04T05:06:07"},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			record, err := periodType.Decode(raw)
			require.NoError(t, err)

			assert.Equal(t, raw, record.Encode())
		})
	}
}

func TestRecordType_NewEncodesInFirstLayout(t *testing.T) {
	periodType := MustRecordType(
		"Period",
		Time("period", LayoutDateTime, "Jan-06"),
	)

	record, err := periodType.New(map[string]interface{}{
		"period": time.Date(2020, time.December, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, Raw{"period": "2020-12-01T00:00:00"}, record.Encode())
}

func TestRecordType_DeclarationIsFrozen(t *testing.T) {
	field := Symbol("side", "buy")
	recordType := MustRecordType("Frozen", field)

	field.Wire("other")

	record, err := recordType.Decode(Raw{"side": "BUY", "other": "SELL"})
	require.NoError(t, err)
	assert.Equal(t, "buy", record.Symbol("side"))
}

func TestRecord_KeyAndEqual(t *testing.T) {
	first, err := sampleType.Decode(unmarshalRaw(t, sampleJSON))
	require.NoError(t, err)

	second, err := sampleType.Decode(unmarshalRaw(t, sampleJSON))
	require.NoError(t, err)

	other, err := sampleType.Decode(Raw{"theString": "abc"})
	require.NoError(t, err)

	assert.Equal(t, first.Key(), second.Key())
	assert.True(t, first.Equal(second))
	assert.False(t, first.Equal(other))
	assert.False(t, first.Equal(nil))
}

func TestRecord_AccessorsPanicOnMisuse(t *testing.T) {
	record, err := entryType.Decode(Raw{"name": "x"})
	require.NoError(t, err)

	assert.Equal(t, "", record.Symbol("side"))
	assert.Panics(t, func() { record.String("missing") })
	assert.Panics(t, func() { record.Int("name") })
	assert.Panics(t, func() { record.Time("name") })
}

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "one", CamelCase("one"))
	assert.Equal(t, "oneTwoThree", CamelCase("one_two_three"))
	assert.Equal(t, "dateUtc", CamelCase("date_utc"))
}
