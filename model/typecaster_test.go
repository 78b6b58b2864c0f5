package model

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"regexp"
	"testing"
	"time"
)

func decodeValue(field *Field, value interface{}, siblings Raw) (interface{}, error) {
	return typecasters[field.kind].decode(field, value, siblings)
}

func TestTypecaster_Boolean(t *testing.T) {
	field := Boolean("flag")

	for _, value := range []interface{}{true, false} {
		decoded, err := decodeValue(field, value, nil)
		require.NoError(t, err)
		assert.Equal(t, value, decoded)
	}

	decoded, err := decodeValue(field, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)

	for _, value := range []interface{}{"true", 1, 0.0} {
		_, err := decodeValue(field, value, nil)
		assert.Error(t, err, "value %#v", value)
	}
}

func TestTypecaster_String(t *testing.T) {
	field := String("epic").Matching(regexp.MustCompile(`^[A-Z]+\.[A-Z]+$`))

	decoded, err := decodeValue(field, "CS.D", nil)
	require.NoError(t, err)
	assert.Equal(t, "CS.D", decoded)

	decoded, err = decodeValue(field, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)

	_, err = decodeValue(field, "cs.d", nil)
	assert.EqualError(t, err, "invalid string value: [cs.d]")

	decoded, err = decodeValue(String("size"), 5.0, nil)
	require.NoError(t, err)
	assert.Equal(t, "5", decoded)
}

func TestTypecaster_IntegerTakesLeadingDigits(t *testing.T) {
	field := Integer("distance")

	tests := map[string]struct {
		value    interface{}
		expected interface{}
	}{
		"numeric prefix": {"42abc", int64(42)},
		"plain digits":   {"17", int64(17)},
		"signed":         {" -7x", int64(-7)},
		"fraction":       {"1.5", int64(1)},
		"json float":     {1.5, int64(1)},
		"json number":    {json.Number("12"), int64(12)},
		"native integer": {3, int64(3)},
		"native int64":   {int64(9), int64(9)},
		"absent":         {nil, nil},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			decoded, err := decodeValue(field, test.value, nil)
			require.NoError(t, err)
			assert.Equal(t, test.expected, decoded)
		})
	}
}

func TestTypecaster_IntegerRejectsNonNumericContent(t *testing.T) {
	field := Integer("distance")

	for _, value := range []interface{}{"abc", "", "-", "x42", true, "99999999999999999999"} {
		_, err := decodeValue(field, value, nil)
		assert.Error(t, err, "value %#v", value)
	}
}

func TestTypecaster_Float(t *testing.T) {
	field := Float("level")

	for _, value := range []interface{}{nil, ""} {
		decoded, err := decodeValue(field, value, nil)
		require.NoError(t, err)
		assert.Nil(t, decoded)
	}

	decoded, err := decodeValue(field, "1.25", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.25, decoded)

	decoded, err = decodeValue(field, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, decoded)

	_, err = decodeValue(field, "abc", nil)
	assert.EqualError(t, err, "invalid float value: [abc]")

	_, err = decodeValue(field, "1.5x", nil)
	assert.Error(t, err)

	for _, value := range []string{"NaN", "Inf", "-Inf", "infinity", "1e400"} {
		_, err = decodeValue(field, value, nil)
		assert.EqualError(
			t,
			err,
			"invalid float value: ["+value+"]",
		)
	}

	for _, value := range []interface{}{
		math.NaN(),
		math.Inf(1),
		json.Number("NaN"),
	} {
		_, err = decodeValue(field, value, nil)
		assert.Error(t, err, "value %#v", value)
	}
}

func TestTypecaster_Symbol(t *testing.T) {
	field := Symbol("direction", "buy", "sell")

	decoded, err := decodeValue(field, "SELL", nil)
	require.NoError(t, err)
	assert.Equal(t, "sell", decoded)

	_, err = decodeValue(field, "HOLD", nil)
	assert.EqualError(t, err, "invalid value: [hold]")

	decoded, err = decodeValue(Symbol("anything"), "Whatever_Value", nil)
	require.NoError(t, err)
	assert.Equal(t, "whatever_value", decoded)

	assert.Equal(t, "TWO_THREE", encodeSymbol(field, "two_three"))
}

func TestTypecaster_Date(t *testing.T) {
	field := Date("expiry", "02-Jan-06", "Jan-06").NilIf("-", "DFB")

	decoded, err := decodeValue(field, "20-DEC-16", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.December, 20, 0, 0, 0, 0, time.UTC), decoded)

	decoded, err = decodeValue(field, "DEC-16", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.December, 1, 0, 0, 0, 0, time.UTC), decoded)

	for _, blank := range []interface{}{"-", "DFB", nil} {
		decoded, err := decodeValue(field, blank, nil)
		require.NoError(t, err)
		assert.Nil(t, decoded)
	}

	_, err = decodeValue(field, "2016/12/20", nil)
	assert.EqualError(t, err, "failed parsing date: [2016/12/20]")

	_, err = decodeValue(field, 20161220, nil)
	assert.Error(t, err)
}

func TestTypecaster_TimeUsesFixedZone(t *testing.T) {
	field := Time("date", LayoutDateTime).InZone("+0200")

	decoded, err := decodeValue(field, "2016-03-04T05:06:07", nil)
	require.NoError(t, err)
	assert.True(
		t,
		time.Date(2016, time.March, 4, 3, 6, 7, 0, time.UTC).Equal(decoded.(time.Time)),
	)

	assert.Equal(t, "2016-03-04T05:06:07", encodeTime(field, decoded))
	assert.Equal(
		t,
		"2016-03-04T05:06:07",
		encodeTime(field, time.Date(2016, time.March, 4, 3, 6, 7, 0, time.UTC)),
	)
}

func TestTypecaster_TimeDefaultsToUTC(t *testing.T) {
	field := Time("date", LayoutDateTime)

	decoded, err := decodeValue(field, "2016-03-04T05:06:07", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.March, 4, 5, 6, 7, 0, time.UTC), decoded.(time.Time).UTC())

	_, err = decodeValue(field, "yesterday", nil)
	assert.EqualError(t, err, "failed parsing time: [yesterday]")
}

func TestTypecaster_TimeResolvesZoneFromSiblings(t *testing.T) {
	field := Time("date", LayoutDateTime).ZoneFrom(func(siblings Raw) (string, error) {
		return siblings["zone"].(string), nil
	})

	decoded, err := decodeValue(
		field,
		"2016-03-04T05:06:07",
		Raw{"zone": "-0500"},
	)
	require.NoError(t, err)
	assert.True(
		t,
		time.Date(2016, time.March, 4, 10, 6, 7, 0, time.UTC).Equal(decoded.(time.Time)),
	)

	_, err = decodeValue(field, "2016-03-04T05:06:07", Raw{"zone": "bogus"})
	assert.Error(t, err)
}

func TestTypecaster_TimeFromEpochMillis(t *testing.T) {
	field := Time("date", LayoutEpochMillis, LayoutDateTime)

	expected := time.Date(2016, time.March, 4, 5, 6, 7, 0, time.UTC)

	for _, value := range []interface{}{
		expected.UnixMilli(),
		float64(expected.UnixMilli()),
		json.Number("1457067967000"),
		"1457067967000",
	} {
		decoded, err := decodeValue(field, value, nil)
		require.NoError(t, err, "value %#v", value)
		assert.Equal(t, expected, decoded)
	}

	decoded, err := decodeValue(field, "2016-03-04T05:06:07", nil)
	require.NoError(t, err)
	assert.True(t, expected.Equal(decoded.(time.Time)))

	assert.Equal(t, expected.UnixMilli(), encodeTime(field, expected))
}

func TestTypecaster_TimeBlankValues(t *testing.T) {
	field := Time("period", LayoutDateTime, "02-Jan-06", "Jan-06").NilIf("-", "DFB")

	for _, blank := range []string{"-", "DFB"} {
		decoded, err := decodeValue(field, blank, nil)
		require.NoError(t, err)
		assert.Nil(t, decoded)
	}

	decoded, err := decodeValue(field, "MAR-17", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, time.March, 1, 0, 0, 0, 0, time.UTC), decoded.(time.Time).UTC())
}
