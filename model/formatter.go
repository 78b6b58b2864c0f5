package model

// FormatRequestBody turns a record into a request payload. The payload starts
// as a copy of defaults and every present field overrides the default with
// the same wire key. Symbols are sent upper case and dates and times in their
// first declared layout.
func FormatRequestBody(record *Record, defaults Raw) Raw {
	body := make(Raw, len(defaults))
	for key, value := range defaults {
		body[key] = value
	}

	if record == nil {
		return body
	}

	for _, field := range record.recordType.fields {
		value, ok := record.values[field.name]
		if !ok {
			continue
		}

		body[field.WireName()] = encodeField(field, value, nil)
	}

	return body
}
