package apiclient

import (
	"bytes"
	"encoding/json"
	"sort"
)

var skippedFields = map[string]bool{
	"_id":       true,
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
	"images":    true,
}

// FormFields flattens a record into multipart scalar fields. Nested values
// are JSON-encoded; images are expected to travel as files instead.
func FormFields(v any) (map[string]string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}

	fields := make(map[string]string, len(m))
	for key, val := range m {
		if skippedFields[key] || val == nil {
			continue
		}
		switch tv := val.(type) {
		case string:
			fields[key] = tv
		case json.Number:
			fields[key] = tv.String()
		case bool:
			if tv {
				fields[key] = "true"
			} else {
				fields[key] = "false"
			}
		default:
			b, err := json.Marshal(tv)
			if err != nil {
				return nil, err
			}
			fields[key] = string(b)
		}
	}
	return fields, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
