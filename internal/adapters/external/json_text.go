package external

import (
	"bytes"
	"encoding/json"
)

// jsonText keeps a JSON scalar in its textual form. Numbers keep their digits as sent,
// strings are unquoted and null becomes empty.
type jsonText string

func (t *jsonText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = jsonText(s)
	default:
		*t = jsonText(data)
	}
	return nil
}

func (t jsonText) String() string {
	return string(t)
}

func (t *jsonText) ptr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}
