package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.000 -07:00",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is the creation time of a product. Values the remote API sends in an
// unknown format decode to the zero Timestamp instead of failing the product.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] != '"' {
		// numbers are milliseconds since the epoch
		var millis float64
		if json.Unmarshal(data, &millis) == nil {
			t.Time = time.UnixMilli(int64(millis)).UTC()
		}
		return nil
	}

	var value string
	if json.Unmarshal(data, &value) != nil {
		return nil
	}
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
