package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DateLayout is the format of Record.Date.
const DateLayout = "2006-01-02"

// Record is one journal entry.
//
// Field order matters: it fixes the key order of the serialized form
// (date, text, mood).
type Record struct {
	Date string `json:"date"`
	Text string `json:"text"`
	Mood string `json:"mood"`
}

// Encode serializes records as a pretty-printed JSON array with two-space
// indentation. A nil or empty slice encodes as "[]".
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode journal: %w", err)
	}
	return data, nil
}

// Decode parses the serialized form produced by Encode. Surrounding
// whitespace is ignored and an empty document decodes to an empty journal.
func Decode(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	if records == nil {
		// "null"
		records = []Record{}
	}
	return records, nil
}
