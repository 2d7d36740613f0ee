package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fitts-data/pointer.report/internal/session"
)

// WriteJSON writes the structured export: session metadata, the trial
// plan (preset mode) and every trial's metrics with its embedded
// trajectory as (x, y, t) triples.
func WriteJSON(w io.Writer, rec *session.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to encode session JSON: %w", err)
	}
	return nil
}

// ReadJSON parses a structured export back into a session record.
func ReadJSON(r io.Reader) (*session.Record, error) {
	var rec session.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode session JSON: %w", err)
	}
	return &rec, nil
}
