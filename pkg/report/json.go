package report

import (
	"encoding/json"
	"fmt"
)

// JSON renders the report as indented canonical JSON. Identical reports
// always marshal to identical bytes.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}
