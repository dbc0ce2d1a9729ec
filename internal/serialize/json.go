// Package serialize centralizes the JSON encoding used for metadata and
// reports around the codec.
package serialize

import (
	"encoding/json"
)

// MarshalJSON encodes data for logs and machine consumption.
func MarshalJSON(data any) ([]byte, error) {
	return json.Marshal(data)
}

// MarshalJSONIndent encodes data for human consumption.
func MarshalJSONIndent(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// UnMarshalJSON decodes data into dest.
func UnMarshalJSON(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}
