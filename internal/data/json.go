package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// LoadJSON loads a frame from a JSON file.
func LoadJSON(filename string) (*Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	f, err := ReadJSON(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, nil
}

// ReadJSON parses an array of objects with numeric values.
// Columns follow the sorted keys of the first object; every later
// object must provide a number for each of them.
func ReadJSON(r io.Reader) (*Frame, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("json must be an array of objects")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("error parsing json: %w", err)
	}

	frame := NewFrame()
	var columns []string
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			return nil, fmt.Errorf("element %d: json array must contain objects", i)
		}

		if columns == nil {
			columns = make([]string, 0, len(obj))
			for k := range obj {
				columns = append(columns, k)
			}
			slices.Sort(columns)
			frame.SetColumns(columns)
		}

		row := make([]float64, len(columns))
		for j, key := range columns {
			v, ok := obj[key]
			if !ok {
				return nil, fmt.Errorf("element %d: missing key %q", i, key)
			}
			var f float64
			if bytes.Equal(v, []byte("null")) || json.Unmarshal(v, &f) != nil {
				return nil, fmt.Errorf("element %d: non-numeric value for key %q", i, key)
			}
			row[j] = f
		}
		if err := frame.AppendRow(row); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return frame, nil
}
