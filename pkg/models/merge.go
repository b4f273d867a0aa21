package models

import (
	"encoding/json"
	"fmt"
)

// MergeNodeData applies a partial update onto an existing payload by shallow
// key overwrite: fields present in partial replace the current values, all
// other fields are preserved. The payload type never changes through this
// path. Unknown fields and type-mismatched values fail the merge, leaving the
// original payload untouched.
func MergeNodeData(data NodeData, partial map[string]json.RawMessage) (NodeData, error) {
	if len(partial) == 0 {
		return data, nil
	}

	base, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", data.Kind(), err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", data.Kind(), err)
	}

	for key, value := range partial {
		fields[key] = value
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode merged payload: %w", err)
	}

	return UnmarshalNodeData(data.Kind(), merged)
}
