package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList accepts a bare array, {"data": [...]} or a paginator {"data": {"data": [...]}}
func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []T{}, nil
	}

	for depth := 0; depth < 3; depth++ {
		switch body[0] {
		case '[':
			var out []T
			if err := json.Unmarshal(body, &out); err != nil {
				return nil, fmt.Errorf("failed to decode list: %w", err)
			}
			if out == nil {
				out = []T{}
			}
			return out, nil
		case '{':
			var wrapper struct {
				Data json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(body, &wrapper); err != nil {
				return nil, fmt.Errorf("failed to decode list wrapper: %w", err)
			}
			body = bytes.TrimSpace(wrapper.Data)
			if len(body) == 0 || bytes.Equal(body, []byte("null")) {
				return []T{}, nil
			}
		default:
			return nil, fmt.Errorf("unexpected list payload")
		}
	}
	return nil, fmt.Errorf("list payload nested too deep")
}

// decodeOne accepts a bare object or one wrapped under any of keys
func decodeOne(body []byte, out interface{}, keys ...string) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return fmt.Errorf("empty response body")
	}

	if body[0] == '{' && len(keys) > 0 {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err == nil {
			for _, k := range keys {
				inner := bytes.TrimSpace(wrapper[k])
				if len(inner) > 0 && inner[0] == '{' {
					body = inner
					break
				}
			}
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
