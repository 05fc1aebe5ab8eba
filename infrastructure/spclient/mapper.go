package spclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"sppages/domain/sharepoint"
)

// Verbose OData envelope: {"d": {...}}
type verboseEnvelope struct {
	D json.RawMessage `json:"d"`
}

// unwrapVerbose strips the verbose "d" envelope when present.
func unwrapVerbose(data []byte) []byte {
	var env verboseEnvelope
	if err := json.Unmarshal(data, &env); err == nil && len(env.D) > 0 && string(env.D) != "null" {
		return env.D
	}
	return data
}

// decodeEntity decodes a single entity from a verbose or nometadata response.
func decodeEntity(data []byte, v any) error {
	if err := json.Unmarshal(unwrapVerbose(data), v); err != nil {
		return fmt.Errorf("%w: %v", sharepoint.ErrMalformedResponse, err)
	}
	return nil
}

// decodeCollection decodes {"value":[...]}, {"d":{"results":[...]}} or a bare array.
func decodeCollection[T any](data []byte) ([]T, error) {
	body := unwrapVerbose(data)

	var wrapped struct {
		Value   *[]T `json:"value"`
		Results *[]T `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		switch {
		case wrapped.Value != nil:
			return *wrapped.Value, nil
		case wrapped.Results != nil:
			return *wrapped.Results, nil
		}
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: expected a collection: %v", sharepoint.ErrMalformedResponse, err)
	}
	return items, nil
}

// decodeValue decodes a function result returned as {"value": x} (nometadata)
// or {"d": {"<name>": x}} (verbose).
func decodeValue[T any](data []byte, name string) (T, error) {
	var zero T
	body := unwrapVerbose(data)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return zero, fmt.Errorf("%w: %v", sharepoint.ErrMalformedResponse, err)
	}
	raw, ok := fields["value"]
	if !ok {
		raw, ok = fields[name]
	}
	if !ok {
		return zero, fmt.Errorf("%w: missing %s in response", sharepoint.ErrMalformedResponse, name)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, fmt.Errorf("%w: %s: %v", sharepoint.ErrMalformedResponse, name, err)
	}
	return v, nil
}

// withMetadata adds the verbose __metadata type annotation to a request body.
func withMetadata(entityType string, body map[string]any) map[string]any {
	out := make(map[string]any, len(body)+1)
	for k, v := range body {
		out[k] = v
	}
	out["__metadata"] = map[string]string{"type": entityType}
	return out
}

// joinPath appends segments to a resource URL.
func joinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(s)
	}
	return b.String()
}
