package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

func (c *HTTPClient) Categories(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/products/data/categories", auth: true})
	if err != nil {
		return nil, err
	}
	return normalizeCategories(body)
}

// normalizeCategories accepts a JSON array of names, or an object whose
// values are names or arrays of names. Null, empty and non-string entries
// are dropped.
func normalizeCategories(body []byte) ([]string, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	var values []any
	switch v := raw.(type) {
	case []any:
		values = v
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if nested, ok := v[k].([]any); ok {
				values = append(values, nested...)
				continue
			}
			values = append(values, v[k])
		}
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
