package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned by LoadJSON when the stored document cannot be
// decoded. Callers treat it as an empty collection.
var ErrMalformed = errors.New("malformed document")

// LoadJSON decodes the document stored under key into dst. found is false
// when the key is absent, in which case dst is left untouched.
func LoadJSON(ctx context.Context, r Repository, key string, dst any) (found bool, err error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key, replacing the previous document.
func SaveJSON(ctx context.Context, r Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.Set(ctx, key, raw)
}
