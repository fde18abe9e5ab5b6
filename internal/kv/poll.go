package kv

import (
	"bytes"
	"context"
	"time"
)

// Poll re-reads key every interval and calls onChange with the new value
// whenever it differs from the previous read (nil means the key was
// deleted). The first read only establishes the baseline. Read errors are
// passed to onError, when set, and polling continues. Poll returns when ctx
// is done.
func Poll(ctx context.Context, r Repository, key string, interval time.Duration,
	onChange func([]byte), onError func(error)) {

	last, err := r.Get(ctx, key)
	if err != nil && onError != nil {
		onError(err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cur, err := r.Get(ctx, key)
			if err != nil {
				if onError != nil && ctx.Err() == nil {
					onError(err)
				}
				continue
			}
			if !sameDocument(last, cur) {
				last = cur
				onChange(cur)
			}

		case <-ctx.Done():
			return
		}
	}
}

func sameDocument(a, b []byte) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return bytes.Equal(a, b)
}
