package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll_ReportsChangesFromAnotherWriter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shared := NewMemoryRepository()
	require.NoError(t, shared.Set(ctx, "products", []byte(`[1]`)))

	changes := make(chan []byte, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Poll(ctx, shared, "products", 5*time.Millisecond, func(v []byte) { changes <- v }, nil)
	}()

	// baseline must not be reported
	select {
	case v := <-changes:
		t.Fatalf("unexpected change before any write: %s", v)
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, shared.Set(context.Background(), "products", []byte(`[1,2]`)))
	select {
	case v := <-changes:
		assert.Equal(t, []byte(`[1,2]`), v)
	case <-time.After(time.Second):
		t.Fatal("change was not detected")
	}

	require.NoError(t, shared.Delete(context.Background(), "products"))
	select {
	case v := <-changes:
		assert.Nil(t, v)
	case <-time.After(time.Second):
		t.Fatal("delete was not detected")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll did not stop after cancel")
	}
}
