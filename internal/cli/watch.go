package cli

import (
	"bytes"
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/kv"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
)

// catalogWatcher polls the catalog document and reports changes written by
// other processes. Writes made through this app go through ownWrites and are
// not reported.
type catalogWatcher struct {
	repo     kv.Repository
	interval time.Duration
	onRemote func()
	logger   logging.Logger

	own atomic.Pointer[[]byte]
}

func newCatalogWatcher(repo kv.Repository, interval time.Duration, onRemote func(), logger logging.Logger) *catalogWatcher {
	return &catalogWatcher{repo: repo, interval: interval, onRemote: onRemote, logger: logger.With("component", "watcher")}
}

func (w *catalogWatcher) markOwn(value []byte) {
	if value != nil {
		value = bytes.Clone(value)
	}
	w.own.Store(&value)
}

func (w *catalogWatcher) isOwn(cur []byte) bool {
	p := w.own.Load()
	return p != nil && (*p == nil) == (cur == nil) && bytes.Equal(*p, cur)
}

// Run blocks until ctx is done. A non-positive interval disables watching.
func (w *catalogWatcher) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}
	kv.Poll(ctx, w.repo, common.KeyProducts, w.interval,
		func(cur []byte) {
			if w.isOwn(cur) {
				return
			}
			w.onRemote()
		},
		func(err error) {
			w.logger.Warn(ctx, "poll catalog", "error", err)
		})
}

// ownWrites records catalog writes with the watcher before they reach
// storage, so a poll can never observe them first.
type ownWrites struct {
	kv.Repository
	watcher *catalogWatcher
}

func (o *ownWrites) Set(ctx context.Context, key string, value []byte) error {
	if key == common.KeyProducts {
		o.watcher.markOwn(value)
	}
	return o.Repository.Set(ctx, key, value)
}

func (o *ownWrites) Delete(ctx context.Context, key string) error {
	if key == common.KeyProducts {
		o.watcher.markOwn(nil)
	}
	return o.Repository.Delete(ctx, key)
}

func (o *ownWrites) Clear(ctx context.Context) error {
	o.watcher.markOwn(nil)
	return o.Repository.Clear(ctx)
}
