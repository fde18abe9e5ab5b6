package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/kv"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/models"
	"github.com/dmitrijs2005/gamingclub/internal/timex"
)

const (
	MaxFailedAttempts = 5
	LockoutWindow     = 15 * time.Minute
)

// attemptLog tracks failed logins per client identifier in the
// failed-attempts document.
type attemptLog struct {
	repo   kv.Repository
	now    func() time.Time
	logger logging.Logger
}

func (l *attemptLog) load(ctx context.Context) (map[string]models.FailedAttempts, error) {
	attempts := make(map[string]models.FailedAttempts)
	_, err := kv.LoadJSON(ctx, l.repo, common.KeyFailedAttempts, &attempts)
	if errors.Is(err, kv.ErrMalformed) {
		l.logger.Warn(ctx, "failed-attempts document is malformed, treating as empty", "error", err)
		return make(map[string]models.FailedAttempts), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load failed attempts: %w", err)
	}
	if attempts == nil {
		attempts = make(map[string]models.FailedAttempts)
	}
	return attempts, nil
}

func (l *attemptLog) save(ctx context.Context, attempts map[string]models.FailedAttempts) error {
	if err := kv.SaveJSON(ctx, l.repo, common.KeyFailedAttempts, attempts); err != nil {
		return fmt.Errorf("save failed attempts: %w", err)
	}
	return nil
}

func (l *attemptLog) expired(a models.FailedAttempts) bool {
	return l.now().Sub(a.LastAttempt.Time) >= LockoutWindow
}

// IsLocked reports whether clientID reached MaxFailedAttempts inside the
// lockout window. Stale entries are evicted as a side effect.
func (l *attemptLog) IsLocked(ctx context.Context, clientID string) (bool, error) {
	attempts, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	a, ok := attempts[clientID]
	if !ok {
		return false, nil
	}
	if l.expired(a) {
		delete(attempts, clientID)
		return false, l.save(ctx, attempts)
	}
	return a.Count >= MaxFailedAttempts, nil
}

func (l *attemptLog) RecordFailure(ctx context.Context, clientID string) (int, error) {
	attempts, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	a := attempts[clientID]
	if l.expired(a) {
		a = models.FailedAttempts{}
	}
	a.Count++
	a.LastAttempt = timex.FromTime(l.now())
	attempts[clientID] = a
	return a.Count, l.save(ctx, attempts)
}

func (l *attemptLog) Reset(ctx context.Context, clientID string) error {
	attempts, err := l.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := attempts[clientID]; !ok {
		return nil
	}
	delete(attempts, clientID)
	return l.save(ctx, attempts)
}
