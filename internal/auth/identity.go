package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/kv"
)

// StableClientID returns the identifier used for lockout accounting. It is
// generated once and persisted so failures accumulate across attempts.
func StableClientID(ctx context.Context, repo kv.Repository) (string, error) {
	raw, err := repo.Get(ctx, common.KeyClientID)
	if err != nil {
		return "", fmt.Errorf("load client id: %w", err)
	}
	if len(raw) > 0 {
		return string(raw), nil
	}

	id := uuid.NewString()
	if err := repo.Set(ctx, common.KeyClientID, []byte(id)); err != nil {
		return "", fmt.Errorf("save client id: %w", err)
	}
	return id, nil
}

// LoadOrCreateSecret returns the token signing secret stored in repo,
// creating a random one on first use.
func LoadOrCreateSecret(ctx context.Context, repo kv.Repository) ([]byte, error) {
	raw, err := repo.Get(ctx, common.KeyTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("load token secret: %w", err)
	}
	if len(raw) > 0 {
		return raw, nil
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}
	if err := repo.Set(ctx, common.KeyTokenSecret, []byte(secret)); err != nil {
		return nil, fmt.Errorf("save token secret: %w", err)
	}
	return []byte(secret), nil
}
