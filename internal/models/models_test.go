package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamingclub/internal/timex"
)

func TestCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
		assert.NotEqual(t, string(c), c.Title())
	}
	assert.False(t, Category("perifericos").Valid())
	assert.Equal(t, "consoles", Category("consoles").Title())
}

func TestLineItem_JSONShape(t *testing.T) {
	li := LineItem{ProductID: 4, Name: "Monitor Curvo 144Hz", Price: 299.99, Image: "", Quantity: 2}

	b, err := json.Marshal(li)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"name":"Monitor Curvo 144Hz","price":299.99,"image":"","quantity":2}`, string(b))
	assert.InDelta(t, 599.98, li.Subtotal(), 1e-9)
}

func TestSession_ExpiresAtIsEpochMillis(t *testing.T) {
	s := Session{UserID: 1, Token: "t", ExpiresAt: timex.FromTime(time.UnixMilli(1700000000123))}

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":1,"token":"t","expiresAt":1700000000123}`, string(b))
}

func TestAccount_ViewDropsHash(t *testing.T) {
	a := Account{ID: 1, Username: "admin", PasswordHash: "$argon2id$...", Role: RoleAdmin}
	v := a.View()
	assert.Equal(t, "admin", v.Username)
	assert.True(t, v.IsAdmin())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "argon2id")
}
