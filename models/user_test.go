package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SensitiveFieldsNeverSerialized(t *testing.T) {
	user := User{
		ID:             "id-1",
		Username:       "alice",
		PasswordHash:   "$2a$10$hash",
		TelegramChatID: "100500",
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "$2a$10$hash")
	assert.NotContains(t, string(data), "100500")
}

func TestUser_PublicView(t *testing.T) {
	bound := User{ID: "id-1", Username: "alice", TelegramChatID: "100500", IsAdmin: true}
	view := bound.PublicView()

	assert.Equal(t, "id-1", view.ID)
	assert.True(t, view.IsAdmin)
	assert.True(t, view.TelegramBound, "the view exposes only the fact of binding, not the chat id")

	unbound := User{ID: "id-2", Username: "bob"}
	assert.False(t, unbound.PublicView().TelegramBound)
}

func TestIsValidFicStatus(t *testing.T) {
	for _, s := range []string{FicStatusPending, FicStatusApproved, FicStatusRejected, FicStatusDeleted} {
		assert.True(t, IsValidFicStatus(s), s)
	}
	assert.False(t, IsValidFicStatus("archived"))
	assert.False(t, IsValidFicStatus(""))
}
