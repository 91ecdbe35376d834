package usecase

import (
	"context"
	"testing"

	"main/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegisterWithoutMailerLogsToken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	core, logs := observer.New(zap.InfoLevel)
	svc := &UserService{
		UsersRepo:        &repository.UserRepo{MongoCollection: testCollection(t, db, "users")},
		PendingUsersRepo: &repository.PendingUsersRepo{MongoCollection: testCollection(t, db, "pending")},
		Logger:           zap.New(core),
	}

	require.NoError(t, svc.Register(ctx, "newuser", "new@example.com", "pass1word!"))

	// With no mailer the token has to surface somewhere, or the account can
	// never be verified.
	entries := logs.FilterMessage("mailer not configured, verification token logged").All()
	require.Len(t, entries, 1)
	token, _ := entries[0].ContextMap()["token"].(string)
	require.NotEmpty(t, token)

	pending, err := svc.PendingUsersRepo.FindByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", pending.Email)
	assert.Equal(t, "newuser", pending.Username)
}
