package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/vitrine/internal/auth"
	"github.com/vbonduro/vitrine/internal/domain"
	"github.com/vbonduro/vitrine/internal/store"
)

func newAccountService(t *testing.T) (*AccountService, *store.AdminStore, *domain.Admin) {
	t.Helper()
	admins := store.NewAdminStore(openTestDB(t))
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	admin, err := admins.Create(context.Background(), "owner", hash)
	require.NoError(t, err)
	return NewAccountService(admins, testLogger()), admins, admin
}

func TestAccountServiceAuthenticate(t *testing.T) {
	svc, _, admin := newAccountService(t)

	got, err := svc.Authenticate(context.Background(), "owner", "secret123")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, "owner", got.Username)
}

func TestAccountServiceAuthenticate_GenericFailure(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	_, wrongPassword := svc.Authenticate(ctx, "owner", "nope")
	_, unknownUser := svc.Authenticate(ctx, "stranger", "secret123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, domain.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Equal(t, "Invalid credentials", wrongPassword.Error())
}

func TestAccountServiceAuthenticate_CaseSensitiveUsername(t *testing.T) {
	svc, _, _ := newAccountService(t)

	_, err := svc.Authenticate(context.Background(), "OWNER", "secret123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAccountServiceAuthenticate_MissingCredentials(t *testing.T) {
	svc, _, _ := newAccountService(t)

	_, err := svc.Authenticate(context.Background(), "owner", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Missing credentials", err.Error())
}

func TestAccountServiceChangePassword(t *testing.T) {
	svc, _, admin := newAccountService(t)
	ctx := context.Background()

	require.NoError(t, svc.ChangePassword(ctx, admin.ID, "secret123", "n3w-password"))

	_, err := svc.Authenticate(ctx, "owner", "secret123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "owner", "n3w-password")
	assert.NoError(t, err)
}

func TestAccountServiceChangePassword_Rejections(t *testing.T) {
	svc, _, admin := newAccountService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		old     string
		new     string
		wantErr error
	}{
		{"missing old", "", "n3w-password", domain.ErrValidation},
		{"missing new", "secret123", "", domain.ErrValidation},
		{"too short", "secret123", "abc", domain.ErrValidation},
		{"wrong old", "guess", "n3w-password", domain.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangePassword(ctx, admin.ID, tt.old, tt.new)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.Authenticate(ctx, "owner", "secret123")
	assert.NoError(t, err, "password must be unchanged after rejected attempts")
}

func TestAccountServiceChangePassword_WrongOldMessage(t *testing.T) {
	svc, _, admin := newAccountService(t)

	err := svc.ChangePassword(context.Background(), admin.ID, "guess", "n3w-password")
	require.Error(t, err)
	assert.Equal(t, "Invalid current password", err.Error())
}

func TestAccountServiceUpdateProfile_Partial(t *testing.T) {
	svc, admins, admin := newAccountService(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, admin.ID, domain.ProfileUpdate{
		WhatsApp:  ptr("+15550100"),
		Instagram: ptr("@shop"),
	})
	require.NoError(t, err)

	got, err := svc.UpdateProfile(ctx, admin.ID, domain.ProfileUpdate{Telegram: ptr("shopbot")})
	require.NoError(t, err)
	assert.Equal(t, "+15550100", got.WhatsApp)
	assert.Equal(t, "@shop", got.Instagram)
	assert.Equal(t, "shopbot", got.Telegram)
	assert.Empty(t, got.YouTube)

	stored, err := admins.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.PasswordHash, stored.PasswordHash)
}

func TestAccountServiceProfile_NotFound(t *testing.T) {
	svc, _, _ := newAccountService(t)

	_, err := svc.Profile(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountServiceEnsureAdmin(t *testing.T) {
	admins := store.NewAdminStore(openTestDB(t))
	svc := NewAccountService(admins, testLogger())
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "owner", "secret123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "other", "another-secret")
	require.NoError(t, err)
	assert.False(t, created, "bootstrap must not add a second admin")

	n, err := admins.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = svc.Authenticate(ctx, "owner", "secret123")
	assert.NoError(t, err)
}

func TestAccountServiceEnsureAdmin_MissingCredentials(t *testing.T) {
	svc := NewAccountService(store.NewAdminStore(openTestDB(t)), testLogger())

	_, err := svc.EnsureAdmin(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
