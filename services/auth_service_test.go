package services

import (
	"context"
	"testing"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		FullName: "Pat Jordan",
		Email:    "  Pat@Example.COM ",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleParent, user.Role)
	assert.Equal(t, "pat@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	logged, err := service.Login(ctx, LoginInput{
		Email:    "pat@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Email: "a@b.c", Password: "longenough"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = service.Register(ctx, RegisterInput{FullName: "Pat", Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	input := RegisterInput{FullName: "Pat", Email: "pat@example.com", Password: "correct-horse"}
	_, err := service.Register(ctx, input)
	require.NoError(t, err)

	_, err = service.Register(ctx, input)
	require.ErrorIs(t, err, ErrEmailConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{
		FullName: "Pat", Email: "pat@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, LoginInput{Email: "pat@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
