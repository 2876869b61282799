package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, RegisterInput{Email: "a@example.com", Username: "ab", Password: "supersecret"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	user, err := env.users.Register(ctx, RegisterInput{Email: "a@example.com", Username: "alice", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	// stored as a hash, never the raw password
	require.NotEqual(t, "supersecret", user.Password)

	_, err = env.users.Register(ctx, RegisterInput{Email: "a@example.com", Username: "alice2", Password: "supersecret"})
	require.ErrorIs(t, err, ErrUserExists)
	_, err = env.users.Register(ctx, RegisterInput{Email: "b@example.com", Username: "alice", Password: "supersecret"})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, RegisterInput{Email: "a@example.com", Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	_, err = env.users.Login(ctx, "a@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.users.Login(ctx, "nobody@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := env.users.Login(ctx, "a@example.com", "supersecret")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(env.cfg.JWT.Secret), nil
	})
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
}

func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, RegisterInput{Email: "a@example.com", Username: "alice", Password: "supersecret"})
	require.NoError(t, err)

	require.ErrorIs(t, env.users.ChangePassword(ctx, user.ID, "wrong", "nextsecret"), ErrInvalidCredentials)

	var verr *ValidationError
	require.ErrorAs(t, env.users.ChangePassword(ctx, user.ID, "supersecret", "short"), &verr)

	require.NoError(t, env.users.ChangePassword(ctx, user.ID, "supersecret", "nextsecret"))
	_, err = env.users.Login(ctx, "a@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.users.Login(ctx, "a@example.com", "nextsecret")
	require.NoError(t, err)
}
