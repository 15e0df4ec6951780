package service

import (
	"context"
	"strings"
	"testing"

	"swipenotes/internal/common"
	"swipenotes/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegister(t *testing.T) {
	f := newSyncFixture(t, enabledSettings())
	auth := NewAuthService(f.svc, NewIdentityService(), "test-secret")

	resp, err := auth.Register(context.Background(), &dto.RegisterRequest{Passphrase: testPhrase})
	require.NoError(t, err)
	assert.Len(t, resp.UserId, 8)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.UserId, claims["user_id"])
}

func TestAuthRegister_PropagatesErrors(t *testing.T) {
	f := newSyncFixture(t, enabledSettings())
	auth := NewAuthService(f.svc, NewIdentityService(), "test-secret")

	_, err := auth.Register(context.Background(), &dto.RegisterRequest{Passphrase: ""})
	assert.ErrorIs(t, err, common.ErrEmptyPassphrase)
}

func TestAuthGeneratePassphrase(t *testing.T) {
	f := newSyncFixture(t, enabledSettings())
	auth := NewAuthService(f.svc, NewIdentityService(), "test-secret")

	resp, err := auth.GeneratePassphrase()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(resp.Passphrase), 12)
}
