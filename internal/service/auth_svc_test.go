package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecom_admin_v1/pkg/identity"
)

type fakeIdentity struct {
	users    map[string]string // email -> password
	signOuts int
}

func (f *fakeIdentity) SignUp(_ context.Context, email, password string) (*identity.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, &identity.APIError{StatusCode: 422, Message: "User already registered"}
	}
	f.users[email] = password
	return &identity.User{ID: "u-" + email, Email: email}, nil
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*identity.Session, error) {
	if pw, ok := f.users[email]; !ok || pw != password {
		return nil, fmt.Errorf("%w: invalid", identity.ErrUnauthorized)
	}
	return &identity.Session{AccessToken: "tok-" + email, User: identity.User{ID: "u-" + email, Email: email}}, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, token string) error {
	f.signOuts++
	if token == "expired" {
		return identity.ErrUnauthorized
	}
	return nil
}

func (f *fakeIdentity) GetUser(_ context.Context, token string) (*identity.User, error) {
	return &identity.User{ID: token}, nil
}

func TestAuthService_RegisterLogin(t *testing.T) {
	idp := &fakeIdentity{users: map[string]string{}}
	svc := NewAuthService(idp, zap.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, " Admin@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = svc.Register(ctx, "admin@example.com", "secret1")
	var apiErr *identity.APIError
	assert.ErrorAs(t, err, &apiErr)

	session, err := svc.Login(ctx, "admin@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-admin@example.com", session.AccessToken)

	_, err = svc.Login(ctx, "admin@example.com", "wrong-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidatesCredentials(t *testing.T) {
	svc := NewAuthService(&fakeIdentity{users: map[string]string{}}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "secret1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.Login(ctx, "a@b.com", "123")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAuthService_LogoutIgnoresExpiredSession(t *testing.T) {
	idp := &fakeIdentity{users: map[string]string{}}
	svc := NewAuthService(idp, zap.NewNop())

	assert.NoError(t, svc.Logout(context.Background(), "tok"))
	assert.NoError(t, svc.Logout(context.Background(), "expired"))
	assert.Equal(t, 2, idp.signOuts)
}
