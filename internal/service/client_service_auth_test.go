package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-zk-vault/internal/adapter"
	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/crypto"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/mock"
	"github.com/MKhiriev/go-zk-vault/internal/session"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/models"
)

type clientAuthMocks struct {
	adapter  *mock.MockServerAdapter
	sessions *mock.MockSessionRepository
}

func newTestClientAuth(t *testing.T) (*clientAuthService, *session.Manager, clientAuthMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := clientAuthMocks{
		adapter:  mock.NewMockServerAdapter(ctrl),
		sessions: mock.NewMockSessionRepository(ctrl),
	}

	keys := session.NewManager(m.adapter, crypto.NewKeyDerivationService(), m.sessions, logger.Nop())
	svc := NewClientAuthService(m.adapter, m.sessions, keys, logger.Nop()).(*clientAuthService)
	return svc, keys, m
}

func (m clientAuthMocks) expectAbort() {
	m.sessions.EXPECT().SetMarker(gomock.Any(), false).Return(nil).AnyTimes()
	m.adapter.EXPECT().SetToken("")
	m.sessions.EXPECT().ClearSession(gomock.Any()).Return(nil)
}

func TestClientAuth_SignUp(t *testing.T) {
	svc, keys, m := newTestClientAuth(t)
	ctx := context.Background()

	gomock.InOrder(
		m.adapter.EXPECT().SignUp(ctx, models.Credentials{Email: fixtureEmail, Password: fixturePassword}).
			Return(models.AuthResponse{Token: "tok", Salt: fixtureSalt}, nil),
		m.sessions.EXPECT().SaveSession(ctx, fixtureEmail, "tok").Return(nil),
		m.sessions.EXPECT().SetMarker(ctx, true).Return(nil),
	)

	err := svc.SignUp(ctx, models.Credentials{Email: "  Alice@Example.COM ", Password: fixturePassword})
	require.NoError(t, err)

	_, _, err = keys.Key()
	assert.NoError(t, err)
}

func TestClientAuth_Login_FetchesSaltAndUnlocks(t *testing.T) {
	svc, keys, m := newTestClientAuth(t)
	ctx := context.Background()
	creds := models.Credentials{Email: fixtureEmail, Password: fixturePassword}

	gomock.InOrder(
		m.adapter.EXPECT().Login(ctx, creds).Return(models.AuthResponse{Token: "tok", Salt: fixtureSalt}, nil),
		m.sessions.EXPECT().SaveSession(ctx, fixtureEmail, "tok").Return(nil),
		m.adapter.EXPECT().FetchSalt(ctx, fixtureEmail).Return(fixtureSalt, nil),
		m.sessions.EXPECT().SetMarker(ctx, true).Return(nil),
	)

	require.NoError(t, svc.Login(ctx, creds))

	m.sessions.EXPECT().LoadMarker(gomock.Any()).Return(true, nil)
	assert.True(t, svc.IsUnlocked())

	_, epoch, err := keys.Key()
	require.NoError(t, err)
	assert.Equal(t, keys.Epoch(), epoch)
}

func TestClientAuth_Login_WrongPassword(t *testing.T) {
	svc, _, m := newTestClientAuth(t)
	wrong := fmt.Errorf("%w: %w", adapter.ErrUnauthorized, adapter.ErrInvalidCredentials)
	m.adapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, wrong)

	err := svc.Login(context.Background(), models.Credentials{Email: fixtureEmail, Password: "nope"})

	assert.ErrorIs(t, err, adapter.ErrInvalidCredentials)
	assert.Equal(t, app.UserWrongCredentials, UserMessage(err))
}

func TestClientAuth_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		creds models.Credentials
	}{
		{name: "empty email", creds: models.Credentials{Password: "x"}},
		{name: "bad email", creds: models.Credentials{Email: "not-an-email", Password: "x"}},
		{name: "empty password", creds: models.Credentials{Email: fixtureEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestClientAuth(t)

			assert.ErrorIs(t, svc.Login(context.Background(), tt.creds), ErrInvalidDataProvided)
			assert.ErrorIs(t, svc.SignUp(context.Background(), tt.creds), ErrInvalidDataProvided)
		})
	}
}

func TestClientAuth_Login_BadSaltAborts(t *testing.T) {
	svc, keys, m := newTestClientAuth(t)
	ctx := context.Background()

	m.adapter.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{Token: "tok"}, nil)
	m.sessions.EXPECT().SaveSession(ctx, fixtureEmail, "tok").Return(nil)
	m.adapter.EXPECT().FetchSalt(ctx, fixtureEmail).Return("c2hvcnQ=", nil)
	m.expectAbort()

	err := svc.Login(ctx, models.Credentials{Email: fixtureEmail, Password: fixturePassword})

	assert.ErrorIs(t, err, crypto.ErrDerivationInput)
	_, _, err = keys.Key()
	assert.ErrorIs(t, err, crypto.ErrKeyAbsent)
}

func TestClientAuth_SignUp_SaveSessionFails(t *testing.T) {
	svc, _, m := newTestClientAuth(t)
	ctx := context.Background()
	dbErr := errors.New("readonly database")

	m.adapter.EXPECT().SignUp(ctx, gomock.Any()).Return(models.AuthResponse{Token: "tok", Salt: fixtureSalt}, nil)
	m.sessions.EXPECT().SaveSession(ctx, fixtureEmail, "tok").Return(dbErr)
	m.expectAbort()

	err := svc.SignUp(ctx, models.Credentials{Email: fixtureEmail, Password: fixturePassword})
	assert.ErrorIs(t, err, dbErr)
}

func TestClientAuth_Restore(t *testing.T) {
	tests := []struct {
		name      string
		session   models.LocalSession
		loadErr   error
		wantErr   error
		wantToken bool
	}{
		{name: "restores token", session: models.LocalSession{Email: fixtureEmail, Token: "tok"}, wantToken: true},
		{name: "no session", loadErr: store.ErrLocalSessionNotFound, wantErr: store.ErrLocalSessionNotFound},
		{name: "marker-only row", session: models.LocalSession{KeyPresent: true}, wantErr: store.ErrLocalSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, m := newTestClientAuth(t)
			m.sessions.EXPECT().LoadSession(gomock.Any()).Return(tt.session, tt.loadErr)
			if tt.wantToken {
				m.adapter.EXPECT().SetToken("tok")
			}

			got, err := svc.Restore(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, fixtureEmail, got.Email)
		})
	}
}

func TestClientAuth_Unlock_UsesStoredEmail(t *testing.T) {
	svc, _, m := newTestClientAuth(t)
	ctx := context.Background()

	m.sessions.EXPECT().LoadSession(ctx).Return(models.LocalSession{Email: fixtureEmail, Token: "old"}, nil)
	m.adapter.EXPECT().Login(ctx, models.Credentials{Email: fixtureEmail, Password: fixturePassword}).
		Return(models.AuthResponse{Token: "fresh", Salt: fixtureSalt}, nil)
	m.sessions.EXPECT().SaveSession(ctx, fixtureEmail, "fresh").Return(nil)
	m.adapter.EXPECT().FetchSalt(ctx, fixtureEmail).Return(fixtureSalt, nil)
	m.sessions.EXPECT().SetMarker(ctx, true).Return(nil)

	require.NoError(t, svc.Unlock(ctx, fixturePassword))
}

func TestClientAuth_Unlock_NoSession(t *testing.T) {
	svc, _, m := newTestClientAuth(t)
	m.sessions.EXPECT().LoadSession(gomock.Any()).Return(models.LocalSession{}, store.ErrLocalSessionNotFound)

	err := svc.Unlock(context.Background(), fixturePassword)
	assert.ErrorIs(t, err, store.ErrLocalSessionNotFound)
}

func TestClientAuth_LockKeepsToken_LogoutForgetsIt(t *testing.T) {
	svc, keys, m := newTestClientAuth(t)
	ctx := context.Background()

	m.sessions.EXPECT().SetMarker(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	require.NoError(t, keys.AcquireWithSalt(ctx, fixturePassword, fixtureSalt))

	svc.Lock()
	_, _, err := keys.Key()
	assert.ErrorIs(t, err, crypto.ErrKeyAbsent)

	m.adapter.EXPECT().SetToken("")
	m.sessions.EXPECT().ClearSession(ctx).Return(nil)
	require.NoError(t, svc.Logout(ctx))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("list: %w", crypto.ErrKeyAbsent), app.UserKeyAbsent},
		{session.ErrAcquireSuperseded, app.UserKeyAbsent},
		{crypto.ErrTagVerification, app.UserTagVerification},
		{crypto.ErrSealFailure, app.UserSealFailure},
		{fmt.Errorf("%w: %w", adapter.ErrConflict, adapter.ErrEmailTaken), app.UserEmailTaken},
		{fmt.Errorf("%w: %w", adapter.ErrUnauthorized, adapter.ErrSessionExpired), app.UserSessionExpired},
		{fmt.Errorf("%w: %w", adapter.ErrNotFound, adapter.ErrAccountNotFound), app.UserAccountNotFound},
		{fmt.Errorf("%w: bad", adapter.ErrBadRequest), app.UserInvalidInput},
		{fmt.Errorf("op: %w: %w", adapter.ErrServerUnavailable, errors.New("dial tcp")), app.UserServerUnavailable},
		{adapter.ErrTooManyRequests, app.UserTooManyRequests},
		{errors.New("something odd"), app.UserUnexpected},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UserMessage(tt.err))
	}
}

func TestIsSessionLost(t *testing.T) {
	assert.True(t, IsSessionLost(fmt.Errorf("x: %w", crypto.ErrKeyAbsent)))
	assert.True(t, IsSessionLost(fmt.Errorf("%w: %w", adapter.ErrUnauthorized, adapter.ErrSessionExpired)))
	assert.False(t, IsSessionLost(crypto.ErrTagVerification))
}
