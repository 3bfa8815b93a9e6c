package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/dbx"
	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/dmitrijs2005/veildiary/internal/server/auth"
	"github.com/dmitrijs2005/veildiary/internal/server/config"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/refreshtokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *fakeManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	m := newFakeManager()
	return NewUserService(db, m, cfg, logging.Nop{}), m, mock
}

func TestRegister(t *testing.T) {
	svc, m, _ := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Alice@Example.COM ", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.True(t, auth.CheckPassword("password1", u.Salt, u.PasswordHash))

	_, err = svc.Register(ctx, "alice@example.com", "password2")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	m.users.err = errors.New("db down")
	_, err = svc.Register(ctx, "bob@example.com", "password1")
	var se *common.StorageError
	assert.ErrorAs(t, err, &se)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newUserService(t)

	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{name: "no at sign", email: "alice", password: "password1", field: "email"},
		{name: "short password", email: "a@b.c", password: "short", field: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			require.ErrorIs(t, err, common.ErrValidation)
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, m, _ := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "ALICE@example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)

	userID, err := auth.GetUserIDFromToken(pair.AccessToken, svc.jwtSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)

	stored, err := m.tokens.Find(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.UserID)
	assert.True(t, stored.Expires.After(time.Now().Add(6*24*time.Hour)))
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "alice@example.com", "password1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	_, err = svc.Login(ctx, "nobody@example.com", "password1")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestRefreshToken_Rotates(t *testing.T) {
	svc, m, mock := newUserService(t)
	ctx := context.Background()

	require.NoError(t, m.tokens.Create(ctx, "u1", "old", time.Now().Add(time.Hour)))

	mock.ExpectBegin()
	mock.ExpectCommit()

	pair, err := svc.RefreshToken(ctx, "old")
	require.NoError(t, err)
	assert.NotEqual(t, "old", pair.RefreshToken)

	_, err = m.tokens.Find(ctx, "old")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = m.tokens.Find(ctx, pair.RefreshToken)
	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshToken_Errors(t *testing.T) {
	svc, m, mock := newUserService(t)
	ctx := context.Background()

	_, err := svc.RefreshToken(ctx, "unknown")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	require.NoError(t, m.tokens.Create(ctx, "u1", "stale", time.Now().Add(-time.Minute)))
	_, err = svc.RefreshToken(ctx, "stale")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
	require.NoError(t, m.tokens.Create(ctx, "u1", "fresh", time.Now().Add(time.Hour)))
	_, err = svc.RefreshToken(ctx, "fresh")
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

// A token consumed between Find and Delete must not mint a second pair.
func TestRefreshToken_AlreadyConsumed(t *testing.T) {
	svc, m, mock := newUserService(t)
	ctx := context.Background()
	require.NoError(t, m.tokens.Create(ctx, "u1", "once", time.Now().Add(time.Hour)))

	mock.ExpectBegin()
	mock.ExpectRollback()

	svc.repomanager = &racingManager{fakeManager: m, consume: "once"}
	_, err := svc.RefreshToken(ctx, "once")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

// racingManager hands out tokens whose Find lets a parallel caller
// consume the token before returning it.
type racingManager struct {
	*fakeManager
	consume string
}

func (r *racingManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return &racingTokens{fakeTokens: r.tokens, consume: r.consume}
}

type racingTokens struct {
	*fakeTokens
	consume string
}

func (r *racingTokens) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, err := r.fakeTokens.Find(ctx, token)
	if err == nil && token == r.consume {
		_, _ = r.fakeTokens.Delete(ctx, token)
	}
	return t, err
}
