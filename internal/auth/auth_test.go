package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/bingeworthy/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestService_RegisterAndAuthenticate(t *testing.T) {
	svc := New(setupTestDB(t), "secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "  alice ", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)

	got, err := svc.Authenticate(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "bob", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user looks like a bad password")

	_, err = svc.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Register_Duplicate(t *testing.T) {
	svc := New(setupTestDB(t), "secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestService_Register_Validation(t *testing.T) {
	svc := New(setupTestDB(t), "secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, " ", "pw")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestService_Bootstrap(t *testing.T) {
	svc := New(setupTestDB(t), "secret")
	ctx := context.Background()

	created, err := svc.Bootstrap(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Bootstrap(ctx, "admin2", "pw")
	require.NoError(t, err)
	assert.False(t, created, "bootstrap only runs on an empty table")

	_, err = svc.Authenticate(ctx, "admin2", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := New(setupTestDB(t), "secret", WithClock(clock), WithTokenTTL(30*time.Minute))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)

	user, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Claims carry subject, expiry and a unique id.
	var claims Claims
	_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	other, err := svc.IssueToken("alice")
	require.NoError(t, err)
	assert.NotEqual(t, token, other, "token ids differ")

	_, err = svc.Login(ctx, "alice", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_VerifyToken_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := New(setupTestDB(t), "secret", WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)
	token, err := svc.IssueToken("alice")
	require.NoError(t, err)

	now = now.Add(DefaultTokenTTL + time.Minute)
	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestService_VerifyToken_Rejects(t *testing.T) {
	db := setupTestDB(t)
	svc := New(db, "secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		token, err := New(db, "other-secret").IssueToken("alice")
		require.NoError(t, err)
		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		token, err := svc.IssueToken("ghost")
		require.NoError(t, err)
		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = svc.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
