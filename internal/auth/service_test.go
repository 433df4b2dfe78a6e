package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

const testSecret = "unit-test-secret"

func newTestService(t *testing.T) Service {
	t.Helper()
	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, g.AutoMigrate(&model.Profile{}))
	return NewService(NewRepository(&db.Store{DB: g}), testSecret)
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Register("rumi@cuet.ac.bd", "s3cret", "Rumi", "Student", "CUET")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.UserID)
	assert.Equal(t, "rumi@cuet.ac.bd", sess.Email)

	token2, err := svc.Login("rumi@cuet.ac.bd", "s3cret")
	require.NoError(t, err)
	sess2, err := ParseToken(testSecret, token2)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, sess2.UserID)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("  Rumi@CUET.ac.bd ", "s3cret", "Rumi", "Student", "CUET")
	require.NoError(t, err)

	// Lowercased at register, so mixed case logs in too.
	_, err = svc.Login("RUMI@cuet.AC.BD", "s3cret")
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("dup@cuet.ac.bd", "one", "First", "Student", "CUET")
	require.NoError(t, err)

	_, err = svc.Register("dup@cuet.ac.bd", "two", "Second", "Student", "CUET")
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("", "pw", "Nobody", "Student", "CUET")
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Register("someone@cuet.ac.bd", "   ", "Nobody", "Student", "CUET")
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register("rumi@cuet.ac.bd", "s3cret", "Rumi", "Student", "CUET")
	require.NoError(t, err)

	_, err = svc.Login("rumi@cuet.ac.bd", "wrong")
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)

	// Unknown account reads the same as a bad password.
	_, err = svc.Login("ghost@cuet.ac.bd", "s3cret")
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestParseTokenRejectsForgedSecret(t *testing.T) {
	token, err := NewToken("other-secret", Session{UserID: "u1", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)

	_, err = ParseToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)
}
