package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/auth"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/httpx"
)

type spyRepo struct {
	searchCalls int
}

func (s *spyRepo) Get(context.Context, string) (*model.Profile, error) { return nil, httpx.ErrNotFound }
func (s *spyRepo) Update(context.Context, string, map[string]any) error { return nil }
func (s *spyRepo) Search(context.Context, string) ([]SearchResult, error) {
	s.searchCalls++
	return nil, nil
}

type fakeBlobs struct{ lastKey string }

func (f *fakeBlobs) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.lastKey = key
	return "https://cdn.example/" + key, nil
}

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, g.AutoMigrate(&model.Profile{}))
	return &db.Store{DB: g}
}

func seed(t *testing.T, s *db.Store, id, name, email string) {
	t.Helper()
	require.NoError(t, s.DB.Create(&model.Profile{
		ID: id, FullName: name, Email: email, Role: "Student",
	}).Error)
}

func TestSearchBlankQuerySkipsStore(t *testing.T) {
	spy := &spyRepo{}
	svc := NewService(spy, nil)

	out, err := svc.Search(context.Background(), "   \t ")
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, 0, spy.searchCalls)
}

func TestSearchCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(NewRepository(store), nil)
	ctx := context.Background()
	seed(t, store, "u1", "Alima Khatun", "alima@cuet.ac.bd")
	seed(t, store, "u2", "Borhan Uddin", "borhan@cuet.ac.bd")

	out, err := svc.Search(ctx, "ALIMA")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].ID)

	// Email is searched too, and the query is trimmed.
	out, err = svc.Search(ctx, "  borhan@ ")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u2", out[0].ID)
}

func TestGetMissingProfile(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(NewRepository(store), nil)

	_, err := svc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdatePartialFields(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(NewRepository(store), nil)
	ctx := context.Background()
	seed(t, store, "u1", "Before", "u1@cuet.ac.bd")
	sess := &auth.Session{UserID: "u1"}

	bio := "Robotics club"
	require.NoError(t, svc.Update(ctx, sess, UpdateRequest{Bio: &bio}))

	p, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Robotics club", p.Bio)
	assert.Equal(t, "Before", p.FullName)

	blank := "  "
	err = svc.Update(ctx, sess, UpdateRequest{FullName: &blank})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	err = svc.Update(ctx, sess, UpdateRequest{})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	err = svc.Update(ctx, nil, UpdateRequest{Bio: &bio})
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestUploadAvatarUpdatesProfile(t *testing.T) {
	store := newTestStore(t)
	blobs := &fakeBlobs{}
	svc := NewService(NewRepository(store), blobs)
	ctx := context.Background()
	seed(t, store, "u1", "Avatar User", "u1@cuet.ac.bd")
	sess := &auth.Session{UserID: "u1"}

	url, err := svc.UploadAvatar(ctx, sess, "me.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Contains(t, blobs.lastKey, "profile_pictures/u1-")
	assert.Contains(t, blobs.lastKey, "me.png")

	p, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, url, p.ProfilePic)

	_, err = svc.UploadAvatar(ctx, sess, "empty.png", "image/png", nil)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
