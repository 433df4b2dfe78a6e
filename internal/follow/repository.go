package follow

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
)

// FollowedProfile is the display identity of a followed user.
type FollowedProfile struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
	Role       string `json:"role"`
}

type Repository interface {
	Create(ctx context.Context, followerID, followingID string) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowing(ctx context.Context, followerID string) ([]FollowedProfile, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(ctx context.Context, followerID, followingID string) error {
	f := &model.Follow{ID: uuid.NewString(), FollowerID: followerID, FollowingID: followingID}
	// Repeated follows are a no-op, not an error.
	return r.store.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

func (r *repo) Delete(ctx context.Context, followerID, followingID string) error {
	return r.store.DB.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

func (r *repo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var n int64
	if err := r.store.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repo) ListFollowing(ctx context.Context, followerID string) ([]FollowedProfile, error) {
	var out []FollowedProfile
	err := r.store.DB.WithContext(ctx).
		Table("follows").
		Select("p.id, p.full_name, p.profile_pic, p.role").
		Joins("JOIN profiles p ON p.id = follows.following_id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.created_at DESC").
		Scan(&out).Error
	return out, err
}
