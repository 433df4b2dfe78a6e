package migrate

import (
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/model"
	"github.com/Muktadir-Ashir/Cuet-Connect-SWD/internal/shared/db"
)

func AutoMigrateAll(s *db.Store) error {
	return s.DB.AutoMigrate(
		&model.Profile{},
		&model.Message{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Follow{},
	)
}
