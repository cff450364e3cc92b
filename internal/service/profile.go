package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// UpdateUsername sets the username on the user's profile row. A missing row is not an error.
func (s *ProfileService) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	return s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("username", username).Error
}
