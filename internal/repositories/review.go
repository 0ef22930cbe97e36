package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-reviewer/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByID(id uuid.UUID) (*models.Review, error)
	UpdateReportURL(id uuid.UUID, url string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) FindByID(id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("id = ?", id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) UpdateReportURL(id uuid.UUID, url string) error {
	result := r.db.Model(&models.Review{}).
		Where("id = ?", id).
		Update("report_url", url)

	if result.Error != nil {
		return fmt.Errorf("failed to update report url: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}
