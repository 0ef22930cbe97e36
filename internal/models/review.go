package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is the stored outcome of one review flow. Document contents are not
// part of it.
type Review struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Role                   string         `gorm:"type:text" json:"role"`
	ResumeFilename         string         `gorm:"type:text" json:"resume_filename"`
	ResumeFormat           DocumentFormat `gorm:"type:text" json:"resume_format"`
	JobDescriptionFilename string         `gorm:"type:text" json:"job_description_filename,omitempty"`
	General                GeneralReview  `gorm:"type:jsonb;serializer:json" json:"general"`
	JDMatch                *JDMatch       `gorm:"type:jsonb;serializer:json" json:"jd_match,omitempty"`
	Warnings               []string       `gorm:"type:jsonb;serializer:json" json:"warnings"`
	ReportURL              string         `gorm:"type:text" json:"report_url,omitempty"`
	CreatedAt              time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt              time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
