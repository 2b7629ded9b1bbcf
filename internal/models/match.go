package models

import (
	"time"

	"github.com/google/uuid"
)

// Match associates one resume with one job offer for a single matching run.
// UserID duplicates the resume owner so a full replacement can be scoped to
// the owner without joining resumes, which also sweeps records whose resume
// was deleted between runs.
type Match struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ResumeID   uuid.UUID `gorm:"type:uuid;not null" json:"resume_id"`
	JobOfferID uuid.UUID `gorm:"type:uuid;not null" json:"job_offer_id"`
	Score      float64   `gorm:"type:float8" json:"score"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Match) TableName() string {
	return "matches"
}
