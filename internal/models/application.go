package models

import (
	"time"

	"github.com/google/uuid"
)

// Application records one candidate applying to one offer. MatchingScore is
// copied from the match at creation time and never recomputed, even if the
// underlying match is replaced by a later run.
type Application struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OfferID       uuid.UUID `gorm:"type:uuid;not null" json:"offer_id"`
	CoverLetter   string    `gorm:"type:text" json:"cover_letter"`
	MatchingScore float64   `gorm:"type:float8" json:"matching_score"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Application) TableName() string {
	return "applications"
}
