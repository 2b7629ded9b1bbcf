package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Criteria holds the free-form requirements of a job offer. Employers (and
// older records) store it either as a native JSON object or as a
// doubly-encoded JSON string, so reads must tolerate both.
type Criteria json.RawMessage

func (c Criteria) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return []byte(c), nil
}

func (c *Criteria) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		*c = Criteria(append([]byte(nil), v...))
		return nil
	case string:
		*c = Criteria(v)
		return nil
	default:
		return fmt.Errorf("unsupported criteria type %T", src)
	}
}

func (c Criteria) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return []byte(c), nil
}

func (c *Criteria) UnmarshalJSON(data []byte) error {
	*c = Criteria(append([]byte(nil), data...))
	return nil
}

// Skills extracts the "skills" list from the criteria. A doubly-encoded
// payload (a JSON string whose content is itself JSON) is unwrapped once
// before parsing.
func (c Criteria) Skills() ([]string, error) {
	raw := []byte(c)
	if len(raw) == 0 {
		return nil, nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(raw)), `"`) {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("failed to unwrap criteria string: %w", err)
		}
		raw = []byte(inner)
	}
	var payload struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse criteria: %w", err)
	}
	return payload.Skills, nil
}

type JobOffer struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Criteria    Criteria  `gorm:"type:jsonb" json:"criteria,omitempty"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (JobOffer) TableName() string {
	return "job_offers"
}
