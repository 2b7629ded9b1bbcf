package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlexString unmarshals from either a JSON string or a JSON number. The
// extraction model is inconsistent about year fields ("2020" vs 2020).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

type Experience struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Year        FlexString `json:"year,omitempty"`
}

// ParsedInfo is the structured content extracted from a resume. A non-empty
// Error means extraction produced something unusable; RawOutput keeps the
// model's original response for diagnosis. Such resumes stay stored and
// downloadable but are never matched.
type ParsedInfo struct {
	Name       string       `json:"name,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Error      string       `json:"error,omitempty"`
	RawOutput  string       `json:"raw_output,omitempty"`
}

// Matchable reports whether this parsed info can feed the matching engine.
func (p *ParsedInfo) Matchable() bool {
	return p != nil && p.Error == ""
}

func (p ParsedInfo) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *ParsedInfo) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported parsed_info type %T", src)
	}
}

type Resume struct {
	ID               uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename         string      `gorm:"type:text" json:"filename"`
	OriginalFileName string      `gorm:"type:text" json:"original_filename"`
	FilePath         string      `gorm:"type:text" json:"-"`
	RawText          *string     `gorm:"type:text" json:"-"`
	ParsedInfo       *ParsedInfo `gorm:"type:jsonb" json:"parsed_info,omitempty"`
	UploadedAt       time.Time   `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
