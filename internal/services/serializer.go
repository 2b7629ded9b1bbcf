package services

import (
	"fmt"
	"strings"

	"github.com/talentbridge/backend/internal/models"
)

// Serializer flattens parsed resumes and job offers into canonical text for
// embedding. Output is deterministic: identical input yields byte-identical
// output, which matching relies on for reproducible scores and caching.
type Serializer struct{}

func NewSerializer() *Serializer {
	return &Serializer{}
}

// SerializeResume renders the parsed resume sections in fixed order,
// omitting sections whose data is absent. Present sections are joined with
// single spaces.
func (s *Serializer) SerializeResume(parsed *models.ParsedInfo) string {
	if parsed == nil {
		return ""
	}

	var parts []string

	if len(parsed.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(parsed.Skills, ", "))
	}

	if len(parsed.Education) > 0 {
		eduStrs := make([]string, 0, len(parsed.Education))
		for _, edu := range parsed.Education {
			eduStrs = append(eduStrs, fmt.Sprintf("%s at %s", edu.Degree, edu.Institution))
		}
		parts = append(parts, "Education: "+strings.Join(eduStrs, "; "))
	}

	if len(parsed.Experience) > 0 {
		expStrs := make([]string, 0, len(parsed.Experience))
		for _, exp := range parsed.Experience {
			expStrs = append(expStrs, fmt.Sprintf("%s (%s): %s", exp.Title, exp.Year, exp.Description))
		}
		parts = append(parts, "Experience: "+strings.Join(expStrs, " | "))
	}

	return strings.Join(parts, " ")
}

// SerializeJobOffer renders the offer's title, description and required
// skills with the same omit-if-absent and space-join rules.
func (s *Serializer) SerializeJobOffer(title, description string, requiredSkills []string) string {
	var parts []string

	if title != "" {
		parts = append(parts, "Job Title: "+title)
	}
	if description != "" {
		parts = append(parts, "Description: "+description)
	}
	if len(requiredSkills) > 0 {
		parts = append(parts, "Required Skills: "+strings.Join(requiredSkills, ", "))
	}

	return strings.Join(parts, " ")
}
