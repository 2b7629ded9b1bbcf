package services

import (
	"fmt"
	"strings"

	"github.com/talentbridge/backend/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the prompt that turns raw resume text
// into the structured ParsedInfo JSON shape.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an intelligent CV parser. Extract structured info from this resume:

"""%s"""

Return it in this exact JSON format (don't explain anything):
IMPORTANT: Do NOT explain anything. Just return a valid, parsable JSON. No markdown. No commentary.

{
  "name": "",
  "email": "",
  "phone": "",
  "skills": [],
  "education": [{"degree": "", "institution": ""}],
  "experience": [{"title": "", "description": "", "year": ""}]
}`, resumeText)
}

// BuildCoverLetterPrompt creates the prompt for a draft cover letter. The
// draft is expected to contain bracketed placeholders (e.g. "[Your Name]")
// which are substituted deterministically afterwards.
func (pb *PromptBuilder) BuildCoverLetterPrompt(parsed *models.ParsedInfo, jobTitle, jobDescription string, requiredSkills []string) string {
	eduStrs := make([]string, 0, len(parsed.Education))
	for _, e := range parsed.Education {
		eduStrs = append(eduStrs, fmt.Sprintf("%s at %s", e.Degree, e.Institution))
	}

	expStrs := make([]string, 0, len(parsed.Experience))
	for _, e := range parsed.Experience {
		expStrs = append(expStrs, fmt.Sprintf("%s: %s", e.Title, e.Description))
	}

	return fmt.Sprintf(`Write a professional and personalized cover letter based on:

Candidate:
Name: %s
Email: %s
Phone: %s
Skills: %s
Education: %s
Experience: %s

Job:
Title: %s
Description: %s
Required Skills: %s

Output a formal cover letter that includes placeholders like [Your Address], [City, State, ZIP], etc.`,
		parsed.Name,
		parsed.Email,
		parsed.Phone,
		strings.Join(parsed.Skills, ", "),
		strings.Join(eduStrs, "; "),
		strings.Join(expStrs, "; "),
		jobTitle,
		jobDescription,
		strings.Join(requiredSkills, ", "),
	)
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
