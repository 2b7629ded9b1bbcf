package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/models"
)

// UserInfo carries the identity fields substituted into a drafted letter.
type UserInfo struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	Location      string
	Company       string
	HiringManager string
}

// JobInfo is the offer-side input of a cover letter.
type JobInfo struct {
	Title          string
	Description    string
	RequiredSkills []string
}

const (
	defaultAddress  = "123 Developer Lane"
	defaultLocation = "Montreal, QC H1A 2B3"
)

type CoverLetterService interface {
	// Generate drafts a letter with the language model and substitutes the
	// recognized bracketed placeholders with the user's fields. Placeholders
	// absent from the draft are simply not substituted; the result never
	// contains a recognized placeholder that had a value.
	Generate(ctx context.Context, parsed *models.ParsedInfo, job JobInfo, user UserInfo) (string, error)
}

type coverLetterService struct {
	aiService     AIService
	promptBuilder *PromptBuilder
	maxRetries    int
	callTimeout   time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

// NewCoverLetterService builds the service. now is injectable so the
// "[Today's Date]" substitution is testable; pass time.Now in production.
func NewCoverLetterService(aiService AIService, maxRetries int, callTimeout time.Duration, now func() time.Time, logger *zap.Logger) CoverLetterService {
	if now == nil {
		now = time.Now
	}
	return &coverLetterService{
		aiService:     aiService,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		callTimeout:   callTimeout,
		now:           now,
		logger:        logger,
	}
}

// Generate implements CoverLetterService.
func (s *coverLetterService) Generate(ctx context.Context, parsed *models.ParsedInfo, job JobInfo, user UserInfo) (string, error) {
	prompt := s.promptBuilder.BuildCoverLetterPrompt(parsed, job.Title, job.Description, job.RequiredSkills)

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	draft, err := s.aiService.GenerateTextWithRetry(callCtx, prompt, 0.7, s.maxRetries)
	if err != nil {
		return "", err
	}

	return ReplacePlaceholders(strings.TrimSpace(draft), user, s.now()), nil
}

// ReplacePlaceholders deterministically fills the recognized placeholders of
// a drafted letter. Missing address and location fields fall back to fixed
// defaults; every other missing field substitutes to the empty string.
func ReplacePlaceholders(letter string, user UserInfo, now time.Time) string {
	address := user.Address
	if address == "" {
		address = defaultAddress
	}
	location := user.Location
	if location == "" {
		location = defaultLocation
	}

	replacer := strings.NewReplacer(
		"[Your Name]", user.Name,
		"[Email]", user.Email,
		"[Phone Number]", user.Phone,
		"[Your Address]", address,
		"[City, State, ZIP]", location,
		"[Today's Date]", now.Format("January 2, 2006"),
		"[Company's Name]", user.Company,
		"[Hiring Manager's Name]", user.HiringManager,
	)

	return replacer.Replace(letter)
}
