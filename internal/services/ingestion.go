package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/repositories"
)

type IngestionService interface {
	// Ingest stores an uploaded resume document: the raw bytes, whatever
	// plain text can be extracted, and the structured info the language
	// model derives from that text. Extraction problems never fail the
	// ingestion; they leave the stored record error-marked and therefore
	// excluded from matching.
	Ingest(ctx context.Context, userID uuid.UUID, data []byte, filename string) (*models.Resume, error)
}

type ingestionService struct {
	resumeRepo     repositories.ResumeRepository
	storageService StorageService
	pdfParser      PDFParserService
	aiService      AIService
	promptBuilder  *PromptBuilder
	maxRetries     int
	callTimeout    time.Duration
	logger         *zap.Logger
}

func NewIngestionService(
	resumeRepo repositories.ResumeRepository,
	storageService StorageService,
	pdfParser PDFParserService,
	aiService AIService,
	maxRetries int,
	callTimeout time.Duration,
	logger *zap.Logger,
) IngestionService {
	return &ingestionService{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		pdfParser:      pdfParser,
		aiService:      aiService,
		promptBuilder:  NewPromptBuilder(),
		maxRetries:     maxRetries,
		callTimeout:    callTimeout,
		logger:         logger,
	}
}

// Ingest implements IngestionService.
func (s *ingestionService) Ingest(ctx context.Context, userID uuid.UUID, data []byte, filename string) (*models.Resume, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" || !isPDF(data) {
		return nil, ErrUnsupportedFormat
	}

	storedName, filePath, err := s.storageService.SaveBytes(data, filename)
	if err != nil {
		return nil, err
	}

	var rawText *string
	text, err := s.pdfParser.ExtractText(data)
	if err != nil {
		s.logger.Warn("pdf text extraction failed",
			zap.String("filename", filename),
			zap.Error(err),
		)
	} else if text != "" {
		rawText = &text
	}

	// Structured extraction is attempted even on empty text; the expected
	// outcome there is an error-marked record, not a crash.
	parsed := s.extractInfo(ctx, text)

	resume := &models.Resume{
		ID:               uuid.New(),
		UserID:           userID,
		Filename:         storedName,
		OriginalFileName: filename,
		FilePath:         filePath,
		RawText:          rawText,
		ParsedInfo:       parsed,
		UploadedAt:       time.Now(),
	}

	if err := s.resumeRepo.Create(resume); err != nil {
		// keep the upload directory consistent with the store
		if delErr := s.storageService.DeleteFile(storedName); delErr != nil {
			s.logger.Warn("failed to clean up stored file", zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("resume ingested",
		zap.String("resume_id", resume.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("matchable", parsed.Matchable()),
	)

	return resume, nil
}

func (s *ingestionService) extractInfo(ctx context.Context, text string) *models.ParsedInfo {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	prompt := s.promptBuilder.BuildResumeExtractionPrompt(text)

	response, err := s.aiService.GenerateTextWithRetry(callCtx, prompt, 0, s.maxRetries)
	if err != nil {
		s.logger.Warn("structured extraction call failed", zap.Error(err))
		return &models.ParsedInfo{Error: "extraction call failed: " + err.Error()}
	}

	var parsed models.ParsedInfo
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		s.logger.Warn("structured extraction returned unparseable output", zap.Error(err))
		return &models.ParsedInfo{
			Error:     "invalid JSON from extraction model",
			RawOutput: response,
		}
	}

	return &parsed
}
