package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/repositories"
)

type ApplicationService interface {
	// GenerateFromMatches turns the caller's current match records into
	// application rows, one per (resume, offer) pair, each with a generated
	// cover letter and the match score copied as a snapshot. A failure on
	// one pair skips that pair only.
	GenerateFromMatches(ctx context.Context, userID uuid.UUID) ([]models.Application, error)
}

type applicationService struct {
	resumeRepo  repositories.ResumeRepository
	matchRepo   repositories.MatchRepository
	offerRepo   repositories.JobOfferRepository
	userRepo    repositories.UserRepository
	appRepo     repositories.ApplicationRepository
	coverLetter CoverLetterService
	logger      *zap.Logger
}

func NewApplicationService(
	resumeRepo repositories.ResumeRepository,
	matchRepo repositories.MatchRepository,
	offerRepo repositories.JobOfferRepository,
	userRepo repositories.UserRepository,
	appRepo repositories.ApplicationRepository,
	coverLetter CoverLetterService,
	logger *zap.Logger,
) ApplicationService {
	return &applicationService{
		resumeRepo:  resumeRepo,
		matchRepo:   matchRepo,
		offerRepo:   offerRepo,
		userRepo:    userRepo,
		appRepo:     appRepo,
		coverLetter: coverLetter,
		logger:      logger,
	}
}

// GenerateFromMatches implements ApplicationService.
func (s *applicationService) GenerateFromMatches(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	resumes, err := s.resumeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(resumes) == 0 {
		return nil, ErrNoResumesFound
	}
	resumeMap := make(map[uuid.UUID]models.Resume, len(resumes))
	for _, r := range resumes {
		resumeMap[r.ID] = r
	}

	matches, err := s.matchRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNoMatchesFound
	}

	offerIDSet := make(map[uuid.UUID]struct{}, len(matches))
	for _, match := range matches {
		offerIDSet[match.JobOfferID] = struct{}{}
	}
	offerIDs := make([]uuid.UUID, 0, len(offerIDSet))
	for id := range offerIDSet {
		offerIDs = append(offerIDs, id)
	}
	offers, err := s.offerRepo.FindByIDs(offerIDs)
	if err != nil {
		return nil, err
	}
	offerMap := make(map[uuid.UUID]models.JobOffer, len(offers))
	for _, offer := range offers {
		offerMap[offer.ID] = offer
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	var created []models.Application
	for _, match := range matches {
		resume, ok := resumeMap[match.ResumeID]
		if !ok {
			continue
		}
		offer, ok := offerMap[match.JobOfferID]
		if !ok {
			continue
		}
		if !resume.ParsedInfo.Matchable() {
			continue
		}

		skills, err := offer.Criteria.Skills()
		if err != nil {
			skills = nil
		}
		job := JobInfo{
			Title:          offer.Title,
			Description:    offer.Description,
			RequiredSkills: skills,
		}

		userInfo := UserInfo{
			Name:  resume.ParsedInfo.Name,
			Email: resume.ParsedInfo.Email,
			Phone: resume.ParsedInfo.Phone,
		}
		if userInfo.Name == "" {
			userInfo.Name = user.FirstName
		}
		if userInfo.Email == "" {
			userInfo.Email = user.Email
		}

		letter, err := s.coverLetter.Generate(ctx, resume.ParsedInfo, job, userInfo)
		if err != nil {
			s.logger.Warn("cover letter generation failed, skipping pair",
				zap.String("resume_id", match.ResumeID.String()),
				zap.String("job_offer_id", match.JobOfferID.String()),
				zap.Error(err),
			)
			continue
		}

		app := models.Application{
			ID:            uuid.New(),
			UserID:        userID,
			OfferID:       offer.ID,
			CoverLetter:   letter,
			MatchingScore: match.Score,
			CreatedAt:     time.Now(),
		}
		if err := s.appRepo.Create(&app); err != nil {
			s.logger.Warn("failed to persist application",
				zap.String("job_offer_id", offer.ID.String()),
				zap.Error(err),
			)
			continue
		}
		created = append(created, app)
	}

	return created, nil
}
