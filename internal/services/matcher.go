package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/repositories"
)

// MatchSummary reports what a matching run produced.
type MatchSummary struct {
	MatchedResumes int
	Matches        int
}

type MatcherService interface {
	// RunMatching scores every matchable resume of the user against every
	// job offer and replaces the user's match records with the result.
	// Re-running yields an end state that depends only on the current
	// resumes and offers, not on history.
	RunMatching(ctx context.Context, userID uuid.UUID) (*MatchSummary, error)

	// GetResults returns the user's matches ranked by descending score
	// (ties broken by ascending job offer id). An empty list is a valid
	// state, distinct from the user having no resumes at all.
	GetResults(ctx context.Context, userID uuid.UUID) ([]models.MatchResult, error)
}

type matcherService struct {
	resumeRepo  repositories.ResumeRepository
	offerRepo   repositories.JobOfferRepository
	matchRepo   repositories.MatchRepository
	aiService   AIService
	serializer  *Serializer
	cache       EmbeddingCache
	concurrency int
	callTimeout time.Duration
	logger      *zap.Logger

	// one mutex per user so concurrent runs for the same user serialize
	// instead of interleaving their replace steps
	runLocks sync.Map
}

func NewMatcherService(
	resumeRepo repositories.ResumeRepository,
	offerRepo repositories.JobOfferRepository,
	matchRepo repositories.MatchRepository,
	aiService AIService,
	cache EmbeddingCache,
	concurrency int,
	callTimeout time.Duration,
	logger *zap.Logger,
) MatcherService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &matcherService{
		resumeRepo:  resumeRepo,
		offerRepo:   offerRepo,
		matchRepo:   matchRepo,
		aiService:   aiService,
		serializer:  NewSerializer(),
		cache:       cache,
		concurrency: concurrency,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

func (m *matcherService) userLock(userID uuid.UUID) *sync.Mutex {
	lock, _ := m.runLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// RunMatching implements MatcherService.
func (m *matcherService) RunMatching(ctx context.Context, userID uuid.UUID) (*MatchSummary, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	resumes, err := m.resumeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	eligible := make([]models.Resume, 0, len(resumes))
	for _, r := range resumes {
		if r.ParsedInfo.Matchable() {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoResumesFound
	}

	offers, err := m.offerRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, ErrNoJobOffersFound
	}

	resumeTexts := make(map[uuid.UUID]string, len(eligible))
	for _, r := range eligible {
		resumeTexts[r.ID] = m.serializer.SerializeResume(r.ParsedInfo)
	}

	offerTexts := make(map[uuid.UUID]string, len(offers))
	for _, offer := range offers {
		skills, err := offer.Criteria.Skills()
		if err != nil {
			// malformed criteria degrades to no required skills
			m.logger.Warn("failed to parse offer criteria",
				zap.String("job_offer_id", offer.ID.String()),
				zap.Error(err),
			)
			skills = nil
		}
		offerTexts[offer.ID] = m.serializer.SerializeJobOffer(offer.Title, offer.Description, skills)
	}

	embeddings := m.embedAll(ctx, resumeTexts, offerTexts)

	matches := make([]models.Match, 0, len(eligible)*len(offers))
	for _, r := range eligible {
		cvVec, cvOK := embeddings[resumeTexts[r.ID]]
		for _, offer := range offers {
			jobVec, jobOK := embeddings[offerTexts[offer.ID]]

			// A failed embedding scores the pair 0.0 rather than aborting
			// the batch.
			score := 0.0
			if cvOK && jobOK {
				score = CosineSimilarity(cvVec, jobVec)
			} else {
				m.logger.Warn("scoring pair as zero, embedding unavailable",
					zap.String("resume_id", r.ID.String()),
					zap.String("job_offer_id", offer.ID.String()),
				)
			}

			matches = append(matches, models.Match{
				ID:         uuid.New(),
				UserID:     userID,
				ResumeID:   r.ID,
				JobOfferID: offer.ID,
				Score:      score,
				CreatedAt:  time.Now(),
			})
		}
	}

	if err := m.matchRepo.ReplaceForUser(userID, matches); err != nil {
		return nil, err
	}

	m.logger.Info("matching run completed",
		zap.String("user_id", userID.String()),
		zap.Int("matched_resumes", len(eligible)),
		zap.Int("matches", len(matches)),
	)

	return &MatchSummary{
		MatchedResumes: len(eligible),
		Matches:        len(matches),
	}, nil
}

// embedAll embeds every distinct serialized text once, with bounded
// concurrency. Texts whose embedding failed are simply absent from the
// returned map.
func (m *matcherService) embedAll(ctx context.Context, textSets ...map[uuid.UUID]string) map[string][]float32 {
	unique := make(map[string]struct{})
	for _, set := range textSets {
		for _, text := range set {
			unique[text] = struct{}{}
		}
	}

	embeddings := make(map[string][]float32, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, m.concurrency)

	for text := range unique {
		wg.Add(1)
		sem <- struct{}{}
		go func(text string) {
			defer wg.Done()
			defer func() { <-sem }()

			vec, err := m.embedText(ctx, text)
			if err != nil {
				m.logger.Warn("embedding failed", zap.Error(err))
				return
			}

			mu.Lock()
			embeddings[text] = vec
			mu.Unlock()
		}(text)
	}

	wg.Wait()
	return embeddings
}

func (m *matcherService) embedText(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	if m.cache != nil {
		if vec, ok := m.cache.Get(callCtx, text); ok {
			return vec, nil
		}
	}

	vec, err := m.aiService.GenerateEmbedding(callCtx, text)
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		m.cache.Put(callCtx, text, vec)
	}

	return vec, nil
}

// GetResults implements MatcherService.
func (m *matcherService) GetResults(ctx context.Context, userID uuid.UUID) ([]models.MatchResult, error) {
	resumes, err := m.resumeRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(resumes) == 0 {
		return nil, ErrNoResumesFound
	}

	matches, err := m.matchRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []models.MatchResult{}, nil
	}

	offerIDSet := make(map[uuid.UUID]struct{}, len(matches))
	for _, match := range matches {
		offerIDSet[match.JobOfferID] = struct{}{}
	}
	offerIDs := make([]uuid.UUID, 0, len(offerIDSet))
	for id := range offerIDSet {
		offerIDs = append(offerIDs, id)
	}

	offers, err := m.offerRepo.FindByIDs(offerIDs)
	if err != nil {
		return nil, err
	}
	offerMap := make(map[uuid.UUID]models.JobOffer, len(offers))
	for _, offer := range offers {
		offerMap[offer.ID] = offer
	}

	results := make([]models.MatchResult, 0, len(matches))
	for _, match := range matches {
		offer, ok := offerMap[match.JobOfferID]
		if !ok {
			// the offer was deleted after the run; drop silently
			continue
		}
		results = append(results, models.MatchResult{
			JobOfferID:  match.JobOfferID.String(),
			Title:       offer.Title,
			Description: offer.Description,
			Score:       match.Score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].JobOfferID < results[j].JobOfferID
	})

	return results, nil
}
