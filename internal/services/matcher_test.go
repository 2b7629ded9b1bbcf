package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/models"
)

func goResume(userID uuid.UUID) models.Resume {
	return models.Resume{
		ID:     uuid.New(),
		UserID: userID,
		ParsedInfo: &models.ParsedInfo{
			Name:   "Alice",
			Skills: []string{"Golang", "SQL"},
		},
	}
}

func backendOffer() models.JobOffer {
	return models.JobOffer{
		ID:          uuid.New(),
		Title:       "Backend Engineer",
		Description: "Server work",
		Criteria:    models.Criteria(`{"skills": ["Golang"]}`),
	}
}

func welderOffer() models.JobOffer {
	return models.JobOffer{
		ID:          uuid.New(),
		Title:       "Fabricator",
		Description: "Metal shop",
		Criteria:    models.Criteria(`{"skills": ["Welding"]}`),
	}
}

func newTestMatcher(resumes []models.Resume, offers []models.JobOffer, ai *stubAI) (MatcherService, *fakeMatchRepo) {
	matchRepo := newFakeMatchRepo()
	svc := NewMatcherService(
		&fakeResumeRepo{resumes: resumes},
		&fakeOfferRepo{offers: offers},
		matchRepo,
		ai,
		nil,
		4,
		time.Second,
		zap.NewNop(),
	)
	return svc, matchRepo
}

func TestRunMatchingScoresAllPairs(t *testing.T) {
	userID := uuid.New()
	resume := goResume(userID)
	backend := backendOffer()
	welder := welderOffer()

	ai := &stubAI{embedFn: vocabEmbedder("golang", "sql", "weld")}
	svc, matchRepo := newTestMatcher(
		[]models.Resume{resume},
		[]models.JobOffer{backend, welder},
		ai,
	)

	summary, err := svc.RunMatching(context.Background(), userID)
	if err != nil {
		t.Fatalf("RunMatching() error = %v", err)
	}
	if summary.MatchedResumes != 1 || summary.Matches != 2 {
		t.Errorf("summary = %+v, want 1 resume, 2 matches", summary)
	}

	stored, _ := matchRepo.FindByUser(userID)
	if len(stored) != 2 {
		t.Fatalf("stored %d matches, want 2", len(stored))
	}

	scores := make(map[uuid.UUID]float64)
	for _, m := range stored {
		if m.UserID != userID || m.ResumeID != resume.ID {
			t.Errorf("match has wrong ownership: %+v", m)
		}
		scores[m.JobOfferID] = m.Score
	}
	if scores[backend.ID] <= scores[welder.ID] {
		t.Errorf("expected backend offer (%v) to outrank welder offer (%v) for a Go resume",
			scores[backend.ID], scores[welder.ID])
	}
}

func TestRunMatchingNoResumes(t *testing.T) {
	svc, _ := newTestMatcher(nil, []models.JobOffer{backendOffer()}, &stubAI{})

	if _, err := svc.RunMatching(context.Background(), uuid.New()); !errors.Is(err, ErrNoResumesFound) {
		t.Errorf("RunMatching() error = %v, want ErrNoResumesFound", err)
	}
}

func TestRunMatchingAllResumesUnmatchable(t *testing.T) {
	userID := uuid.New()
	resumes := []models.Resume{
		{ID: uuid.New(), UserID: userID, ParsedInfo: &models.ParsedInfo{Error: "invalid JSON from extraction model"}},
		{ID: uuid.New(), UserID: userID, ParsedInfo: nil},
	}
	svc, _ := newTestMatcher(resumes, []models.JobOffer{backendOffer()}, &stubAI{})

	if _, err := svc.RunMatching(context.Background(), userID); !errors.Is(err, ErrNoResumesFound) {
		t.Errorf("RunMatching() error = %v, want ErrNoResumesFound", err)
	}
}

func TestRunMatchingNoJobOffers(t *testing.T) {
	userID := uuid.New()
	svc, _ := newTestMatcher([]models.Resume{goResume(userID)}, nil, &stubAI{})

	if _, err := svc.RunMatching(context.Background(), userID); !errors.Is(err, ErrNoJobOffersFound) {
		t.Errorf("RunMatching() error = %v, want ErrNoJobOffersFound", err)
	}
}

func TestRunMatchingExcludesErrorMarkedResume(t *testing.T) {
	userID := uuid.New()
	good := goResume(userID)
	bad := models.Resume{
		ID:         uuid.New(),
		UserID:     userID,
		ParsedInfo: &models.ParsedInfo{Error: "extraction call failed: timeout"},
	}

	svc, matchRepo := newTestMatcher(
		[]models.Resume{good, bad},
		[]models.JobOffer{backendOffer()},
		&stubAI{embedFn: vocabEmbedder("golang", "sql")},
	)

	summary, err := svc.RunMatching(context.Background(), userID)
	if err != nil {
		t.Fatalf("RunMatching() error = %v", err)
	}
	if summary.MatchedResumes != 1 {
		t.Errorf("MatchedResumes = %d, want 1", summary.MatchedResumes)
	}

	stored, _ := matchRepo.FindByUser(userID)
	for _, m := range stored {
		if m.ResumeID == bad.ID {
			t.Errorf("error-marked resume %s appears in stored matches", bad.ID)
		}
	}
}

func TestRunMatchingFailSoftOnEmbeddingFailure(t *testing.T) {
	userID := uuid.New()
	resume := goResume(userID)
	backend := backendOffer()
	welder := welderOffer()

	embed := vocabEmbedder("golang", "sql", "weld")
	ai := &stubAI{embedFn: func(text string) ([]float32, error) {
		if strings.Contains(text, "Fabricator") {
			return nil, fmt.Errorf("%w: upstream unavailable", ErrEmbeddingUnavailable)
		}
		return embed(text)
	}}

	svc, matchRepo := newTestMatcher(
		[]models.Resume{resume},
		[]models.JobOffer{backend, welder},
		ai,
	)

	summary, err := svc.RunMatching(context.Background(), userID)
	if err != nil {
		t.Fatalf("RunMatching() error = %v, want batch to survive one failed embedding", err)
	}
	if summary.Matches != 2 {
		t.Fatalf("Matches = %d, want 2", summary.Matches)
	}

	stored, _ := matchRepo.FindByUser(userID)
	for _, m := range stored {
		switch m.JobOfferID {
		case welder.ID:
			if m.Score != 0.0 {
				t.Errorf("failed pair score = %v, want 0.0", m.Score)
			}
		case backend.ID:
			if m.Score <= 0.0 {
				t.Errorf("healthy pair score = %v, want > 0", m.Score)
			}
		}
	}
}

func TestRunMatchingToleratesMalformedCriteria(t *testing.T) {
	userID := uuid.New()
	offer := models.JobOffer{
		ID:          uuid.New(),
		Title:       "Backend Engineer",
		Description: "Server work",
		Criteria:    models.Criteria(`{"skills": `),
	}

	svc, matchRepo := newTestMatcher(
		[]models.Resume{goResume(userID)},
		[]models.JobOffer{offer},
		&stubAI{embedFn: vocabEmbedder("golang", "sql")},
	)

	if _, err := svc.RunMatching(context.Background(), userID); err != nil {
		t.Fatalf("RunMatching() error = %v, want malformed criteria tolerated", err)
	}
	if stored, _ := matchRepo.FindByUser(userID); len(stored) != 1 {
		t.Errorf("stored %d matches, want 1", len(stored))
	}
}

func TestRunMatchingReplacesPreviousRun(t *testing.T) {
	userID := uuid.New()
	svc, matchRepo := newTestMatcher(
		[]models.Resume{goResume(userID)},
		[]models.JobOffer{backendOffer(), welderOffer()},
		&stubAI{embedFn: vocabEmbedder("golang", "sql", "weld")},
	)

	pairScores := func() map[string]float64 {
		stored, _ := matchRepo.FindByUser(userID)
		scores := make(map[string]float64, len(stored))
		for _, m := range stored {
			scores[m.ResumeID.String()+"/"+m.JobOfferID.String()] = m.Score
		}
		return scores
	}

	if _, err := svc.RunMatching(context.Background(), userID); err != nil {
		t.Fatalf("first run: RunMatching() error = %v", err)
	}
	first := pairScores()
	if len(first) != 2 {
		t.Fatalf("stored %d matches, want 2", len(first))
	}

	for i := 2; i <= 3; i++ {
		if _, err := svc.RunMatching(context.Background(), userID); err != nil {
			t.Fatalf("run %d: RunMatching() error = %v", i, err)
		}
		again := pairScores()
		if len(again) != len(first) {
			t.Fatalf("run %d: stored %d matches, want %d", i, len(again), len(first))
		}
		for pair, score := range first {
			if again[pair] != score {
				t.Errorf("run %d: pair %s scored %v, want %v", i, pair, again[pair], score)
			}
		}
	}

	if matchRepo.replace != 3 {
		t.Errorf("replace invoked %d times, want 3 (one full replacement per run)", matchRepo.replace)
	}
}

func TestRunMatchingEmbedsDistinctTextsOnce(t *testing.T) {
	userID := uuid.New()
	first := goResume(userID)
	second := goResume(userID) // identical parsed info, distinct record

	ai := &stubAI{embedFn: vocabEmbedder("golang", "sql", "weld")}
	svc, _ := newTestMatcher(
		[]models.Resume{first, second},
		[]models.JobOffer{backendOffer(), welderOffer()},
		ai,
	)

	summary, err := svc.RunMatching(context.Background(), userID)
	if err != nil {
		t.Fatalf("RunMatching() error = %v", err)
	}
	if summary.Matches != 4 {
		t.Errorf("Matches = %d, want 4", summary.Matches)
	}
	// two identical resume texts plus two offer texts
	if ai.embedCalls != 3 {
		t.Errorf("embedCalls = %d, want 3 (identical texts embedded once)", ai.embedCalls)
	}
}

type fakeEmbeddingCache struct {
	mu      sync.Mutex
	vectors map[string][]float32
	hits    int
	puts    int
}

func (f *fakeEmbeddingCache) InitCollection() error { return nil }

func (f *fakeEmbeddingCache) Get(_ context.Context, text string) ([]float32, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vec, ok := f.vectors[text]
	if ok {
		f.hits++
	}
	return vec, ok
}

func (f *fakeEmbeddingCache) Put(_ context.Context, text string, embedding []float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vectors[text] = embedding
	f.puts++
}

func TestRunMatchingUsesEmbeddingCache(t *testing.T) {
	userID := uuid.New()
	cache := &fakeEmbeddingCache{vectors: make(map[string][]float32)}
	ai := &stubAI{embedFn: vocabEmbedder("golang", "sql")}

	matchRepo := newFakeMatchRepo()
	svc := NewMatcherService(
		&fakeResumeRepo{resumes: []models.Resume{goResume(userID)}},
		&fakeOfferRepo{offers: []models.JobOffer{backendOffer()}},
		matchRepo,
		ai,
		cache,
		4,
		time.Second,
		zap.NewNop(),
	)

	if _, err := svc.RunMatching(context.Background(), userID); err != nil {
		t.Fatalf("first RunMatching() error = %v", err)
	}
	if cache.puts != 2 {
		t.Errorf("puts after first run = %d, want 2", cache.puts)
	}

	if _, err := svc.RunMatching(context.Background(), userID); err != nil {
		t.Fatalf("second RunMatching() error = %v", err)
	}
	if cache.hits != 2 {
		t.Errorf("hits after second run = %d, want 2", cache.hits)
	}
	if ai.embedCalls != 2 {
		t.Errorf("embedCalls = %d, want 2 (second run served from cache)", ai.embedCalls)
	}
}

func TestGetResultsOrdering(t *testing.T) {
	userID := uuid.New()
	resumeID := uuid.New()

	offerA := models.JobOffer{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Title: "A", Description: "a"}
	offerB := models.JobOffer{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Title: "B", Description: "b"}
	offerC := models.JobOffer{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000c"), Title: "C", Description: "c"}

	matchRepo := newFakeMatchRepo()
	matchRepo.byUser[userID] = []models.Match{
		{ID: uuid.New(), UserID: userID, ResumeID: resumeID, JobOfferID: offerC.ID, Score: 0.5},
		{ID: uuid.New(), UserID: userID, ResumeID: resumeID, JobOfferID: offerB.ID, Score: 0.9},
		{ID: uuid.New(), UserID: userID, ResumeID: resumeID, JobOfferID: offerA.ID, Score: 0.9},
	}

	svc := NewMatcherService(
		&fakeResumeRepo{resumes: []models.Resume{{ID: resumeID, UserID: userID, ParsedInfo: &models.ParsedInfo{}}}},
		&fakeOfferRepo{offers: []models.JobOffer{offerA, offerB, offerC}},
		matchRepo,
		&stubAI{},
		nil,
		4,
		time.Second,
		zap.NewNop(),
	)

	results, err := svc.GetResults(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}

	var gotTitles []string
	for _, r := range results {
		gotTitles = append(gotTitles, r.Title)
	}
	// score descending, ties broken by ascending offer id
	want := []string{"A", "B", "C"}
	if len(gotTitles) != len(want) {
		t.Fatalf("got %d results, want %d", len(gotTitles), len(want))
	}
	for i := range want {
		if gotTitles[i] != want[i] {
			t.Errorf("results[%d] = %q, want %q (full order %v)", i, gotTitles[i], want[i], gotTitles)
		}
	}
}

func TestGetResultsDropsDeletedOffers(t *testing.T) {
	userID := uuid.New()
	resumeID := uuid.New()
	kept := backendOffer()
	deletedID := uuid.New()

	matchRepo := newFakeMatchRepo()
	matchRepo.byUser[userID] = []models.Match{
		{ID: uuid.New(), UserID: userID, ResumeID: resumeID, JobOfferID: kept.ID, Score: 0.7},
		{ID: uuid.New(), UserID: userID, ResumeID: resumeID, JobOfferID: deletedID, Score: 0.9},
	}

	svc := NewMatcherService(
		&fakeResumeRepo{resumes: []models.Resume{{ID: resumeID, UserID: userID, ParsedInfo: &models.ParsedInfo{}}}},
		&fakeOfferRepo{offers: []models.JobOffer{kept}},
		matchRepo,
		&stubAI{},
		nil,
		4,
		time.Second,
		zap.NewNop(),
	)

	results, err := svc.GetResults(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (deleted offer dropped)", len(results))
	}
	if results[0].JobOfferID != kept.ID.String() {
		t.Errorf("results[0].JobOfferID = %s, want %s", results[0].JobOfferID, kept.ID)
	}
}

func TestGetResultsNoResumes(t *testing.T) {
	svc, _ := newTestMatcher(nil, nil, &stubAI{})

	if _, err := svc.GetResults(context.Background(), uuid.New()); !errors.Is(err, ErrNoResumesFound) {
		t.Errorf("GetResults() error = %v, want ErrNoResumesFound", err)
	}
}

func TestGetResultsNoMatchesIsEmptyNotError(t *testing.T) {
	userID := uuid.New()
	svc, _ := newTestMatcher([]models.Resume{goResume(userID)}, nil, &stubAI{})

	results, err := svc.GetResults(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetResults() error = %v, want empty result", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("GetResults() = %v, want empty non-nil slice", results)
	}
}
