package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/talentbridge/backend/internal/models"
)

type fakeResumeRepo struct {
	resumes   []models.Resume
	createErr error
}

func (f *fakeResumeRepo) Create(resume *models.Resume) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.resumes = append(f.resumes, *resume)
	return nil
}

func (f *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	for i := range f.resumes {
		if f.resumes[i].ID == id {
			return &f.resumes[i], nil
		}
	}
	return nil, fmt.Errorf("resume not found")
}

func (f *fakeResumeRepo) FindByUser(userID uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) Delete(id uuid.UUID) error {
	for i := range f.resumes {
		if f.resumes[i].ID == id {
			f.resumes = append(f.resumes[:i], f.resumes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("resume not found")
}

type fakeOfferRepo struct {
	offers []models.JobOffer
}

func (f *fakeOfferRepo) Create(offer *models.JobOffer) error {
	f.offers = append(f.offers, *offer)
	return nil
}

func (f *fakeOfferRepo) FindAll() ([]models.JobOffer, error) {
	return append([]models.JobOffer(nil), f.offers...), nil
}

func (f *fakeOfferRepo) FindByID(id uuid.UUID) (*models.JobOffer, error) {
	for i := range f.offers {
		if f.offers[i].ID == id {
			return &f.offers[i], nil
		}
	}
	return nil, fmt.Errorf("job offer not found")
}

func (f *fakeOfferRepo) FindByIDs(ids []uuid.UUID) ([]models.JobOffer, error) {
	idSet := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []models.JobOffer
	for _, offer := range f.offers {
		if _, ok := idSet[offer.ID]; ok {
			out = append(out, offer)
		}
	}
	return out, nil
}

func (f *fakeOfferRepo) Update(offer *models.JobOffer) error {
	for i := range f.offers {
		if f.offers[i].ID == offer.ID {
			f.offers[i] = *offer
			return nil
		}
	}
	return fmt.Errorf("job offer not found")
}

func (f *fakeOfferRepo) Delete(id uuid.UUID) error {
	for i := range f.offers {
		if f.offers[i].ID == id {
			f.offers = append(f.offers[:i], f.offers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("job offer not found")
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	byUser  map[uuid.UUID][]models.Match
	replace int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{byUser: make(map[uuid.UUID][]models.Match)}
}

func (f *fakeMatchRepo) ReplaceForUser(userID uuid.UUID, matches []models.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[userID] = append([]models.Match(nil), matches...)
	f.replace++
	return nil
}

func (f *fakeMatchRepo) FindByUser(userID uuid.UUID) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Match(nil), f.byUser[userID]...), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]models.User
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return &user, nil
}

type fakeAppRepo struct {
	apps []models.Application
}

func (f *fakeAppRepo) Create(app *models.Application) error {
	f.apps = append(f.apps, *app)
	return nil
}

func (f *fakeAppRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	for i := range f.apps {
		if f.apps[i].ID == id {
			return &f.apps[i], nil
		}
	}
	return nil, fmt.Errorf("application not found")
}

func (f *fakeAppRepo) FindByUser(userID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	for _, app := range f.apps {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) FindByOffer(offerID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	for _, app := range f.apps {
		if app.OfferID == offerID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) Delete(id uuid.UUID) error {
	for i := range f.apps {
		if f.apps[i].ID == id {
			f.apps = append(f.apps[:i], f.apps[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("application not found")
}

// stubAI is a deterministic AIService. embedFn and textFn default to benign
// fixed outputs when nil.
type stubAI struct {
	mu         sync.Mutex
	embedFn    func(text string) ([]float32, error)
	textFn     func(prompt string) (string, error)
	embedCalls int
	prompts    []string
}

func (s *stubAI) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	s.embedCalls++
	s.mu.Unlock()
	if s.embedFn != nil {
		return s.embedFn(text)
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubAI) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.textFn != nil {
		return s.textFn(prompt)
	}
	return "ok", nil
}

func (s *stubAI) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return s.GenerateText(ctx, prompt, temperature)
}

// vocabEmbedder maps text to term counts over a fixed vocabulary, so texts
// sharing terms get directionally similar vectors.
func vocabEmbedder(vocab ...string) func(string) ([]float32, error) {
	return func(text string) ([]float32, error) {
		lower := strings.ToLower(text)
		vec := make([]float32, len(vocab))
		for i, term := range vocab {
			vec[i] = float32(strings.Count(lower, strings.ToLower(term)))
		}
		return vec, nil
	}
}

type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) SaveBytes(data []byte, originalFilename string) (string, string, error) {
	name := "stored_" + originalFilename
	f.files[name] = data
	return name, "/tmp/" + name, nil
}

func (f *fakeStorage) ReadFile(filename string) ([]byte, error) {
	data, ok := f.files[filename]
	if !ok {
		return nil, fmt.Errorf("file not found")
	}
	return data, nil
}

func (f *fakeStorage) GetFilePath(filename string) string { return "/tmp/" + filename }

func (f *fakeStorage) DeleteFile(filename string) error {
	delete(f.files, filename)
	return nil
}

func (f *fakeStorage) EnsureUploadDir() error { return nil }

type fakePDFParser struct {
	text string
	err  error
}

func (f *fakePDFParser) ExtractText(_ []byte) (string, error) {
	return f.text, f.err
}
