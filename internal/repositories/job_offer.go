package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentbridge/backend/internal/models"
)

type JobOfferRepository interface {
	Create(offer *models.JobOffer) error
	FindAll() ([]models.JobOffer, error)
	FindByID(id uuid.UUID) (*models.JobOffer, error)
	FindByIDs(ids []uuid.UUID) ([]models.JobOffer, error)
	Update(offer *models.JobOffer) error
	Delete(id uuid.UUID) error
}

type jobOfferRepository struct {
	db *gorm.DB
}

func NewJobOfferRepository(db *gorm.DB) JobOfferRepository {
	return &jobOfferRepository{db: db}
}

// Create implements JobOfferRepository.
func (r *jobOfferRepository) Create(offer *models.JobOffer) error {
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create job offer: %w", err)
	}
	return nil
}

// FindAll implements JobOfferRepository. The matching engine scores every
// resume against every offer, so this is a full scan by design.
func (r *jobOfferRepository) FindAll() ([]models.JobOffer, error) {
	var offers []models.JobOffer
	if err := r.db.Order("created_at ASC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to list job offers: %w", err)
	}
	return offers, nil
}

// FindByID implements JobOfferRepository.
func (r *jobOfferRepository) FindByID(id uuid.UUID) (*models.JobOffer, error) {
	var offer models.JobOffer
	if err := r.db.Where("id = ?", id).First(&offer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job offer not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find job offer: %w", err)
	}
	return &offer, nil
}

// FindByIDs implements JobOfferRepository.
func (r *jobOfferRepository) FindByIDs(ids []uuid.UUID) ([]models.JobOffer, error) {
	var offers []models.JobOffer
	if err := r.db.Where("id IN ?", ids).Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to find job offers: %w", err)
	}
	return offers, nil
}

// Update implements JobOfferRepository.
func (r *jobOfferRepository) Update(offer *models.JobOffer) error {
	if err := r.db.Save(offer).Error; err != nil {
		return fmt.Errorf("failed to update job offer: %w", err)
	}
	return nil
}

// Delete implements JobOfferRepository.
func (r *jobOfferRepository) Delete(id uuid.UUID) error {
	if err := r.db.Where("id = ?", id).Delete(&models.JobOffer{}).Error; err != nil {
		return fmt.Errorf("failed to delete job offer: %w", err)
	}
	return nil
}
