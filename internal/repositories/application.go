package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentbridge/backend/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	FindByUser(userID uuid.UUID) ([]models.Application, error)
	FindByOffer(offerID uuid.UUID) ([]models.Application, error)
	Delete(id uuid.UUID) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements ApplicationRepository.
func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByID implements ApplicationRepository.
func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("application not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// FindByUser implements ApplicationRepository.
func (r *applicationRepository) FindByUser(userID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	return apps, nil
}

// FindByOffer implements ApplicationRepository.
func (r *applicationRepository) FindByOffer(offerID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("offer_id = ?", offerID).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	return apps, nil
}

// Delete implements ApplicationRepository.
func (r *applicationRepository) Delete(id uuid.UUID) error {
	if err := r.db.Where("id = ?", id).Delete(&models.Application{}).Error; err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return nil
}
