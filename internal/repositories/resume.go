package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentbridge/backend/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByUser(userID uuid.UUID) ([]models.Resume, error)
	Delete(id uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("resume not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

// FindByUser implements ResumeRepository.
func (r *resumeRepository) FindByUser(userID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("user_id = ?", userID).Order("uploaded_at ASC").Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}
	return resumes, nil
}

// Delete implements ResumeRepository. Match records referencing the resume
// are removed in the same transaction so they cannot outlive their owner.
func (r *resumeRepository) Delete(id uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resume_id = ?", id).Delete(&models.Match{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Resume{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}
