package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/talentbridge/backend/internal/models"
)

type MatchRepository interface {
	// ReplaceForUser atomically swaps every match owned by userID for the
	// given set. Readers observe either the old set or the new set, never
	// the gap in between.
	ReplaceForUser(userID uuid.UUID, matches []models.Match) error
	FindByUser(userID uuid.UUID) ([]models.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// ReplaceForUser implements MatchRepository. Scoping the delete to the
// owner (not just the resume ids of the current run) also sweeps matches
// whose resume was deleted since the previous run.
func (r *matchRepository) ReplaceForUser(userID uuid.UUID, matches []models.Match) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Match{}).Error; err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}
		return tx.CreateInBatches(matches, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace matches: %w", err)
	}
	return nil
}

// FindByUser implements MatchRepository.
func (r *matchRepository) FindByUser(userID uuid.UUID) ([]models.Match, error) {
	var matches []models.Match
	if err := r.db.Where("user_id = ?", userID).Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("failed to find matches: %w", err)
	}
	return matches, nil
}
