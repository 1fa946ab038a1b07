package service

import (
	"errors"
	"fmt"

	"aicademy/internal/models"
	"aicademy/internal/repository"
	"aicademy/internal/validation"
)

var ErrParentNotFound = errors.New("parent account not found")

// ProfileService handles kid profile management for parent accounts
type ProfileService struct {
	parentRepo *repository.ParentRepository
	kidRepo    *repository.KidRepository
}

// NewProfileService creates a new profile service
func NewProfileService(parentRepo *repository.ParentRepository, kidRepo *repository.KidRepository) *ProfileService {
	return &ProfileService{
		parentRepo: parentRepo,
		kidRepo:    kidRepo,
	}
}

// AddKid creates a new kid profile under a parent account. The parent must
// exist; the check runs before any write so a bad ID has no side effects.
func (s *ProfileService) AddKid(parentID int64, name string, age int, grade, avatar string) (*models.Kid, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(age); err != nil {
		return nil, err
	}
	if err := validation.ValidateGrade(grade); err != nil {
		return nil, err
	}

	parent, err := s.parentRepo.GetParentByID(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check parent: %w", err)
	}
	if parent == nil {
		return nil, ErrParentNotFound
	}

	kid, err := s.kidRepo.CreateKid(parentID, name, age, grade, avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to create kid: %w", err)
	}

	return kid, nil
}

// GetKid retrieves a kid profile by ID, nil when it does not exist
func (s *ProfileService) GetKid(kidID int64) (*models.Kid, error) {
	kid, err := s.kidRepo.GetKidByID(kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to get kid: %w", err)
	}
	return kid, nil
}

// ListKidsForParent returns a parent's kids in creation order
func (s *ProfileService) ListKidsForParent(parentID int64) ([]models.Kid, error) {
	kids, err := s.kidRepo.GetParentKids(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list kids: %w", err)
	}
	return kids, nil
}

// ListAllKids returns every kid profile for the who's-learning picker
func (s *ProfileService) ListAllKids() ([]models.Kid, error) {
	kids, err := s.kidRepo.GetAllKids()
	if err != nil {
		return nil, fmt.Errorf("failed to list kids: %w", err)
	}
	return kids, nil
}
