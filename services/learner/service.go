package learner

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	learnerRepo "drivebook/database/repository/learner"
	"drivebook/models"
	"drivebook/utils"
)

var (
	ErrNotFound           = errors.New("learner not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const tokenDuration = 24 * time.Hour

// LearnerService defines learner account operations.
type LearnerService interface {
	Register(req models.LearnerRegistrationRequest) (*models.Learner, string, error)
	Authenticate(email, password string) (*models.Learner, string, error)
	GetByID(id string) (*models.Learner, error)
}

// DefaultLearnerService is the concrete implementation.
type DefaultLearnerService struct {
	Repo learnerRepo.LearnerRepository
}

func (s *DefaultLearnerService) Register(req models.LearnerRegistrationRequest) (*models.Learner, string, error) {
	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	learner := &models.Learner{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Postcode:     req.Postcode,
		Balance:      0,
	}

	token, err := utils.GenerateToken(learner.ID, learner.Email, "learner", tokenDuration)
	if err != nil {
		return nil, "", err
	}
	learner.AuthToken = utils.HashToken(token)

	if err := s.Repo.Create(learner); err != nil {
		return nil, "", err
	}
	if err := utils.CacheAuthTokenHash(learner.ID, learner.AuthToken); err != nil {
		utils.GetLogger().Warn("failed to cache auth session", zap.Error(err))
	}
	return learner, token, nil
}

func (s *DefaultLearnerService) Authenticate(email, password string) (*models.Learner, string, error) {
	learner, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if learner == nil || !utils.CheckPassword(learner.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(learner.ID, learner.Email, "learner", tokenDuration)
	if err != nil {
		return nil, "", err
	}

	// Storing the new hash invalidates any previously issued token.
	learner.AuthToken = utils.HashToken(token)
	if err := s.Repo.Update(learner); err != nil {
		return nil, "", err
	}
	if err := utils.CacheAuthTokenHash(learner.ID, learner.AuthToken); err != nil {
		utils.GetLogger().Warn("failed to cache auth session", zap.Error(err))
	}
	return learner, token, nil
}

func (s *DefaultLearnerService) GetByID(id string) (*models.Learner, error) {
	learner, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, ErrNotFound
	}
	return learner, nil
}
