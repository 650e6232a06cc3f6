package instructor

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	instructorRepo "drivebook/database/repository/instructor"
	"drivebook/models"
	"drivebook/utils"
)

var (
	ErrNotFound           = errors.New("instructor not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const tokenDuration = 24 * time.Hour

// InstructorService defines instructor account and policy operations.
type InstructorService interface {
	Register(req models.InstructorRegistrationRequest) (*models.Instructor, string, error)
	Authenticate(email, password string) (*models.Instructor, string, error)
	GetByID(id string) (*models.Instructor, error)
	GetPublicProfile(id string) (*models.Instructor, error)
	GetPolicy(id string) (*models.CancellationPolicy, error)
	UpdatePolicy(id string, policy models.CancellationPolicy) error
}

// DefaultInstructorService is the concrete implementation.
type DefaultInstructorService struct {
	Repo instructorRepo.InstructorRepository
}

func (s *DefaultInstructorService) Register(req models.InstructorRegistrationRequest) (*models.Instructor, string, error) {
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

	instructor := &models.Instructor{
		ID:               uuid.New().String(),
		Email:            req.Email,
		PasswordHash:     hash,
		Name:             req.Name,
		Phone:            req.Phone,
		Postcode:         req.Postcode,
		TransmissionType: req.TransmissionType,
		HourlyRate:       req.HourlyRate,
	}

	token, err := utils.GenerateToken(instructor.ID, instructor.Email, "instructor", tokenDuration)
	if err != nil {
		return nil, "", err
	}
	instructor.AuthToken = utils.HashToken(token)

	if err := s.Repo.Create(instructor); err != nil {
		return nil, "", err
	}
	if err := utils.CacheAuthTokenHash(instructor.ID, instructor.AuthToken); err != nil {
		utils.GetLogger().Warn("failed to cache auth session", zap.Error(err))
	}
	return instructor, token, nil
}

func (s *DefaultInstructorService) Authenticate(email, password string) (*models.Instructor, string, error) {
	instructor, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if instructor == nil || !utils.CheckPassword(instructor.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(instructor.ID, instructor.Email, "instructor", tokenDuration)
	if err != nil {
		return nil, "", err
	}

	// Storing the new hash invalidates any previously issued token.
	instructor.AuthToken = utils.HashToken(token)
	if err := s.Repo.Update(instructor); err != nil {
		return nil, "", err
	}
	if err := utils.CacheAuthTokenHash(instructor.ID, instructor.AuthToken); err != nil {
		utils.GetLogger().Warn("failed to cache auth session", zap.Error(err))
	}
	return instructor, token, nil
}

func (s *DefaultInstructorService) GetByID(id string) (*models.Instructor, error) {
	instructor, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, ErrNotFound
	}
	return instructor, nil
}

func (s *DefaultInstructorService) GetPublicProfile(id string) (*models.Instructor, error) {
	instructor, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	public := instructor.PublicProfile()
	return &public, nil
}

func (s *DefaultInstructorService) GetPolicy(id string) (*models.CancellationPolicy, error) {
	instructor, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return instructor.CancellationPolicy, nil
}

func (s *DefaultInstructorService) UpdatePolicy(id string, policy models.CancellationPolicy) error {
	if policy.FreeCancellationWindowHours < policy.LateCancellationWindowHours {
		return errors.New("free cancellation window must not be shorter than the late window")
	}
	if policy.LateCancellationChargePercent < 0 || policy.LateCancellationChargePercent > 100 {
		return errors.New("charge percent must be between 0 and 100")
	}
	return s.Repo.UpdateCancellationPolicy(id, policy)
}
