package services

import (
	"context"
	"fmt"

	"pereval-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// PassStore is the persistence surface the service needs. It is
// implemented by repository.PassRepository.
type PassStore interface {
	Create(ctx context.Context, input *models.PassInput) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Pass, error)
	Update(ctx context.Context, id int64, input *models.PassInput) error
	ListByUserEmail(ctx context.Context, email string) ([]*models.Pass, error)
}

// ValidationError reports input that fails schema validation, before
// any persistence is attempted.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PassService handles mountain pass business logic on top of a store.
type PassService struct {
	store    PassStore
	validate *validator.Validate
}

// NewPassService creates a new pass service
func NewPassService(store PassStore) *PassService {
	return &PassService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SubmitPass validates a submission and creates the pass with its
// submitter, difficulty levels and images.
func (s *PassService) SubmitPass(ctx context.Context, input *models.PassInput) (int64, error) {
	if input.User == nil {
		return 0, &ValidationError{Err: fmt.Errorf("user is required")}
	}
	if err := s.validate.Struct(input); err != nil {
		return 0, &ValidationError{Err: err}
	}

	id, err := s.store.Create(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to create pass: %w", err)
	}
	return id, nil
}

// GetPass retrieves a pass by id.
func (s *PassService) GetPass(ctx context.Context, id int64) (*models.Pass, error) {
	return s.store.GetByID(ctx, id)
}

// UpdatePass validates the new data and applies it to an existing pass.
// The store enforces the status gate and submitter immutability.
func (s *PassService) UpdatePass(ctx context.Context, id int64, input *models.PassInput) error {
	if err := s.validate.Struct(input); err != nil {
		return &ValidationError{Err: err}
	}
	return s.store.Update(ctx, id, input)
}

// ListPassesByEmail retrieves all passes submitted under an email,
// newest first.
func (s *PassService) ListPassesByEmail(ctx context.Context, email string) ([]*models.Pass, error) {
	return s.store.ListByUserEmail(ctx, email)
}
