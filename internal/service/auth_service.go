package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users      ports.UserRepository
	bcryptCost int
}

func NewAuthService(users ports.UserRepository, bcryptCost int) *authService {
	return &authService{
		users:      users,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	dob, err := validator.ParseDate(req.DOB)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}

	// the handler validates too, but the age rule is a core invariant and
	// must hold regardless of which surface calls in
	if validator.Age(dob, time.Now().UTC()) < 18 {
		return nil, models.ErrUnderage
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		DateOfBirth:  dob,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login resolves the identifier case-insensitively and verifies the
// credential. Unknown identifier and wrong password are indistinguishable to
// the caller.
func (s *authService) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}
