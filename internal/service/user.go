package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/templui/galeri/internal/model"
	"github.com/templui/galeri/internal/repository"
	"github.com/templui/galeri/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(id int64) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// Upsert creates the account for email, or resets name and password of the
// existing one. Used for seeding.
func (s *UserService) Upsert(name, email, password string) (*model.User, bool, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateUser(name, email, password)
	if err != nil {
		return nil, false, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()

	user, err := s.userRepository.ByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	if user != nil {
		user.Name = name
		user.PasswordHash = string(hashedPassword)
		user.UpdatedAt = now

		err = s.userRepository.Update(user)
		if err != nil {
			return nil, false, fmt.Errorf("failed to update user: %w", err)
		}

		slog.Info("user updated", "user_id", user.ID)
		return user, false, nil
	}

	user = &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "user_id", user.ID)
	return user, true, nil
}
