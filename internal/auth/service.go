package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
)

// ProfileProvisioner creates the starter vendor profile for a new mess owner.
type ProfileProvisioner interface {
	ProvisionForOwner(ctx context.Context, ownerID, ownerName string) error
}

type Service struct {
	repo        UserRepository
	provisioner ProfileProvisioner
}

func NewService(repo UserRepository, provisioner ProfileProvisioner) *Service {
	return &Service{
		repo:        repo,
		provisioner: provisioner,
	}
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	switch role {
	case RoleAdmin, RoleMessOwner, RoleStudent:
	default:
		return nil, ErrInvalidRole
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	if role == RoleMessOwner && s.provisioner != nil {
		if err := s.provisioner.ProvisionForOwner(ctx, user.ID, user.Name); err != nil {
			// roll back so the owner can register again
			if delErr := s.repo.Delete(ctx, user.ID); delErr != nil {
				log.Printf("[AUTH] rollback of user %s failed: %v", user.ID, delErr)
			}
			return nil, fmt.Errorf("provision mess profile: %w", err)
		}
		log.Printf("[AUTH] provisioned mess profile for owner=%s", user.ID)
	}

	return user, nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
