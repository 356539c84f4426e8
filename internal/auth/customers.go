package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCustomerExists     = errors.New("customer already registered")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
)

// Customer is a registered customer credential record. The customer id doubles
// as the opaque CustomerID the Orders context uses.
type Customer struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CustomerStore persists customer credentials.
type CustomerStore interface {
	Create(ctx context.Context, c Customer) error
	FindByEmail(ctx context.Context, email string) (Customer, error)
	FindByID(ctx context.Context, id string) (Customer, error)
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Service handles customer registration and login.
type Service struct {
	store CustomerStore
	jwt   *JWTService
}

func NewService(store CustomerStore, jwt *JWTService) *Service {
	return &Service{store: store, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, email, password string) (Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Customer{}, ErrEmailRequired
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return Customer{}, ErrCustomerExists
	} else if !errors.Is(err, ErrCustomerNotFound) {
		return Customer{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Customer{}, err
	}

	customer := Customer{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, customer); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	customer, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if !CheckPassword(password, customer.PasswordHash) {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, accessExp, err := s.jwt.GenerateAccessToken(customer.ID, customer.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := s.jwt.GenerateRefreshToken(customer.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// CustomerEmail resolves a customer id to its registered email address.
func (s *Service) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	customer, err := s.store.FindByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	return customer.Email, nil
}
