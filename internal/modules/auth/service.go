package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"moffatbay/internal/domain"
)

type Service struct {
	users     UserRepository
	customers CustomerRepository
	tokens    TokenIssuer
}

func NewService(users UserRepository, customers CustomerRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, customers: customers, tokens: tokens}
}

// Register creates a customer account with its contact profile and returns
// a signed token so the client is logged in immediately.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if !req.AcceptTerms {
		return nil, ErrTermsNotAccepted
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	email := normalizeEmail(req.Email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		UserID:         user.ID,
		PhoneNumber:    req.PhoneNumber,
		AddressStreet:  req.AddressStreet,
		AddressCity:    req.AddressCity,
		AddressState:   req.AddressState,
		AddressZipcode: req.AddressZipcode,
		AddressCountry: req.AddressCountry,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// GetAccount returns the user plus their customer profile when one exists;
// staff accounts have none.
func (s *Service) GetAccount(ctx context.Context, userID int64) (*AccountResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := &AccountResponse{User: user}
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err == nil {
		customer.User = nil
		resp.Customer = customer
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return resp, nil
}

// UpdateAccount rewrites the user's name, email and contact profile. Email
// changes are checked for uniqueness against every other account.
func (s *Service) UpdateAccount(ctx context.Context, userID int64, req UpdateAccountRequest) (*AccountResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if email != user.Email {
		taken, err := s.users.ExistsByEmailExcept(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailAlreadyExists
		}
	}

	user.Email = email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := &AccountResponse{User: user}
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, err
	}

	customer.PhoneNumber = req.PhoneNumber
	customer.AddressStreet = req.AddressStreet
	customer.AddressCity = req.AddressCity
	customer.AddressState = req.AddressState
	customer.AddressZipcode = req.AddressZipcode
	customer.AddressCountry = req.AddressCountry
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	customer.User = nil
	resp.Customer = customer
	return resp, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
