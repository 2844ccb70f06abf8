package auth

import "moffatbay/internal/domain"

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email,max=254"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required,max=35"`
	LastName        string `json:"last_name" binding:"required,max=35"`
	PhoneNumber     string `json:"phone_number" binding:"max=25"`
	AddressStreet   string `json:"address_street" binding:"max=254"`
	AddressCity     string `json:"address_city" binding:"max=35"`
	AddressState    string `json:"address_state" binding:"max=35"`
	AddressZipcode  string `json:"address_zipcode" binding:"max=25"`
	AddressCountry  string `json:"address_country" binding:"max=35"`
	AcceptTerms     bool   `json:"accept_terms"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateAccountRequest struct {
	Email          string `json:"email" binding:"required,email,max=254"`
	FirstName      string `json:"first_name" binding:"required,max=35"`
	LastName       string `json:"last_name" binding:"required,max=35"`
	PhoneNumber    string `json:"phone_number" binding:"max=25"`
	AddressStreet  string `json:"address_street" binding:"max=254"`
	AddressCity    string `json:"address_city" binding:"max=35"`
	AddressState   string `json:"address_state" binding:"max=35"`
	AddressZipcode string `json:"address_zipcode" binding:"max=25"`
	AddressCountry string `json:"address_country" binding:"max=35"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AccountResponse struct {
	User     *domain.User     `json:"user"`
	Customer *domain.Customer `json:"customer,omitempty"`
}
