package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"moffatbay/internal/domain"
)

// Mock repositories
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailExcept(ctx context.Context, email string, userID int64) (bool, error) {
	args := m.Called(ctx, email, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func newAuthService() (*Service, *MockUserRepository, *MockCustomerRepository, *MockTokenIssuer) {
	users := new(MockUserRepository)
	customers := new(MockCustomerRepository)
	tokens := new(MockTokenIssuer)
	return NewService(users, customers, tokens), users, customers, tokens
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:           "Pat@Example.com",
		Password:        "harborview1",
		ConfirmPassword: "harborview1",
		FirstName:       "Pat",
		LastName:        "Harbor",
		PhoneNumber:     "360-555-0117",
		AcceptTerms:     true,
	}
}

func TestRegister_OK(t *testing.T) {
	svc, users, customers, tokens := newAuthService()

	users.On("ExistsByEmail", mock.Anything, "pat@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.UserID == 999 && c.PhoneNumber == "360-555-0117"
	})).Return(nil)
	tokens.On("GenerateToken", int64(999), "customer").Return("tok", nil)

	resp, err := svc.Register(context.Background(), validRegisterRequest())

	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "pat@example.com", resp.User.Email)
	assert.Equal(t, domain.RoleCustomer, resp.User.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("harborview1")))
	customers.AssertExpectations(t)
}

func TestRegister_TermsRequired(t *testing.T) {
	svc, users, _, _ := newAuthService()

	req := validRegisterRequest()
	req.AcceptTerms = false

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrTermsNotAccepted)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _, _, _ := newAuthService()

	req := validRegisterRequest()
	req.ConfirmPassword = "different"

	_, err := svc.Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("ExistsByEmail", mock.Anything, "pat@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), validRegisterRequest())

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestLogin_OK(t *testing.T) {
	svc, users, _, tokens := newAuthService()

	users.On("GetByEmail", mock.Anything, "pat@example.com").Return(&domain.User{
		ID:           7,
		Email:        "pat@example.com",
		PasswordHash: hashOf(t, "harborview1"),
		Role:         domain.RoleCustomer,
	}, nil)
	tokens.On("GenerateToken", int64(7), "customer").Return("tok", nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Pat@Example.com", Password: "harborview1"})

	assert.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("GetByEmail", mock.Anything, "pat@example.com").Return(&domain.User{
		ID:           7,
		Email:        "pat@example.com",
		PasswordHash: hashOf(t, "harborview1"),
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "pat@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateAccount_EmailTaken(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID: 7, Email: "pat@example.com",
	}, nil)
	users.On("ExistsByEmailExcept", mock.Anything, "taken@example.com", int64(7)).Return(true, nil)

	_, err := svc.UpdateAccount(context.Background(), 7, UpdateAccountRequest{
		Email: "taken@example.com", FirstName: "Pat", LastName: "Harbor",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateAccount_OK(t *testing.T) {
	svc, users, customers, _ := newAuthService()

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID: 7, Email: "pat@example.com",
	}, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)
	customers.On("GetByUserID", mock.Anything, int64(7)).Return(&domain.Customer{ID: 3, UserID: 7}, nil)
	customers.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.AddressCity == "Moffat Bay"
	})).Return(nil)

	resp, err := svc.UpdateAccount(context.Background(), 7, UpdateAccountRequest{
		Email: "pat@example.com", FirstName: "Pat", LastName: "Harbor",
		AddressCity: "Moffat Bay",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Pat", resp.User.FirstName)
	users.AssertNotCalled(t, "ExistsByEmailExcept", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, users, _, _ := newAuthService()

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID: 7, PasswordHash: hashOf(t, "harborview1"),
	}, nil)

	err := svc.ChangePassword(context.Background(), 7, ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpassword1", ConfirmPassword: "newpassword1",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestChangePassword_OK(t *testing.T) {
	svc, users, _, _ := newAuthService()

	user := &domain.User{ID: 7, PasswordHash: hashOf(t, "harborview1")}
	users.On("GetByID", mock.Anything, int64(7)).Return(user, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	err := svc.ChangePassword(context.Background(), 7, ChangePasswordRequest{
		CurrentPassword: "harborview1", NewPassword: "newpassword1", ConfirmPassword: "newpassword1",
	})

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword1")))
}
