package auth

import (
	"context"

	"moffatbay/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcept(ctx context.Context, email string, userID int64) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
