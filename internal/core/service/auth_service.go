package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/br-labs/restaurant-api/internal/core/domain"
	"github.com/br-labs/restaurant-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	tokens ports.TokenService
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens}
}

// Register creates a new account: hashes the password, resolves the
// shared default role (created lazily on first use), and persists the
// user. A duplicate email fails with ErrEmailExists; the uniqueness race
// between the existence check and the insert is settled by the store's
// unique index.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindOrCreate(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{role.Name},
		CreatedAt:    time.Now().UTC(),
	}

	return s.users.Create(ctx, user)
}

// Login verifies the credentials and issues a bearer token carrying the
// user's id and current roles. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Roles)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
