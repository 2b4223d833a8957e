package services

import (
	"errors"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/pkg/auth"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so the response never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserFinder is the slice of UserRepository the auth service needs.
type UserFinder interface {
	FindByEmail(email string) (models.User, error)
	FindByID(id string) (models.User, error)
}

// AuthService authenticates admin accounts.
type AuthService struct {
	users UserFinder
}

func NewAuthService(users UserFinder) *AuthService {
	return &AuthService{users: users}
}

// Login verifies the credentials and returns a signed JWT plus the
// account.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Me resolves the account behind an authenticated request.
func (s *AuthService) Me(userID string) (models.User, error) {
	return s.users.FindByID(userID)
}
