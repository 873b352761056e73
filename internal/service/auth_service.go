package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hydraulic_dashboard/internal/models"
	"hydraulic_dashboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL          = time.Hour
	defaultSigningKey = "hydraulic-demo-secret" // demo fallback; override via auth.signing_key
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidRole     = errors.New("invalid role: must be admin, operator or viewer")
)

// DemoCredential is a fixed demo login seeded at startup.
type DemoCredential struct {
	Username string
	Password string
	Email    string
	Role     string
}

// DemoCredentials are the three documented demo logins.
var DemoCredentials = []DemoCredential{
	{Username: "admin", Password: "admin123", Email: "admin@hydraulic.local", Role: models.RoleAdmin},
	{Username: "operator", Password: "operator123", Email: "operator@hydraulic.local", Role: models.RoleOperator},
	{Username: "viewer", Password: "viewer123", Email: "viewer@hydraulic.local", Role: models.RoleViewer},
}

// AuthService handles user auth logic.
type AuthService struct {
	authRepo repository.Authorization
}

func NewAuthService(repo repository.Authorization) *AuthService {
	return &AuthService{authRepo: repo}
}

func signingKey() []byte {
	if k := viper.GetString("auth.signing_key"); k != "" {
		return []byte(k)
	}
	return []byte(defaultSigningKey)
}

// SignUp hashes the password and creates a new user. Self-registered users
// get the viewer role; elevated roles are only seeded or created internally.
func (s *AuthService) SignUp(username, email, password string) (int, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.authRepo.Create(username, email, hash, models.RoleViewer)
}

// SeedDemoUsers creates the fixed demo logins if they are missing. Existing
// rows are left untouched so local password changes survive restarts.
func (s *AuthService) SeedDemoUsers() error {
	for _, c := range DemoCredentials {
		existing, err := s.authRepo.GetByUsername(c.Username)
		if err != nil {
			return fmt.Errorf("seed %q: %w", c.Username, err)
		}
		if existing != nil {
			continue
		}
		hash, err := hashPassword(c.Password)
		if err != nil {
			return fmt.Errorf("seed %q: %w", c.Username, err)
		}
		if _, err := s.authRepo.Create(c.Username, c.Email, hash, c.Role); err != nil {
			return fmt.Errorf("seed %q: %w", c.Username, err)
		}
	}
	return nil
}

// Claims defines JWT claims carrying the user id and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return issueToken(u.ID, u.Role)
}

// ParseToken parses a JWT and returns the user id and role.
func (s *AuthService) ParseToken(accessToken string) (int, string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	return claims.UserID, claims.Role, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func issueToken(userID int, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	})
	return token.SignedString(signingKey())
}
