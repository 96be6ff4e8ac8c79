package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"shopper/internal/models"
	"shopper/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateUser is returned when signup finds the email already taken.
	ErrDuplicateUser = errors.New("existing user found")
	// ErrInvalidCredentials is returned on login with an unknown email or
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a token is absent, malformed, or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
)

// AuthService handles registration, login, and bearer token issue/verify.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// Signup creates a new account with a zero-initialized cart and returns an
// issued token. The duplicate-email check is a read before the insert; a
// concurrent signup for the same email slips past it and is stopped by the
// store's unique index instead.
func (s *AuthService) Signup(name, email, password string) (string, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return "", ErrDuplicateUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		CartData: models.NewCart(),
		Date:     time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	return s.IssueToken(user.ID)
}

// Login verifies credentials and returns an issued token.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(user.ID)
}

// IssueToken signs a token binding the given user id. No expiry claim is set;
// tokens are valid until the signing secret changes.
func (s *AuthService) IssueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]interface{}{
			"id": userID,
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken validates a token and returns the user id it binds. Verification
// is stateless; there is no revocation list.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token verification error: %v", err)
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userClaim, ok := claims["user"].(map[string]interface{})
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := userClaim["id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
