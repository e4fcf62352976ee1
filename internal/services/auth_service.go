package services

import (
	"fmt"
	"log"
	"time"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// RegisterUser registers a new buyer or seller, hashing their password.
// Admin accounts are seeded, never self-registered.
func (s *AuthService) RegisterUser(user *models.User) error {
	if user.Role != models.RoleBuyer && user.Role != models.RoleSeller {
		return apperr.New(apperr.Validation, "role must be buyer or seller")
	}
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return apperr.New(apperr.Conflict, "username '%s' already taken", user.Username)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return apperr.New(apperr.Conflict, "email '%s' already registered", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to hash password")
	}
	user.Password = string(hashedPassword)
	user.Balance = 0

	if err := s.userRepo.Create(user); err != nil {
		return err
	}
	log.Printf("User registered: %s, userId: %d", user.Email, user.ID)
	return nil
}

// LoginUser authenticates by email and password and returns a signed token
// plus the user record. Unapproved sellers cannot log in.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists.
		return "", nil, apperr.New(apperr.Authorization, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.Authorization, "invalid credentials")
	}
	if user.Role == models.RoleSeller && !user.Approved {
		return "", nil, apperr.New(apperr.Authorization, "seller not approved")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Storage, err, "failed to generate token")
	}
	return tokenString, user, nil
}

// ValidateToken parses and validates a token, resolving it to an Identity.
// The identity's user must still exist.
func (s *AuthService) ValidateToken(tokenString string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Authorization, err, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.Authorization, "invalid token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, apperr.New(apperr.Authorization, "invalid token")
	}

	user, err := s.userRepo.GetByID(uint(userID))
	if err != nil {
		return nil, apperr.New(apperr.Authorization, "user not found")
	}
	return &models.Identity{ID: user.ID, Role: user.Role}, nil
}

// GetUser returns the full user record for an authenticated identity.
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
