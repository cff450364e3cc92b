package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

var (
	ErrUserExists         = errors.New("User already registered")
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService is the built-in identity provider. Credentials live in the
// auth_users table and sessions are HS256 JWTs.
type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	now       func() time.Time
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Credential{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := models.Credential{Email: email, PasswordHash: string(hash)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cred).Error; err != nil {
			return err
		}
		// The public profile shares the credential id
		return tx.Create(&models.Profile{ID: cred.ID, Email: email}).Error
	})
	if err != nil {
		return nil, err
	}

	return &types.User{ID: cred.ID, Email: email}, nil
}

func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*types.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var cred models.Credential
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := &types.User{ID: cred.ID, Email: cred.Email}
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &types.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(tokenTTL.Seconds()),
		User:        user,
	}, nil
}

func (s *AuthService) GetUser(ctx context.Context, token string) (*types.User, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	user := &types.User{ID: profile.ID, Email: profile.Email}
	if profile.Username != nil {
		user.Username = *profile.Username
	}
	return user, nil
}

// GenerateToken signs an access token for the user
func (s *AuthService) GenerateToken(user *types.User) (string, error) {
	now := s.now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Email: user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifies the signature and expiry of an access token
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
