package usecase

import (
	"errors"
	"fmt"

	authdomain "qisqa-backend/internal/auth/domain"
	"qisqa-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// AuthUsecase resolves caller identities from access tokens.
type AuthUsecase interface {
	ValidateToken(tokenString string) (*authdomain.User, error)
}

// AccessClaims mirrors the claim set of the identity provider's access tokens.
type AccessClaims struct {
	Email        string       `json:"email,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata,omitempty"`
	AppMetadata  AppMetadata  `json:"app_metadata,omitempty"`
	jwt.RegisteredClaims
}

type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type AppMetadata struct {
	Provider string `json:"provider,omitempty"`
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	secret   []byte
	audience string
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(cfg *config.Config) AuthUsecase {
	return &authUsecase{
		secret:   []byte(cfg.JWTSecret),
		audience: cfg.JWTAudience,
	}
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if u.audience != "" {
		opts = append(opts, jwt.WithAudience(u.audience))
	}

	var claims AccessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return u.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, ErrInvalidClaims
	}

	name := claims.UserMetadata.FullName
	if name == "" {
		name = claims.UserMetadata.Name
	}

	return &authdomain.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		Name:      name,
		AvatarURL: claims.UserMetadata.AvatarURL,
		Provider:  claims.AppMetadata.Provider,
	}, nil
}
