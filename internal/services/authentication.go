package services

import (
	"errors"
	"time"

	"concierge/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	ID      string  `json:"id"`
	Role    string  `json:"role"`
	HotelID *string `json:"hotel"`
	Email   string  `json:"email"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	if secret == "" {
		return nil, errors.New("empty jwt secret")
	}
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(user *models.UserFromAuth, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		ID:      user.ID,
		Role:    user.Role,
		HotelID: user.HotelID,
		Email:   user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (*models.UserFromAuth, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(authentication.secret), nil
	}
	jwtToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*CustomClaims)
	if !ok || !jwtToken.Valid {
		return nil, errors.New("invalid token claims")
	}

	return &models.UserFromAuth{
		ID:      claims.ID,
		Role:    claims.Role,
		HotelID: claims.HotelID,
		Email:   claims.Email,
	}, nil
}
