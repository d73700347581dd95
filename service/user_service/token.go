package user_service

import (
	"errors"
	"time"

	"file-vault/conf"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken the bearer token failed signature or claim validation
var ErrInvalidToken = errors.New("invalid or expired token")

// AccessClaims JWT claims carried by an access token
type AccessClaims struct {
	UserID   int64  `json:"uid"`
	UserUuid string `json:"uuid"`
	jwt.StandardClaims
}

// IssueToken sign an access token for a user
func IssueToken(userID int64, userUuid string) (string, error) {
	ttl := time.Duration(conf.Cfg.Auth.TokenTTLHours) * time.Hour

	claims := &AccessClaims{
		UserID:   userID,
		UserUuid: userUuid,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.Cfg.Auth.JwtSecret))
}

// ParseToken validate a bearer token and return its claims
func ParseToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(conf.Cfg.Auth.JwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
