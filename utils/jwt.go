package utils

import (
	"errors"
	"sync"
	"time"

	"travelorbit/config"

	"github.com/golang-jwt/jwt"
)

var (
	secretOnce sync.Once
	secretKey  []byte
)

// getSecretKey reads the signing secret on first use, after configuration
// has loaded.
func getSecretKey() []byte {
	secretOnce.Do(func() {
		secret := config.AppConfig.JWTSecret
		if secret == "" {
			secret = "travelorbit-dev"
		}
		secretKey = []byte(secret)
	})
	return secretKey
}

// GenerateSessionToken creates a signed JWT for a chat session. The subject
// is the session id; the token is what the browser presents on every
// subsequent chat call.
func GenerateSessionToken(sessionID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return getSecretKey(), nil
	})
}

// ExtractSessionIDFromToken extracts the session id (subject) from a valid
// token string.
func ExtractSessionIDFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}

	return sub, nil
}
