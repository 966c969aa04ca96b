package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sessions signs and verifies the flow session cookie. The token only
// carries an opaque session id; flow state stays server side.
type Sessions struct {
	Secret string
	TTL    time.Duration
}

func SetupSessions(secret string, ttl time.Duration) Sessions {
	return Sessions{
		Secret: secret,
		TTL:    ttl,
	}
}

func (s Sessions) IssueToken(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("session id is required to issue token")
	}
	if s.Secret == "" {
		return "", errors.New("session secret is not configured")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	})

	tokenStr, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		return "", errors.New("unable to sign the session token")
	}
	return tokenStr, nil
}

// VerifyToken returns the session id carried by tokenString.
func (s Sessions) VerifyToken(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", errors.New("missing session token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.New("session expired")
		}
		return "", errors.New("session token parse error")
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid session claims")
	}
	return claims.Subject, nil
}
