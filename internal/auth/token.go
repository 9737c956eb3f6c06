// Package auth issues and checks write tokens for live charts.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const scopeWrite = "chart:write"

var ErrInvalidToken = errors.New("invalid token")

// Service signs tokens that grant write access to one live chart.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueChartToken returns a token allowing its holder to push samples to,
// reset and delete chartID.
func (s *Service) IssueChartToken(chartID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   chartID,
		"scope": scopeWrite,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateChartToken checks that tokenString was issued for chartID and
// has not expired.
func (s *Service) ValidateChartToken(tokenString, chartID string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ErrInvalidToken
	}
	if sub, _ := claims["sub"].(string); sub != chartID {
		return fmt.Errorf("%w: issued for another chart", ErrInvalidToken)
	}
	if scope, _ := claims["scope"].(string); scope != scopeWrite {
		return fmt.Errorf("%w: missing write scope", ErrInvalidToken)
	}
	return nil
}

// TokenFromRequest reads a bearer token from the Authorization header or,
// for websocket upgrades, the token query parameter.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return r.URL.Query().Get("token")
}
