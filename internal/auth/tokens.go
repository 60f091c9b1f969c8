package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/homeservices/internal/domain/role"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the payload carried by both token kinds.
type Identity struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   role.Role `json:"role"`
}

type claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs access and refresh tokens with distinct secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenManager) IssueAccess(id Identity) (string, error) {
	return m.issue(id, m.accessSecret, m.accessTTL)
}

func (m *TokenManager) IssueRefresh(id Identity) (string, error) {
	return m.issue(id, m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) VerifyAccess(token string) (Identity, error) {
	return m.verify(token, m.accessSecret)
}

func (m *TokenManager) VerifyRefresh(token string) (Identity, error) {
	return m.verify(token, m.refreshSecret)
}

func (m *TokenManager) issue(id Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		UserID: id.UserID.String(),
		Email:  id.Email,
		Role:   string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(secret)
}

func (m *TokenManager) verify(tokenString string, secret []byte) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	uid, err := uuid.Parse(c.UserID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad userId claim", ErrInvalidToken)
	}
	r := role.Role(c.Role)
	if !r.Valid() {
		return Identity{}, fmt.Errorf("%w: bad role claim", ErrInvalidToken)
	}

	return Identity{UserID: uid, Email: c.Email, Role: r}, nil
}
