package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"campus-experiment/clubdesk/internal/constants"
)

// SessionClaims is the token payload minted for the mobile client. The
// subject is the campus user id; club and role scope what the leader
// screens may touch.
type SessionClaims struct {
	ClubID int64              `json:"club_id"`
	Role   constants.ClubRole `json:"role"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) UserID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

func (c *SessionClaims) IsLeader() bool {
	return c.Role == constants.RoleLeader || c.Role.IsStaff()
}

// TokenVerifier signs and validates session tokens with a shared HMAC key.
type TokenVerifier struct {
	key    []byte
	issuer string
}

func NewTokenVerifier(key, issuer string) *TokenVerifier {
	return &TokenVerifier{key: []byte(key), issuer: issuer}
}

// Sign mints a token for a user scoped to one club role.
func (v *TokenVerifier) Sign(userID, clubID int64, role constants.ClubRole, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		ClubID: clubID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    v.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token string and returns its claims.
func (v *TokenVerifier) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.key, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
