package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims is what a staff access token carries: the account id in
// the subject and the role used for route authorization.
type StaffClaims struct {
	StaffID uint
	Role    string
}

// NewAccessToken signs an HS256 JWT for a staff account. Returns the
// serialized token and its expiry.
func NewAccessToken(secret string, staffID uint, role string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(staffID), 10),
		"role": role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken validates signature and expiry and extracts the
// staff claims. Only HS256 is accepted.
func ParseAccessToken(secret, tokenString string) (*StaffClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}
	role, _ := claims["role"].(string)
	return &StaffClaims{StaffID: uint(id), Role: role}, nil
}
