package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 7 * 24 * time.Hour

// Sign creates an HS256 token carrying the farmer's phone as subject.
func Sign(secret, phone, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  phone,
		"role": role,
		"exp":  time.Now().Add(TokenTTL).Unix(),
		"iat":  time.Now().Unix(),
		"iss":  "agrisahayak",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse validates the token and returns the phone and role claims.
func Parse(secret, tokenStr string) (string, string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	phone, _ := claims["sub"].(string)
	if phone == "" {
		return "", "", errors.New("no subject")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = "farmer"
	}
	return phone, role, nil
}
