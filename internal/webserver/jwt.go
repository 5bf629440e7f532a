package webserver

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CreateToken mints a signed HS256 bearer token whose subject is the
// administrator id.
func CreateToken(secret string, adminID int64, expire time.Duration) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(adminID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken verifies a bearer token and returns the administrator id it was
// issued for. Expired or tampered tokens fail verification.
func ParseToken(secret, tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse token subject")
	}
	return id, nil
}

// CurrentAdminID extracts the authenticated administrator id placed in the
// context by the JWT middleware. The middleware hands over jwt/v5 types.
func CurrentAdminID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(*jwtv5.RegisteredClaims)
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
