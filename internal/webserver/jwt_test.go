package webserver

import (
	"net/http/httptest"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func TestTokenRoundTrip(t *testing.T) {
	signed, err := CreateToken("test-secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	id, err := ParseToken("test-secret", signed)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}

	if _, err := ParseToken("wrong-secret", signed); err == nil {
		t.Error("token accepted with the wrong secret")
	}

	expired, err := CreateToken("test-secret", 42, -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if _, err := ParseToken("test-secret", expired); err == nil {
		t.Error("expired token accepted")
	}
}

func TestCurrentAdminID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest("GET", "/", nil), httptest.NewRecorder())

	if got := CurrentAdminID(c); got != 0 {
		t.Errorf("no token in context: id = %d, want 0", got)
	}

	// The middleware verifies the bearer token with jwt/v5 and stores the
	// parsed *jwtv5.Token under "user"; CurrentAdminID must read that shape.
	signed, err := CreateToken("test-secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	parsed, err := jwtv5.ParseWithClaims(signed, &jwtv5.RegisteredClaims{},
		func(*jwtv5.Token) (interface{}, error) { return []byte("test-secret"), nil })
	if err != nil {
		t.Fatalf("parse minted token with jwt/v5: %v", err)
	}
	c.Set("user", parsed)

	if got := CurrentAdminID(c); got != 42 {
		t.Errorf("id = %d, want 42", got)
	}
}
