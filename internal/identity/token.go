package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// User is the locally stored user object.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// parseClaims reads claims without verifying the signature. The backend
// verifies tokens; the client only needs to know whose token it holds.
func parseClaims(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// SubjectFromToken returns the token's "sub" claim.
func SubjectFromToken(token string) (string, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// UserFromToken builds a user object from the token's claims.
func UserFromToken(token string) (User, error) {
	claims, err := parseClaims(token)
	if err != nil {
		return User{}, err
	}
	if claims.Subject == "" {
		return User{}, fmt.Errorf("token has no subject claim")
	}
	return User{ID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
