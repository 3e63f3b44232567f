// Package token mints and verifies the bearer credentials used by the
// storefront and admin console. Tokens are self-contained HS256 JWTs carrying
// only a subject id; there is no expiry claim and no server-side revocation
// list, so a token stays valid until the signing secret rotates.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// AdminSubject is the fixed synthetic subject id of the single admin
// principal. Admin tokens are minted over this id with the server secret,
// never over the raw admin credentials.
const AdminSubject = "admin"

// ErrInvalidToken indicates a token that fails signature or format checks.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	jwt.RegisteredClaims
}

// Service signs and verifies bearer tokens with a process-wide secret.
// Minting and verification are pure computations and safe for concurrent use.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Mint returns a signed token whose subject is the given id. Impersonation
// tokens are minted through this same path and are indistinguishable from a
// token obtained by a normal login.
func (s *Service) Mint(subjectID string) (string, error) {
	if subjectID == "" {
		return "", errors.New("subject id is required")
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subjectID,
		},
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// MintAdmin returns a token for the admin singleton principal.
func (s *Service) MintAdmin() (string, error) {
	return s.Mint(AdminSubject)
}

// Verify checks the token signature and returns the subject id. It does not
// consult any store: a deleted user's old token still verifies here, and the
// authentication gate must re-check that the subject exists.
func (s *Service) Verify(tokenString string) (string, error) {
	parsed := &claims{}
	tok, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if parsed.Subject == "" {
		return "", ErrInvalidToken
	}
	return parsed.Subject, nil
}

// IsAdminSubject reports whether a verified subject id is the admin principal.
func IsAdminSubject(subjectID string) bool {
	return subjectID == AdminSubject
}
