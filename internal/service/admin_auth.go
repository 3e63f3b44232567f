package service

import (
	"crypto/subtle"
	"strings"
)

// AdminAuthenticator verifies the single static admin credential configured
// for the console. There is no admin record in the user store.
type AdminAuthenticator struct {
	email    string
	password string
}

func NewAdminAuthenticator(email, password string) *AdminAuthenticator {
	return &AdminAuthenticator{
		email:    strings.TrimSpace(email),
		password: password,
	}
}

// Verify reports whether the supplied credentials match the configured admin
// account. Both comparisons run in constant time.
func (a *AdminAuthenticator) Verify(email, password string) bool {
	if a.email == "" || a.password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(email)), []byte(a.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return emailOK && passwordOK
}

// Email returns the configured admin email, used to attribute audit events.
func (a *AdminAuthenticator) Email() string {
	return a.email
}
