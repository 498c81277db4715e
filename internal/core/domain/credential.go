package domain

import (
	"regexp"
	"strings"
	"time"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Credential is the stored login record of one user. The PIN itself is
// never kept, only its bcrypt hash.
type Credential struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	PinHash     string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// CanonicalUsername is the storage key form of a username.
func CanonicalUsername(username string) string {
	return strings.ToLower(username)
}

// ValidPIN reports whether pin is exactly four decimal digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}
