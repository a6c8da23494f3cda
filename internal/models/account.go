package models

import (
	"fmt"
	"strings"
	"time"
)

// Account is the public view of a registered user. It never carries the
// credential.
type Account struct {
	ID           string `json:"id" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	DisplayName  string `json:"displayName" validate:"required"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// AccountRecord is an Account as persisted in the accounts mapping.
type AccountRecord struct {
	Account
	SecretHash string `json:"secretHash" validate:"required,argon2id"`
}

func (r AccountRecord) Validate() error {
	return validate.Struct(r)
}

// AccountBook maps normalized emails to account records.
type AccountBook map[string]AccountRecord

func (b AccountBook) Validate() error {
	for key, rec := range b {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("account %q: %w", key, err)
		}
		if key != NormalizeEmail(rec.Email) {
			return fmt.Errorf("account key %q does not match email %q", key, rec.Email)
		}
	}
	return nil
}

// FindByID returns the record with the given id.
func (b AccountBook) FindByID(id string) (AccountRecord, bool) {
	for _, rec := range b {
		if rec.ID == id {
			return rec, true
		}
	}
	return AccountRecord{}, false
}

// NormalizeEmail is the case-insensitive identity of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Session is the persisted reference to the current account.
type Session struct {
	Account  Account   `json:"account"`
	Token    string    `json:"token" validate:"required"`
	IssuedAt time.Time `json:"issuedAt" validate:"required"`
}

func (s Session) Validate() error {
	return validate.Struct(s)
}
