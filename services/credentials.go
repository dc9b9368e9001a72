package services

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	CredentialPolicyPlain  = "plain"
	CredentialPolicyBcrypt = "bcrypt"
)

// CredentialPolicy decides how passwords are stored and checked.
type CredentialPolicy interface {
	Hash(password string) (string, error)
	Verify(stored, password string) (bool, error)
	Name() string
}

// NewCredentialPolicy returns the policy registered under name.
func NewCredentialPolicy(name string) (CredentialPolicy, error) {
	switch name {
	case "", CredentialPolicyPlain:
		return plainCredentialPolicy{}, nil
	case CredentialPolicyBcrypt:
		return bcryptCredentialPolicy{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown credential policy %q", name)
	}
}

// plainCredentialPolicy stores the password as given, compatible with data
// written by earlier portal versions.
type plainCredentialPolicy struct{}

func (plainCredentialPolicy) Hash(password string) (string, error) {
	return password, nil
}

func (plainCredentialPolicy) Verify(stored, password string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1, nil
}

func (plainCredentialPolicy) Name() string { return CredentialPolicyPlain }

type bcryptCredentialPolicy struct {
	cost int
}

func (p bcryptCredentialPolicy) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (p bcryptCredentialPolicy) Verify(stored, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("failed to compare password hash: %w", err)
}

func (bcryptCredentialPolicy) Name() string { return CredentialPolicyBcrypt }
