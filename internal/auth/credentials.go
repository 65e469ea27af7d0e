// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role in the single-operator deployment model.
const RoleAdmin = "admin"

// CredentialStore verifies the configured admin login. The password is
// bcrypt-hashed once at startup so plaintext never sits in memory past
// initialization.
type CredentialStore struct {
	username     string
	passwordHash []byte
}

// NewCredentialStore hashes the configured admin password.
func NewCredentialStore(username, password string) (*CredentialStore, error) {
	if username == "" {
		return nil, fmt.Errorf("admin username is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("admin password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &CredentialStore{
		username:     username,
		passwordHash: hash,
	}, nil
}

// Verify checks a username/password pair. Both the username comparison
// and the bcrypt check run on every call so failures take the same time
// regardless of which part was wrong.
func (s *CredentialStore) Verify(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(s.username), []byte(username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return usernameMatch && passwordMatch
}
