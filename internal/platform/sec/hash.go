// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package sec

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// # Password Hashing Parameters

const (
	// SaltLength is the number of random salt bytes drawn per hash.
	SaltLength = 16

	// Iterations is the PBKDF2 round count.
	Iterations = 100_000

	// KeyLength is the derived key size; it matches the SHA-512 digest size.
	KeyLength = sha512.Size

	// hashSeparator splits the encoded salt from the derived key.
	hashSeparator = ":"
)

// HashPassword derives a storable hash from a plain-text password.
//
// The result is self-describing: "hex(salt):hex(key)". Empty passwords are
// hashed like any other input; rejecting them is the caller's job.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to read salt: %w", err)
	}

	key := derive(plainTextPassword, salt)
	return hex.EncodeToString(salt) + hashSeparator + hex.EncodeToString(key), nil
}

// CheckPasswordHash reports whether the password matches the stored hash.
//
// Malformed hashes (missing separator, bad hex, wrong lengths) yield false.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	encodedSalt, encodedKey, found := strings.Cut(existingHash, hashSeparator)
	if !found {
		return false
	}

	salt, err := hex.DecodeString(encodedSalt)
	if err != nil || len(salt) == 0 {
		return false
	}

	expected, err := hex.DecodeString(encodedKey)
	if err != nil || len(expected) != KeyLength {
		return false
	}

	actual := derive(plainTextPassword, salt)
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

// derive runs PBKDF2-HMAC-SHA512 with the package parameters.
func derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha512.New)
}
