// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// # API Keys

const (
	// APIKeyPrefix marks dashboard keys so they are recognisable in logs and secret scanners.
	APIKeyPrefix = "kd_"

	// APIKeyBytes is the amount of random data behind every key.
	APIKeyBytes = 32
)

// GenerateAPIKey returns a fresh key: [APIKeyPrefix] followed by 64 hex characters.
//
// Randomness comes from crypto/rand only. A read failure is returned as-is and
// must abort the calling operation.
func GenerateAPIKey() (string, error) {
	raw := make([]byte, APIKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate api key: %w", err)
	}
	return APIKeyPrefix + hex.EncodeToString(raw), nil
}

// HashAPIKey returns the SHA-256 hex digest stored in place of the raw key.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// MatchAPIKey compares a presented key with a stored digest in constant time.
//
// An empty digest never matches, so an identity without a key cannot be
// authenticated by an empty header.
func MatchAPIKey(presented, storedDigest string) bool {
	if presented == "" || storedDigest == "" {
		return false
	}
	actual := HashAPIKey(presented)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(storedDigest)) == 1
}

// ValidAPIKeyFormat reports whether key looks like a dashboard key.
func ValidAPIKeyFormat(key string) bool {
	body, found := strings.CutPrefix(key, APIKeyPrefix)
	if !found || len(body) != APIKeyBytes*2 {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}
