// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

package types

import "fmt"

// ErrEntropy is returned when the random source cannot supply key material.
type ErrEntropy struct {
	Err error
}

func (e *ErrEntropy) Error() string {
	return fmt.Sprintf("entropy source failed: %v", e.Err)
}

func (e *ErrEntropy) Unwrap() error { return e.Err }

// ErrInvalidPayload is returned when a credential template violates the
// required VC shape (@context, type, credentialSubject).
type ErrInvalidPayload struct {
	Reason string
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid credential payload: %s", e.Reason)
}

// ErrMalformedToken is returned when a JWT-VC is not a well-formed compact
// token (segment count, base64url content, or JSON structure).
type ErrMalformedToken struct {
	Reason string
}

func (e *ErrMalformedToken) Error() string {
	return fmt.Sprintf("malformed token: %s", e.Reason)
}

// ErrUnresolvableDID is returned when a DID cannot be resolved to a public key.
type ErrUnresolvableDID struct {
	DID    string
	Reason string
}

func (e *ErrUnresolvableDID) Error() string {
	return fmt.Sprintf("unresolvable DID %q: %s", e.DID, e.Reason)
}

// ErrSignatureInvalid is returned when a token's Ed25519 signature does not
// verify against the resolved public key.
type ErrSignatureInvalid struct {
	Reason string
}

func (e *ErrSignatureInvalid) Error() string {
	if e.Reason == "" {
		return "token signature is invalid"
	}
	return fmt.Sprintf("token signature is invalid: %s", e.Reason)
}

// ErrInvalidCredential is returned when a token verifies cryptographically
// but its embedded vc claim is missing or not a Verifiable Credential.
type ErrInvalidCredential struct {
	Reason string
}

func (e *ErrInvalidCredential) Error() string {
	return fmt.Sprintf("invalid credential: %s", e.Reason)
}

// ErrExpiredCredential is returned when a credential's validity window
// (nbf/exp) excludes the verification time.
type ErrExpiredCredential struct {
	Reason string
}

func (e *ErrExpiredCredential) Error() string {
	return fmt.Sprintf("credential outside validity window: %s", e.Reason)
}
