// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

package vc

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Luan-Diniz/VC-JWT-Demo/identity"
	"github.com/Luan-Diniz/VC-JWT-Demo/types"
)

// Result is returned by Verifier.Verify on success.
type Result struct {
	// Verified is true when the token's signature is valid and the embedded
	// credential's claims check out.
	Verified bool
	// Credential is the embedded vc claim, unchanged from issuance.
	Credential *Credential
	// IssuerDID is the DID resolved from the token's kid header.
	IssuerDID string
	// SubjectID is the DID extracted from credentialSubject.id, if present.
	SubjectID string
	// ExpiresAt is the token's exp claim, if present.
	ExpiresAt *time.Time
}

// VerifierOptions configures a Verifier.
type VerifierOptions struct {
	// Resolver maps the issuer DID to its public key. Defaults to the pure
	// did:key resolver.
	Resolver identity.Resolver
	// Clock supplies the current time for nbf/exp checks. Defaults to time.Now.
	Clock func() time.Time
}

// Verifier checks JWT-VC tokens: signature against the resolved issuer key,
// then the credential claims. Every failure is reported as one of the typed
// errors in the types package, never collapsed into a bare boolean.
type Verifier struct {
	resolver identity.Resolver
	clock    func() time.Time
}

// NewVerifier constructs a Verifier from the provided options.
func NewVerifier(opts VerifierOptions) *Verifier {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = identity.NewKeyResolver()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Verifier{resolver: resolver, clock: clock}
}

// Verify parses and verifies a JWT-VC compact token.
//
// Failure modes, in evaluation order:
//   - *types.ErrMalformedToken: not three non-empty segments, or the header
//     or payload segment is not base64url-encoded JSON.
//   - *types.ErrUnresolvableDID: the kid header is missing or does not name
//     a resolvable did:key DID.
//   - *types.ErrSignatureInvalid: the signature segment does not decode or
//     does not verify against the resolved public key.
//   - *types.ErrExpiredCredential: nbf is in the future or exp is in the past.
//   - *types.ErrInvalidCredential: the vc claim is missing, is not typed as a
//     VerifiableCredential, or names a different issuer than the signing DID.
func (v *Verifier) Verify(ctx context.Context, token string) (*Result, error) {
	header, err := preflight(token)
	if err != nil {
		return nil, err
	}

	if header.Kid == "" {
		return nil, &types.ErrUnresolvableDID{Reason: "token header has no kid"}
	}
	did, err := identity.DIDFromKeyID(header.Kid)
	if err != nil {
		return nil, err
	}

	publicKey, err := v.resolver.Resolve(ctx, did)
	if err != nil {
		var unresolvable *types.ErrUnresolvableDID
		if errors.As(err, &unresolvable) {
			return nil, err
		}
		return nil, &types.ErrUnresolvableDID{DID: did, Reason: err.Error()}
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{types.SigningAlgorithmEdDSA}),
		jwt.WithTimeFunc(v.clock),
	)
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return publicKey, nil
	}); err != nil {
		return nil, mapJWTError(err)
	}

	if claims.VC == nil {
		return nil, &types.ErrInvalidCredential{Reason: "token has no vc claim"}
	}
	if !contains(claims.VC.Type, types.CredentialTypeBase) {
		return nil, &types.ErrInvalidCredential{Reason: `vc.type does not include "` + types.CredentialTypeBase + `"`}
	}
	if claims.VC.Issuer != "" && claims.VC.Issuer != did {
		return nil, &types.ErrInvalidCredential{
			Reason: fmt.Sprintf("vc.issuer %q does not match signing DID %q", claims.VC.Issuer, did),
		}
	}

	subjectID, _ := claims.VC.SubjectID()

	result := &Result{
		Verified:   true,
		Credential: claims.VC,
		IssuerDID:  did,
		SubjectID:  subjectID,
	}
	if claims.ExpiresAt != nil {
		expiry := claims.ExpiresAt.Time
		result.ExpiresAt = &expiry
	}
	return result, nil
}

// tokenHeader is the subset of the JOSE header the verifier inspects.
type tokenHeader struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
}

// preflight enforces the compact-JWT shape before any cryptography: exactly
// three non-empty segments, header and payload base64url-decoding to JSON.
// A signature segment that is not base64url is reported as a signature
// failure rather than a malformed token, so that any tampering with the
// signature surfaces uniformly as ErrSignatureInvalid.
func preflight(token string) (*tokenHeader, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, &types.ErrMalformedToken{Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}
	for i, part := range parts {
		if part == "" {
			return nil, &types.ErrMalformedToken{Reason: fmt.Sprintf("segment %d is empty", i+1)}
		}
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, &types.ErrMalformedToken{Reason: "header segment is not base64url"}
	}
	header := &tokenHeader{}
	if err := json.Unmarshal(headerBytes, header); err != nil {
		return nil, &types.ErrMalformedToken{Reason: "header segment is not JSON"}
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, &types.ErrMalformedToken{Reason: "payload segment is not base64url"}
	}
	if !json.Valid(payloadBytes) {
		return nil, &types.ErrMalformedToken{Reason: "payload segment is not JSON"}
	}

	if _, err := base64.RawURLEncoding.DecodeString(parts[2]); err != nil {
		return nil, &types.ErrSignatureInvalid{Reason: "signature segment is not base64url"}
	}

	return header, nil
}

// mapJWTError translates golang-jwt sentinel errors into the typed taxonomy.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &types.ErrExpiredCredential{Reason: "token has expired"}
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return &types.ErrExpiredCredential{Reason: "token is not valid yet"}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrEd25519Verification):
		return &types.ErrSignatureInvalid{}
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &types.ErrMalformedToken{Reason: err.Error()}
	default:
		return &types.ErrMalformedToken{Reason: err.Error()}
	}
}

// VerifyWithKey verifies a token against a fixed public key, bypassing DID
// resolution. Useful when the caller already holds the issuer's key.
func (v *Verifier) VerifyWithKey(ctx context.Context, token string, publicKey ed25519.PublicKey) (*Result, error) {
	fixed := identity.ResolverFunc(func(context.Context, string) (ed25519.PublicKey, error) {
		return publicKey, nil
	})
	return (&Verifier{resolver: fixed, clock: v.clock}).Verify(ctx, token)
}
