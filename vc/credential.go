// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

// Package vc implements W3C Verifiable Credentials serialized as JWTs:
// the credential model, an Ed25519 (EdDSA) issuer, and a verifier that
// resolves issuer DIDs through an injected Resolver.
package vc

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/Luan-Diniz/VC-JWT-Demo/types"
)

// Credential is a W3C Verifiable Credential. Only generic W3C VC schemas
// are supported.
type Credential struct {
	Context           []string               `json:"@context"`
	ID                string                 `json:"id,omitempty"`
	Type              []string               `json:"type"`
	Issuer            string                 `json:"issuer,omitempty"`
	IssuanceDate      string                 `json:"issuanceDate,omitempty"`
	ExpirationDate    string                 `json:"expirationDate,omitempty"`
	CredentialSubject map[string]interface{} `json:"credentialSubject"`
}

// Claims is the JWT-VC payload: the credential under the vc claim plus the
// standard registered claims (iss, sub, nbf, ...).
type Claims struct {
	VC *Credential `json:"vc"`
	jwt.RegisteredClaims
}

// Validate checks the required VC shape: @context must include the base
// credentials context, type must include "VerifiableCredential", and
// credentialSubject must be non-empty.
func (c *Credential) Validate() error {
	if c == nil {
		return &types.ErrInvalidPayload{Reason: "credential is nil"}
	}
	if !contains(c.Context, types.CredentialContextV1) {
		return &types.ErrInvalidPayload{Reason: "@context must include " + types.CredentialContextV1}
	}
	if !contains(c.Type, types.CredentialTypeBase) {
		return &types.ErrInvalidPayload{Reason: `type must include "` + types.CredentialTypeBase + `"`}
	}
	if len(c.CredentialSubject) == 0 {
		return &types.ErrInvalidPayload{Reason: "credentialSubject must not be empty"}
	}
	return nil
}

// SubjectID retrieves the "id" field from the credentialSubject map.
func (c *Credential) SubjectID() (string, bool) {
	if c == nil || c.CredentialSubject == nil {
		return "", false
	}
	id, ok := c.CredentialSubject["id"]
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
