// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

package vc

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Luan-Diniz/VC-JWT-Demo/identity"
)

// Signer is satisfied by any key store that can sign arbitrary bytes.
// keys.InMemoryKeyStore is a compatible implementation.
type Signer interface {
	Sign(ctx context.Context, keyID string, message []byte) ([]byte, error)
}

// IssuerOptions configures an Issuer.
type IssuerOptions struct {
	// Signer produces Ed25519 signatures over the JWT signing input. Required.
	Signer Signer
	// Clock supplies issuance time for the nbf/iat claims. Defaults to
	// time.Now. Inject a fixed clock for deterministic tokens.
	Clock func() time.Time
}

// Issuer creates Verifiable Credentials in JWT form, signed with EdDSA.
type Issuer struct {
	signer Signer
	clock  func() time.Time
}

// NewIssuer constructs an Issuer from the provided options.
func NewIssuer(opts IssuerOptions) (*Issuer, error) {
	if opts.Signer == nil {
		return nil, fmt.Errorf("vc: IssuerOptions.Signer must not be nil")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Issuer{signer: opts.Signer, clock: clock}, nil
}

// IssueOptions carries parameters for Issuer.Issue.
type IssueOptions struct {
	// Template is the credential to embed. Its @context, type, and
	// credentialSubject fields are required; issuer and issuanceDate are
	// filled in by Issue. Required.
	Template *Credential
	// IssuerDID is the did:key DID of the issuer. Required.
	IssuerDID string
	// SigningKeyID is the Signer key ID holding the DID's private key. Required.
	SigningKeyID string
	// TTL sets the credential's expiry relative to issuance time. Zero means
	// no expiry unless the template carries an ExpirationDate.
	TTL time.Duration
}

// Issue builds and signs a JWT-VC compact token.
//
// The credential is embedded under the vc claim with issuer and issuanceDate
// filled in; the registered claims mirror it (iss = issuer DID, sub =
// credentialSubject.id, nbf/iat = issuance time, exp = expiry if any). The
// header carries alg=EdDSA and kid set to the DID's verification method URL.
// The template itself is never mutated.
func (i *Issuer) Issue(ctx context.Context, opts IssueOptions) (string, error) {
	if opts.IssuerDID == "" {
		return "", fmt.Errorf("vc: IssueOptions.IssuerDID must not be empty")
	}
	if opts.SigningKeyID == "" {
		return "", fmt.Errorf("vc: IssueOptions.SigningKeyID must not be empty")
	}
	if err := opts.Template.Validate(); err != nil {
		return "", err
	}

	kid, err := identity.VerificationMethodID(opts.IssuerDID)
	if err != nil {
		return "", fmt.Errorf("vc: derive kid: %w", err)
	}

	now := i.clock().UTC()

	// Work on a copy so the caller's template stays untouched.
	cred := *opts.Template
	cred.Issuer = opts.IssuerDID
	if cred.ID == "" {
		cred.ID = "urn:uuid:" + uuid.NewString()
	}
	cred.IssuanceDate = now.Format(time.RFC3339)

	var expiresAt *jwt.NumericDate
	switch {
	case opts.TTL > 0:
		expiry := now.Add(opts.TTL)
		cred.ExpirationDate = expiry.Format(time.RFC3339)
		expiresAt = jwt.NewNumericDate(expiry)
	case cred.ExpirationDate != "":
		expiry, err := time.Parse(time.RFC3339, cred.ExpirationDate)
		if err != nil {
			return "", fmt.Errorf("vc: parse template ExpirationDate: %w", err)
		}
		expiresAt = jwt.NewNumericDate(expiry)
	}

	subjectID, _ := cred.SubjectID()

	claims := Claims{
		VC: &cred,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    opts.IssuerDID,
			Subject:   subjectID,
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
			ID:        cred.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = kid

	// Sign through the key store rather than handing the private key to the
	// JWT library, so key material stays behind the Signer boundary.
	signingInput, err := token.SigningString()
	if err != nil {
		return "", fmt.Errorf("vc: build signing input: %w", err)
	}
	sig, err := i.signer.Sign(ctx, opts.SigningKeyID, []byte(signingInput))
	if err != nil {
		return "", fmt.Errorf("vc: sign token: %w", err)
	}

	return signingInput + "." + token.EncodeSegment(sig), nil
}
