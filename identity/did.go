// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

package identity

import (
	"crypto/ed25519"
	"fmt"
	"strings"
	"time"

	"github.com/multiformats/go-multibase"

	"github.com/Luan-Diniz/VC-JWT-Demo/types"
)

// ed25519MulticodecPrefix is the multicodec varint prefix for Ed25519 public keys (0xed01).
var ed25519MulticodecPrefix = []byte{0xed, 0x01}

const keyDIDPrefix = "did:key:"

// Document represents a W3C DID Document.
type Document struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
	Created            string               `json:"created,omitempty"`
}

// VerificationMethod is an entry in a DID Document's verificationMethod array.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase"`
}

// DeriveKeyDID creates a did:key DID from an Ed25519 public key.
// The key is encoded as multibase base58btc with the 0xed01 multicodec prefix.
func DeriveKeyDID(publicKey ed25519.PublicKey) (string, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return "", fmt.Errorf("did: invalid Ed25519 public key length %d", len(publicKey))
	}

	// Prepend the multicodec prefix before encoding.
	prefixed := make([]byte, 0, len(ed25519MulticodecPrefix)+len(publicKey))
	prefixed = append(prefixed, ed25519MulticodecPrefix...)
	prefixed = append(prefixed, publicKey...)

	encoded, err := multibase.Encode(multibase.Base58BTC, prefixed)
	if err != nil {
		return "", fmt.Errorf("did: multibase encode: %w", err)
	}

	return keyDIDPrefix + encoded, nil
}

// VerificationMethodID returns the DID URL identifying a did:key DID's single
// verification method. Per the did:key method, the fragment is the
// method-specific identifier repeated.
func VerificationMethodID(did string) (string, error) {
	msid, err := methodSpecificID(did)
	if err != nil {
		return "", err
	}
	return did + "#" + msid, nil
}

// DIDFromKeyID extracts the issuer DID from a verification-method DID URL by
// stripping the fragment.
func DIDFromKeyID(kid string) (string, error) {
	did, _, _ := strings.Cut(kid, "#")
	if _, err := methodSpecificID(did); err != nil {
		return "", err
	}
	return did, nil
}

// ParseMethod extracts the method string from a DID (e.g. "key" from "did:key:...").
func ParseMethod(did string) (types.DIDMethod, error) {
	parts := strings.SplitN(did, ":", 3)
	if len(parts) < 3 || parts[0] != "did" {
		return "", &types.ErrUnresolvableDID{DID: did, Reason: "must start with 'did:'"}
	}
	switch parts[1] {
	case "key":
		return types.DIDMethodKey, nil
	default:
		return "", &types.ErrUnresolvableDID{DID: did, Reason: fmt.Sprintf("unsupported DID method %q", parts[1])}
	}
}

// ExtractPublicKey decodes the Ed25519 public key embedded in a did:key DID.
// This is the complete resolution step for the did:key method: no registry
// or network access is involved.
func ExtractPublicKey(did string) (ed25519.PublicKey, error) {
	encoded, err := methodSpecificID(did)
	if err != nil {
		return nil, err
	}

	_, decoded, err := multibase.Decode(encoded)
	if err != nil {
		return nil, &types.ErrUnresolvableDID{DID: did, Reason: fmt.Sprintf("multibase decode: %v", err)}
	}

	if len(decoded) < len(ed25519MulticodecPrefix) {
		return nil, &types.ErrUnresolvableDID{DID: did, Reason: "decoded bytes too short"}
	}

	// Verify the multicodec prefix.
	for i, b := range ed25519MulticodecPrefix {
		if decoded[i] != b {
			return nil, &types.ErrUnresolvableDID{DID: did, Reason: "unexpected multicodec prefix"}
		}
	}

	rawKey := decoded[len(ed25519MulticodecPrefix):]
	if len(rawKey) != ed25519.PublicKeySize {
		return nil, &types.ErrUnresolvableDID{DID: did, Reason: fmt.Sprintf("expected %d key bytes, got %d", ed25519.PublicKeySize, len(rawKey))}
	}

	return ed25519.PublicKey(rawKey), nil
}

// BuildDocument synthesizes the DID Document a did:key DID implies.
func BuildDocument(did string) (*Document, error) {
	publicKey, err := ExtractPublicKey(did)
	if err != nil {
		return nil, err
	}

	encoded, err := multibase.Encode(multibase.Base58BTC, publicKey)
	if err != nil {
		return nil, fmt.Errorf("did: encode public key: %w", err)
	}

	vmID, err := VerificationMethodID(did)
	if err != nil {
		return nil, err
	}

	return &Document{
		Context: []string{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/suites/ed25519-2020/v1",
		},
		ID: did,
		VerificationMethod: []VerificationMethod{
			{
				ID:                 vmID,
				Type:               string(types.VerificationMethodEd25519),
				Controller:         did,
				PublicKeyMultibase: encoded,
			},
		},
		Authentication:  []string{vmID},
		AssertionMethod: []string{vmID},
		Created:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// methodSpecificID validates the did:key shape and returns the multibase part.
func methodSpecificID(did string) (string, error) {
	if _, err := ParseMethod(did); err != nil {
		return "", err
	}
	msid := strings.TrimPrefix(did, keyDIDPrefix)
	if msid == "" {
		return "", &types.ErrUnresolvableDID{DID: did, Reason: "empty method-specific identifier"}
	}
	if !strings.HasPrefix(msid, "z") {
		return "", &types.ErrUnresolvableDID{DID: did, Reason: "method-specific identifier must be multibase base58btc ('z')"}
	}
	return msid, nil
}
