// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

// Package identity implements the did:key method: DID derivation from
// Ed25519 public keys, local resolution back to key material, and a
// Provider that ties generated keys to their DIDs.
package identity

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"sync"
	"time"

	"github.com/Luan-Diniz/VC-JWT-Demo/keys"
)

// Identity is a did:key identity backed by a key pair held in a KeyManager.
type Identity struct {
	// DID is the did:key Decentralized Identifier.
	DID string `json:"did"`
	// KeyID is the KeyManager key ID corresponding to PublicKey.
	KeyID string `json:"keyId"`
	// PublicKey is the identity's Ed25519 public key.
	PublicKey ed25519.PublicKey `json:"publicKey"`
	// CreatedAt is the UTC timestamp when this identity was created.
	CreatedAt time.Time `json:"createdAt"`
}

// VerificationMethodID returns the DID URL of this identity's verification
// method, used as the JWT kid header.
func (id *Identity) VerificationMethodID() (string, error) {
	return VerificationMethodID(id.DID)
}

// ProviderOptions configures a Provider.
type ProviderOptions struct {
	// KeyManager stores generated key pairs. If nil, an InMemoryKeyStore is used.
	KeyManager keys.KeyManager
}

// Provider generates did:key identities and tracks the DID → key ID mapping
// so credential issuers can sign by DID. All exported methods are safe for
// concurrent use from multiple goroutines.
type Provider struct {
	keyManager keys.KeyManager

	mu         sync.RWMutex
	keyIDByDID map[string]string
}

// NewProvider constructs a Provider from the provided options.
func NewProvider(opts ProviderOptions) *Provider {
	km := opts.KeyManager
	if km == nil {
		km = keys.NewInMemoryKeyStore()
	}
	return &Provider{
		keyManager: km,
		keyIDByDID: make(map[string]string),
	}
}

// GenerateIdentity creates a fresh Ed25519 key pair, derives its did:key DID,
// and registers the pairing. The DID is a deterministic function of the
// generated public key.
func (p *Provider) GenerateIdentity(ctx context.Context) (*Identity, error) {
	kp, err := p.keyManager.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("identity: generate key pair: %w", err)
	}
	return p.register(kp)
}

// IdentityFromSeed derives the identity for a fixed 32-byte Ed25519 seed and
// registers it. Same seed, same DID.
func (p *Provider) IdentityFromSeed(ctx context.Context, seed []byte) (*Identity, error) {
	kp, err := keys.FromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("identity: derive key pair from seed: %w", err)
	}
	if err := p.keyManager.Store(ctx, kp); err != nil {
		return nil, fmt.Errorf("identity: store key pair: %w", err)
	}
	return p.register(kp)
}

func (p *Provider) register(kp *keys.KeyPair) (*Identity, error) {
	did, err := DeriveKeyDID(kp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("identity: derive DID: %w", err)
	}

	p.mu.Lock()
	p.keyIDByDID[did] = kp.KeyID
	p.mu.Unlock()

	return &Identity{
		DID:       did,
		KeyID:     kp.KeyID,
		PublicKey: kp.PublicKey,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SigningKeyID returns the KeyManager key ID registered for a DID.
func (p *Provider) SigningKeyID(did string) (string, bool) {
	p.mu.RLock()
	keyID, ok := p.keyIDByDID[did]
	p.mu.RUnlock()
	return keyID, ok
}

// KeyManager returns the underlying KeyManager for direct key operations.
func (p *Provider) KeyManager() keys.KeyManager {
	return p.keyManager
}
