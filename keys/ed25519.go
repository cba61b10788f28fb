// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

// Package keys provides Ed25519 key pairs and an in-memory signing key store.
package keys

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/Luan-Diniz/VC-JWT-Demo/types"
)

// SeedSize is the Ed25519 seed length in bytes.
const SeedSize = ed25519.SeedSize

// KeyPair holds an Ed25519 key pair together with its store identity.
type KeyPair struct {
	// KeyID uniquely identifies this pair within a KeyManager.
	KeyID string
	// Algorithm is always Ed25519 in this package.
	Algorithm types.KeyAlgorithm
	// PublicKey is the 32-byte Ed25519 public key.
	PublicKey ed25519.PublicKey
	// PrivateKey is the expanded Ed25519 private key. Never serialized.
	PrivateKey ed25519.PrivateKey
}

// Seed returns the 32-byte seed the private key was derived from.
func (kp *KeyPair) Seed() []byte {
	return kp.PrivateKey.Seed()
}

// KeyManager is the interface for generating, persisting, and signing with
// key pairs. InMemoryKeyStore is the in-process implementation.
type KeyManager interface {
	Generate(ctx context.Context) (*KeyPair, error)
	Store(ctx context.Context, kp *KeyPair) error
	Load(ctx context.Context, keyID string) (*KeyPair, error)
	List(ctx context.Context) ([]string, error)
	Sign(ctx context.Context, keyID string, message []byte) ([]byte, error)
}

// New creates a fresh Ed25519 key pair from the given entropy source.
// A nil source defaults to crypto/rand.
func New(random io.Reader) (*KeyPair, error) {
	if random == nil {
		random = rand.Reader
	}
	pub, priv, err := ed25519.GenerateKey(random)
	if err != nil {
		return nil, &types.ErrEntropy{Err: err}
	}
	return &KeyPair{
		KeyID:      uuid.NewString(),
		Algorithm:  types.KeyAlgorithmEd25519,
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

// FromSeed derives the Ed25519 key pair for a 32-byte seed.
// The same seed always yields the same pair (and therefore the same DID).
func FromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("keys: seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		KeyID:      uuid.NewString(),
		Algorithm:  types.KeyAlgorithmEd25519,
		PublicKey:  priv.Public().(ed25519.PublicKey),
		PrivateKey: priv,
	}, nil
}

// InMemoryKeyStore is a thread-safe, in-process KeyManager implementation.
// Key material exists only for the lifetime of the process. Suitable for
// short-lived demos and tests.
type InMemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*KeyPair
}

// NewInMemoryKeyStore constructs an empty InMemoryKeyStore.
func NewInMemoryKeyStore() *InMemoryKeyStore {
	return &InMemoryKeyStore{
		keys: make(map[string]*KeyPair),
	}
}

// Generate creates a fresh Ed25519 key pair, stores it, and returns it.
func (s *InMemoryKeyStore) Generate(ctx context.Context) (*KeyPair, error) {
	kp, err := New(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keys: generate Ed25519 key: %w", err)
	}

	s.mu.Lock()
	s.keys[kp.KeyID] = kp
	s.mu.Unlock()

	return kp, nil
}

// Store saves an externally provided key pair.
func (s *InMemoryKeyStore) Store(_ context.Context, kp *KeyPair) error {
	if kp == nil {
		return fmt.Errorf("keys: cannot store nil KeyPair")
	}
	if kp.KeyID == "" {
		return fmt.Errorf("keys: KeyPair.KeyID must not be empty")
	}

	s.mu.Lock()
	s.keys[kp.KeyID] = kp
	s.mu.Unlock()
	return nil
}

// Load retrieves a key pair by ID.
func (s *InMemoryKeyStore) Load(_ context.Context, keyID string) (*KeyPair, error) {
	s.mu.RLock()
	kp, ok := s.keys[keyID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("keys: key not found: %s", keyID)
	}
	return kp, nil
}

// List returns all key IDs currently held in the store.
func (s *InMemoryKeyStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.keys))
	for id := range s.keys {
		ids = append(ids, id)
	}
	return ids, nil
}

// Sign produces an Ed25519 signature over message using the key identified by keyID.
func (s *InMemoryKeyStore) Sign(ctx context.Context, keyID string, message []byte) ([]byte, error) {
	kp, err := s.Load(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("keys: sign — load key: %w", err)
	}
	if kp.PrivateKey == nil {
		return nil, fmt.Errorf("keys: sign — private key not available for %s", keyID)
	}
	return ed25519.Sign(kp.PrivateKey, message), nil
}

// Verify returns nil if the Ed25519 signature over message is valid for the given public key.
func Verify(publicKey ed25519.PublicKey, message, signature []byte) error {
	if !ed25519.Verify(publicKey, message, signature) {
		return &types.ErrSignatureInvalid{}
	}
	return nil
}
