// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

package identity

import (
	"context"
	"crypto/ed25519"
)

// Resolver maps a DID to the Ed25519 public key of its verification method.
// For did:key this is a pure decode of the DID string; a network-backed DID
// method would implement the same contract with I/O behind the context.
type Resolver interface {
	Resolve(ctx context.Context, did string) (ed25519.PublicKey, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, did string) (ed25519.PublicKey, error)

func (f ResolverFunc) Resolve(ctx context.Context, did string) (ed25519.PublicKey, error) {
	return f(ctx, did)
}

// KeyResolver resolves did:key DIDs entirely locally.
type KeyResolver struct{}

// NewKeyResolver constructs a KeyResolver.
func NewKeyResolver() *KeyResolver {
	return &KeyResolver{}
}

// Resolve decodes the public key embedded in a did:key DID.
// Failures are reported as *types.ErrUnresolvableDID.
func (r *KeyResolver) Resolve(_ context.Context, did string) (ed25519.PublicKey, error) {
	return ExtractPublicKey(did)
}

// ResolveDocument synthesizes the full DID Document for a did:key DID.
func (r *KeyResolver) ResolveDocument(_ context.Context, did string) (*Document, error) {
	return BuildDocument(did)
}
