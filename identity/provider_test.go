// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

package identity

import (
	"context"
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luan-Diniz/VC-JWT-Demo/keys"
	"github.com/Luan-Diniz/VC-JWT-Demo/types"
)

func TestProvider_GenerateIdentity(t *testing.T) {
	ctx := context.Background()
	store := keys.NewInMemoryKeyStore()
	provider := NewProvider(ProviderOptions{KeyManager: store})

	id, err := provider.GenerateIdentity(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id.DID, "did:key:z6Mk"))
	assert.False(t, id.CreatedAt.IsZero())

	keyID, ok := provider.SigningKeyID(id.DID)
	require.True(t, ok)
	assert.Equal(t, id.KeyID, keyID)

	// The signing key is reachable through the key manager.
	kp, err := store.Load(ctx, keyID)
	require.NoError(t, err)
	assert.Equal(t, id.PublicKey, kp.PublicKey)

	kid, err := id.VerificationMethodID()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(kid, id.DID+"#"))
}

func TestProvider_IdentityFromSeed_Deterministic(t *testing.T) {
	ctx := context.Background()
	seed := make([]byte, keys.SeedSize)

	a, err := NewProvider(ProviderOptions{}).IdentityFromSeed(ctx, seed)
	require.NoError(t, err)
	b, err := NewProvider(ProviderOptions{}).IdentityFromSeed(ctx, seed)
	require.NoError(t, err)

	assert.Equal(t, zeroSeedDID, a.DID)
	assert.Equal(t, a.DID, b.DID)
}

func TestProvider_SigningKeyID_Unknown(t *testing.T) {
	provider := NewProvider(ProviderOptions{})
	_, ok := provider.SigningKeyID("did:key:z6MkUnknown")
	assert.False(t, ok)
}

func TestKeyResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	provider := NewProvider(ProviderOptions{})

	id, err := provider.GenerateIdentity(ctx)
	require.NoError(t, err)

	resolver := NewKeyResolver()
	pub, err := resolver.Resolve(ctx, id.DID)
	require.NoError(t, err)
	assert.Equal(t, []byte(id.PublicKey), []byte(pub))

	_, err = resolver.Resolve(ctx, "did:web:example.com")
	var unresolvable *types.ErrUnresolvableDID
	require.ErrorAs(t, err, &unresolvable)
}

func TestKeyResolver_ResolveDocument(t *testing.T) {
	ctx := context.Background()
	doc, err := NewKeyResolver().ResolveDocument(ctx, zeroSeedDID)
	require.NoError(t, err)
	assert.Equal(t, zeroSeedDID, doc.ID)
}

func TestResolverFunc(t *testing.T) {
	called := false
	f := ResolverFunc(func(_ context.Context, did string) (ed25519.PublicKey, error) {
		called = true
		assert.Equal(t, zeroSeedDID, did)
		return nil, nil
	})
	_, err := f.Resolve(context.Background(), zeroSeedDID)
	require.NoError(t, err)
	assert.True(t, called)
}
