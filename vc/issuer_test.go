// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

package vc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luan-Diniz/VC-JWT-Demo/identity"
	"github.com/Luan-Diniz/VC-JWT-Demo/keys"
	"github.com/Luan-Diniz/VC-JWT-Demo/types"
)

var testClock = func() time.Time {
	return time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)
}

func degreeTemplate() *Credential {
	return &Credential{
		Context: []string{types.CredentialContextV1},
		Type:    []string{types.CredentialTypeBase, "UniversityDegreeCredential"},
		CredentialSubject: map[string]interface{}{
			"id": "did:example:abc",
			"degree": map[string]interface{}{
				"type": "BachelorDegree",
				"name": "Bachelor of Science and Arts",
			},
		},
	}
}

// testIdentity builds a provider-backed identity and an issuer sharing its key store.
func testIdentity(t *testing.T) (*identity.Identity, *Issuer) {
	t.Helper()
	store := keys.NewInMemoryKeyStore()
	provider := identity.NewProvider(identity.ProviderOptions{KeyManager: store})

	id, err := provider.GenerateIdentity(context.Background())
	require.NoError(t, err)

	issuer, err := NewIssuer(IssuerOptions{Signer: store, Clock: testClock})
	require.NoError(t, err)
	return id, issuer
}

func decodeSegment(t *testing.T, segment string, out interface{}) {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestIssue_WellFormedToken(t *testing.T) {
	id, issuer := testIdentity(t)

	token, err := issuer.Issue(context.Background(), IssueOptions{
		Template:     degreeTemplate(),
		IssuerDID:    id.DID,
		SigningKeyID: id.KeyID,
	})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	for _, part := range parts {
		assert.NotEmpty(t, part)
		assert.NotContains(t, part, "=")
	}

	var header map[string]interface{}
	decodeSegment(t, parts[0], &header)
	assert.Equal(t, "EdDSA", header["alg"])
	assert.Equal(t, "JWT", header["typ"])
	kid, err := id.VerificationMethodID()
	require.NoError(t, err)
	assert.Equal(t, kid, header["kid"])

	var claims Claims
	decodeSegment(t, parts[1], &claims)
	assert.Equal(t, id.DID, claims.Issuer)
	assert.Equal(t, "did:example:abc", claims.Subject)
	assert.Equal(t, testClock().Unix(), claims.NotBefore.Unix())
	assert.Equal(t, testClock().Unix(), claims.IssuedAt.Unix())
	assert.Nil(t, claims.ExpiresAt)

	require.NotNil(t, claims.VC)
	assert.Equal(t, id.DID, claims.VC.Issuer)
	assert.True(t, strings.HasPrefix(claims.VC.ID, "urn:uuid:"))
	assert.Equal(t, claims.ID, claims.VC.ID)
	assert.Equal(t, testClock().Format(time.RFC3339), claims.VC.IssuanceDate)
}

func TestIssue_TTLSetsExpiry(t *testing.T) {
	id, issuer := testIdentity(t)

	token, err := issuer.Issue(context.Background(), IssueOptions{
		Template:     degreeTemplate(),
		IssuerDID:    id.DID,
		SigningKeyID: id.KeyID,
		TTL:          time.Hour,
	})
	require.NoError(t, err)

	var claims Claims
	decodeSegment(t, strings.Split(token, ".")[1], &claims)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, testClock().Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, testClock().Add(time.Hour).Format(time.RFC3339), claims.VC.ExpirationDate)
}

func TestIssue_InvalidTemplate(t *testing.T) {
	id, issuer := testIdentity(t)

	tests := []struct {
		name     string
		template *Credential
	}{
		{"nil template", nil},
		{
			"missing base context",
			&Credential{
				Context:           []string{"https://example.com/other"},
				Type:              []string{types.CredentialTypeBase},
				CredentialSubject: map[string]interface{}{"id": "did:example:abc"},
			},
		},
		{
			"missing VerifiableCredential type",
			&Credential{
				Context:           []string{types.CredentialContextV1},
				Type:              []string{"UniversityDegreeCredential"},
				CredentialSubject: map[string]interface{}{"id": "did:example:abc"},
			},
		},
		{
			"empty credentialSubject",
			&Credential{
				Context: []string{types.CredentialContextV1},
				Type:    []string{types.CredentialTypeBase},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Issue(context.Background(), IssueOptions{
				Template:     tt.template,
				IssuerDID:    id.DID,
				SigningKeyID: id.KeyID,
			})
			var invalid *types.ErrInvalidPayload
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestIssue_MissingOptions(t *testing.T) {
	id, issuer := testIdentity(t)

	_, err := issuer.Issue(context.Background(), IssueOptions{
		Template:     degreeTemplate(),
		SigningKeyID: id.KeyID,
	})
	require.Error(t, err)

	_, err = issuer.Issue(context.Background(), IssueOptions{
		Template:  degreeTemplate(),
		IssuerDID: id.DID,
	})
	require.Error(t, err)

	_, err = NewIssuer(IssuerOptions{})
	require.Error(t, err)
}

func TestIssue_TemplateNotMutated(t *testing.T) {
	id, issuer := testIdentity(t)
	template := degreeTemplate()

	_, err := issuer.Issue(context.Background(), IssueOptions{
		Template:     template,
		IssuerDID:    id.DID,
		SigningKeyID: id.KeyID,
		TTL:          time.Hour,
	})
	require.NoError(t, err)

	assert.Empty(t, template.Issuer)
	assert.Empty(t, template.ID)
	assert.Empty(t, template.IssuanceDate)
	assert.Empty(t, template.ExpirationDate)
}

func TestIssue_DeterministicWithFixedClockAndID(t *testing.T) {
	id, issuer := testIdentity(t)

	template := degreeTemplate()
	template.ID = "urn:uuid:00000000-0000-0000-0000-000000000001"
	opts := IssueOptions{
		Template:     template,
		IssuerDID:    id.DID,
		SigningKeyID: id.KeyID,
	}

	a, err := issuer.Issue(context.Background(), opts)
	require.NoError(t, err)
	b, err := issuer.Issue(context.Background(), opts)
	require.NoError(t, err)

	// Ed25519 is deterministic; with a fixed clock and credential ID the
	// whole token reproduces byte for byte.
	assert.Equal(t, a, b)
}

func TestIssue_RejectsNonKeyDID(t *testing.T) {
	_, issuer := testIdentity(t)

	_, err := issuer.Issue(context.Background(), IssueOptions{
		Template:     degreeTemplate(),
		IssuerDID:    "did:web:example.com",
		SigningKeyID: "some-key",
	})
	require.Error(t, err)
}
