// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

// vc-jwt-demo runs the full did:key pipeline: generate an Ed25519 identity,
// issue a sample Verifiable Credential as a JWT, and verify it through
// DID resolution — all without any network calls. Exits non-zero if any
// step, including verification, fails.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Luan-Diniz/VC-JWT-Demo/identity"
	"github.com/Luan-Diniz/VC-JWT-Demo/keys"
	"github.com/Luan-Diniz/VC-JWT-Demo/types"
	"github.com/Luan-Diniz/VC-JWT-Demo/vc"
)

func main() {
	ctx := context.Background()

	// --- 1. Generate a did:key identity ---

	keyStore := keys.NewInMemoryKeyStore()
	provider := identity.NewProvider(identity.ProviderOptions{KeyManager: keyStore})

	holder, err := provider.GenerateIdentity(ctx)
	if err != nil {
		log.Fatalf("GenerateIdentity: %v", err)
	}

	fmt.Println("=== Identity ===")
	fmt.Printf("DID: %s\n", holder.DID)
	fmt.Println()

	// --- 2. Issue a sample credential as a JWT ---

	issuer, err := vc.NewIssuer(vc.IssuerOptions{Signer: keyStore})
	if err != nil {
		log.Fatalf("NewIssuer: %v", err)
	}

	token, err := issuer.Issue(ctx, vc.IssueOptions{
		Template: &vc.Credential{
			Context: []string{types.CredentialContextV1},
			Type:    []string{types.CredentialTypeBase, "UniversityDegreeCredential"},
			CredentialSubject: map[string]interface{}{
				"id": "did:example:abc",
				"degree": map[string]interface{}{
					"type": "BachelorDegree",
					"name": "Bachelor of Science and Arts",
				},
			},
		},
		IssuerDID:    holder.DID,
		SigningKeyID: holder.KeyID,
		TTL:          24 * time.Hour,
	})
	if err != nil {
		log.Fatalf("Issue: %v", err)
	}

	fmt.Println("=== JWT-VC ===")
	fmt.Println(token)
	fmt.Println()

	// --- 3. Verify the token via did:key resolution ---

	verifier := vc.NewVerifier(vc.VerifierOptions{})
	result, err := verifier.Verify(ctx, token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verification FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Verification ===")
	fmt.Printf("Verified:  %t\n", result.Verified)
	fmt.Printf("IssuerDID: %s\n", result.IssuerDID)
	fmt.Printf("SubjectID: %s\n", result.SubjectID)
	if result.ExpiresAt != nil {
		fmt.Printf("ExpiresAt: %s\n", result.ExpiresAt.Format(time.RFC3339))
	}

	pretty, err := json.MarshalIndent(result.Credential, "", "  ")
	if err != nil {
		log.Fatalf("marshal credential: %v", err)
	}
	fmt.Println()
	fmt.Println("=== Credential ===")
	fmt.Println(string(pretty))
}
