// SPDX-License-Identifier: BSL-1.1
// Copyright (c) 2026 MuVeraAI Corporation

// Package types defines shared value types used across the VC-JWT demo.
package types

// DIDMethod enumerates the supported Decentralized Identifier methods.
type DIDMethod string

const (
	DIDMethodKey DIDMethod = "key"
)

// KeyAlgorithm identifies the cryptographic algorithm used by a key pair.
type KeyAlgorithm string

const (
	KeyAlgorithmEd25519 KeyAlgorithm = "Ed25519"
)

// VerificationMethodType identifies the type of a DID verification method.
type VerificationMethodType string

const (
	VerificationMethodEd25519 VerificationMethodType = "Ed25519VerificationKey2020"
)

// SigningAlgorithmEdDSA is the JOSE "alg" value for Ed25519 JWT signatures.
const SigningAlgorithmEdDSA = "EdDSA"

// CredentialContextV1 is the base W3C Verifiable Credentials context URI.
// Every credential's @context array must include it.
const CredentialContextV1 = "https://www.w3.org/2018/credentials/v1"

// CredentialTypeBase is the type value every Verifiable Credential carries.
const CredentialTypeBase = "VerifiableCredential"
