// Package multikey converts cryptographic keys between Multikey, JWK and platform key representations, as used in Verifiable Credential tooling.
//
// Multikey is specified in https://www.w3.org/TR/controller-document/#multikey. A Multikey string is the "z" (base58btc) multibase prefix, followed by the base58 encoding of a two-byte multicodec preamble and the raw key bytes.
//
// The three supported key types are:
//
//   - ECDSA with NIST P-256 (https://www.w3.org/TR/vc-di-ecdsa/#multikey)
//   - ECDSA with NIST P-384
//   - EdDSA with Ed25519 (https://www.w3.org/TR/vc-di-eddsa/#multikey)
//
// ECDSA public keys are carried in Multikey using the SEC1 "compressed" point form. Conversion to JWK recovers the y coordinate from the curve equation, and rejects x values which do not correspond to a point on the curve.
//
// All functions in this package are pure and safe for concurrent use. Key generation, signing and verification are out of scope; see the webcrypto sub-package for importing converted keys in to a crypto engine.
package multikey
