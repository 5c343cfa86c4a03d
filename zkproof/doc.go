// Package zkproof implements the two non-interactive Schnorr-style proofs of
// the join protocol over G1: a proof of knowledge of a discrete logarithm,
// and a Chaum-Pedersen proof that two discrete logarithms over different
// bases are equal. Both are made non-interactive with the Fiat-Shamir
// heuristic and share the Proof record.
//
// Challenges are SHA-256 digests over the concatenated G1 encodings (see
// package curve), interpreted as big-endian integers and reduced modulo the
// group order. The reduction is slightly biased.
package zkproof
