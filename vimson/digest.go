package vimson

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Digest computes sha256 over the canonical serialization of v. Two values
// have the same digest exactly when they serialize identically.
func Digest(v *Value) [32]byte {
	return sha256.Sum256([]byte(v.Serialize()))
}

// DigestHex returns Digest(v) as lowercase hex.
func DigestHex(v *Value) string {
	d := Digest(v)
	return hex.EncodeToString(d[:])
}

// SameCanonical reports whether a and b have identical canonical forms.
func SameCanonical(a, b *Value) bool {
	return Digest(a) == Digest(b)
}

// ParseDigest decodes a 64-character hex digest as produced by DigestHex.
func ParseDigest(s string) ([32]byte, error) {
	var d [32]byte
	if len(s) != hex.EncodedLen(len(d)) {
		return d, fmt.Errorf("vimson: digest must be %d hex characters, got %d", hex.EncodedLen(len(d)), len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, fmt.Errorf("vimson: invalid digest: %w", err)
	}
	return d, nil
}
