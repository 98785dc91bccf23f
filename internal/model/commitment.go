package model

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Commitment is a SHA-256 digest binding a player to an undisclosed
// (move, salt) pair. Serialized as lowercase hex in JSON.
type Commitment [sha256.Size]byte

// ComputeCommitment computes the digest over the fixed byte layout:
// a single move byte followed by the raw salt bytes, no delimiter.
// Both sides must use this exact layout or verification fails.
func ComputeCommitment(move Move, salt string) Commitment {
	h := sha256.New()
	h.Write([]byte{byte(move)})
	h.Write([]byte(salt))

	var c Commitment
	copy(c[:], h.Sum(nil))
	return c
}

// Matches verifies a reveal against the commitment in constant time.
func (c Commitment) Matches(move Move, salt string) bool {
	expected := ComputeCommitment(move, salt)
	return subtle.ConstantTimeCompare(c[:], expected[:]) == 1
}

// IsZero reports whether the commitment is unset (all zero bytes).
func (c Commitment) IsZero() bool {
	return c == Commitment{}
}

// String returns the lowercase hex encoding of the digest.
func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

// ParseCommitment decodes a 64-character hex string into a Commitment.
func ParseCommitment(s string) (Commitment, error) {
	var c Commitment
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != sha256.Size {
		return c, fmt.Errorf("%w: got %q", ErrInvalidCommitment, s)
	}
	copy(c[:], raw)
	return c, nil
}

// MarshalJSON encodes the commitment as a hex string.
func (c Commitment) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a hex string commitment.
func (c *Commitment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCommitment(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
