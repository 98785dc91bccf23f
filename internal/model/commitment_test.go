package model

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCommitmentIsDigestOfMoveAndSalt(t *testing.T) {
	salt := "deadbeef"
	expected := sha256.Sum256(append([]byte{byte(MovePaper)}, []byte(salt)...))

	c := ComputeCommitment(MovePaper, salt)
	assert.Equal(t, Commitment(expected), c)
}

func TestCommitmentMatches(t *testing.T) {
	c := ComputeCommitment(MoveRock, "salt-123")

	assert.True(t, c.Matches(MoveRock, "salt-123"))
	assert.False(t, c.Matches(MovePaper, "salt-123"))
	assert.False(t, c.Matches(MoveRock, "salt-124"))
	assert.False(t, c.Matches(MoveRock, ""))
}

func TestCommitmentBindsToEveryBit(t *testing.T) {
	c := ComputeCommitment(MoveScissors, "some-salt")

	// Flipping any single byte of the digest must break the match
	for i := range c {
		flipped := c
		flipped[i] ^= 0x01
		assert.False(t, flipped.Matches(MoveScissors, "some-salt"), "byte %d", i)
	}
}

func TestCommitmentHexRoundTrip(t *testing.T) {
	c := ComputeCommitment(MoveRock, "abc")

	parsed, err := ParseCommitment(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestParseCommitmentRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"abcd",
		"zz" + ComputeCommitment(MoveRock, "x").String()[2:],
		ComputeCommitment(MoveRock, "x").String() + "00",
	}

	for _, input := range cases {
		_, err := ParseCommitment(input)
		assert.ErrorIs(t, err, ErrInvalidCommitment, "input %q", input)
	}
}

func TestCommitmentIsZero(t *testing.T) {
	var zero Commitment
	assert.True(t, zero.IsZero())
	assert.False(t, ComputeCommitment(MoveRock, "x").IsZero())
}

func TestCommitmentJSONRoundTrip(t *testing.T) {
	c := ComputeCommitment(MovePaper, "json-salt")

	data, err := c.MarshalJSON()
	require.NoError(t, err)

	var decoded Commitment
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, c, decoded)
}
