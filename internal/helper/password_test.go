package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{name: "correct password", password: "correctPassword", attempt: "correctPassword", want: true},
		{name: "wrong password", password: "correctPassword", attempt: "wrongPassword", want: false},
		{name: "case sensitive", password: "correctPassword", attempt: "correctpassword", want: false},
		{name: "extra character", password: "secret123", attempt: "secret1234", want: false},
		{name: "unicode", password: "p@sswörd-ลับ", attempt: "p@sswörd-ลับ", want: true},
	}

	h := NewPasswordHasher(bcrypt.MinCost)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, digest)
			require.NotEqual(t, tt.password, digest)

			assert.Equal(t, tt.want, h.Verify(tt.attempt, digest))
		})
	}
}

func TestPasswordHasher_UniqueSalts(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	d1, err := h.Hash("samePassword")
	require.NoError(t, err)
	d2, err := h.Hash("samePassword")
	require.NoError(t, err)

	// Per-call salt: same plaintext, different digests, both verify.
	assert.NotEqual(t, d1, d2)
	assert.True(t, h.Verify("samePassword", d1))
	assert.True(t, h.Verify("samePassword", d2))
}

func TestPasswordHasher_InvalidDigest(t *testing.T) {
	h := NewPasswordHasher(0) // out of range, falls back to default cost

	assert.False(t, h.Verify("password", ""))
	assert.False(t, h.Verify("password", "not-a-bcrypt-digest"))
	assert.False(t, h.Verify("password", strings.Repeat("x", 60)))
}
