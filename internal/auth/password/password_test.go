package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher("pepper")

	hash, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	require.NotContains(t, hash, "Passw0rd!")

	ok, err := h.Verify("Passw0rd!", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher("")
	h1, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	h2, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestPepperMismatch(t *testing.T) {
	hash, err := NewHasher("a").Hash("Passw0rd!")
	require.NoError(t, err)

	ok, err := NewHasher("b").Verify("Passw0rd!", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStrong(t *testing.T) {
	cases := []struct {
		pwd string
		ok  bool
	}{
		{"Passw0rd", true},
		{"Passw0rd!", true},
		{"short1A", false},   // 7 runes
		{"passw0rd", false},  // no upper
		{"PASSW0RD", false},  // no lower
		{"Password", false},  // no digit
		{"", false},
	}
	for _, c := range cases {
		require.Equal(t, c.ok, Strong(c.pwd), "pwd=%q", c.pwd)
	}
}
