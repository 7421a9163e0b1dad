package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("changeme12345")
	require.NoError(t, err)
	require.NotEqual(t, "changeme12345", hash)

	require.True(t, Verify("changeme12345", hash))
	require.False(t, Verify("wrong-password", hash))
	require.False(t, Verify("changeme12345", "not-a-bcrypt-hash"))
}

func TestHashToken_DeterministicHex(t *testing.T) {
	a := HashToken("some.refresh.token")
	b := HashToken("some.refresh.token")
	require.Equal(t, a, b)
	require.Len(t, a, 64)
	require.NotEqual(t, a, HashToken("another.token"))
}

func TestValidatePassword(t *testing.T) {
	require.True(t, ValidatePassword("12345678"))
	require.True(t, ValidatePassword("a-much-longer-password"))
	require.False(t, ValidatePassword("1234567"))
	require.False(t, ValidatePassword(""))
}
