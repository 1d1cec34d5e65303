package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	stored, err := Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, Verify("correct horse battery staple", stored))
	assert.False(t, Verify("wrong password", stored))
}

func TestHashFormat(t *testing.T) {
	stored, err := Hash("secret")
	require.NoError(t, err)

	salt, hash, ok := strings.Cut(stored, "$")
	require.True(t, ok)
	assert.Len(t, salt, saltBytes*2)
	assert.Len(t, hash, keyLen*2)
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret")
	require.NoError(t, err)
	second, err := Hash("secret")
	require.NoError(t, err)

	// Одинаковые пароли дают разные записи, но обе проверяются
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("secret", first))
	assert.True(t, Verify("secret", second))
}

func TestHashRejectsEmpty(t *testing.T) {
	_, err := Hash("")
	assert.Error(t, err)
}

func TestVerifyRejectsMalformedStored(t *testing.T) {
	assert.False(t, Verify("secret", ""))
	assert.False(t, Verify("secret", "no-delimiter"))
	assert.False(t, Verify("secret", "nothex$deadbeef"))
	assert.False(t, Verify("secret", "deadbeef$nothex"))
}
