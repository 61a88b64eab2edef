package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct-horse-battery")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "hash must carry the configured cost")
	assert.True(t, Verify("correct-horse-battery", hash))
	assert.False(t, Verify("wrong-password", hash))
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := Hash("")
	assert.Error(t, err)
}
