package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", string(hashed))

	assert.NoError(t, VerifyPassword(string(hashed), "s3cret-pass"))
	assert.ErrorIs(t, VerifyPassword(string(hashed), "wrong"), bcrypt.ErrMismatchedHashAndPassword)
}
