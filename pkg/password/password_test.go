package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	stored, err := Hash("s3cret")
	require.NoError(t, err)

	assert.Len(t, stored, saltLength+2*keyLength)
	assert.True(t, Verify(stored, "s3cret"))
	assert.False(t, Verify(stored, "S3cret"))
}

func TestHashUsesFreshSalt(t *testing.T) {
	first, err := Hash("same")
	require.NoError(t, err)
	second, err := Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify(first, "same"))
	assert.True(t, Verify(second, "same"))
}

func TestVerifyRejectsMalformedStoredForm(t *testing.T) {
	assert.False(t, Verify("", "x"))
	assert.False(t, Verify("abc", "x"))
}
