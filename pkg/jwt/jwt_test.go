package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate(testSecret, "rh@dundermifflin.com", "c-1", "company", "jobboard-api", 5)
	require.NoError(t, err)

	claims, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "rh@dundermifflin.com", claims.Subject)
	assert.Equal(t, "c-1", claims.CompanyID)
	assert.Equal(t, "company", claims.Role)
	assert.Equal(t, "jobboard-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(testSecret, "admin@jobboard.local", "", "admin", "jobboard-api", 5)
	require.NoError(t, err)

	_, err = Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate(testSecret, "admin@jobboard.local", "", "admin", "jobboard-api", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "x", "", "admin", "", 5)
	assert.Error(t, err)
	_, err = Parse("", "abc")
	assert.Error(t, err)
}
