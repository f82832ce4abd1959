package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", "taskboard")

	token, err := codec.Issue("a@x.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestTokenCodec_Expiry(t *testing.T) {
	codec := NewTokenCodec("test-secret", "taskboard")

	// Still valid close to but before the deadline.
	valid, err := codec.Issue("a@x.com", time.Minute)
	require.NoError(t, err)
	_, err = codec.Verify(valid)
	assert.NoError(t, err)

	// Already past the deadline.
	expired, err := codec.Issue("a@x.com", -time.Second)
	require.NoError(t, err)
	_, err = codec.Verify(expired)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenCodec_TamperedPayload(t *testing.T) {
	codec := NewTokenCodec("test-secret", "taskboard")

	token, err := codec.Issue("a@x.com", time.Hour)
	require.NoError(t, err)

	// Flip one bit inside the payload segment; the signature covers the
	// full payload so verification must fail.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	payload[len(payload)/2] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-one", "taskboard").Issue("a@x.com", time.Hour)
	require.NoError(t, err)

	_, err = NewTokenCodec("secret-two", "taskboard").Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", "taskboard")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, hasher.Verify("secret123", hash))
	assert.False(t, hasher.Verify("secret124", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("samepassword")
	require.NoError(t, err)
	second, err := hasher.Hash("samepassword")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("samepassword", first))
	assert.True(t, hasher.Verify("samepassword", second))
}
