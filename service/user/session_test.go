package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSigner(t *testing.T) {
	s := NewSessionSigner("secret")

	token := s.Sign("4b1c0f3e-2d7a-4f8e-9a61-0c5d2e7b9f10")
	id, ok := s.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "4b1c0f3e-2d7a-4f8e-9a61-0c5d2e7b9f10", id)

	// 同一密钥签名稳定
	assert.Equal(t, token, NewSessionSigner("secret").Sign("4b1c0f3e-2d7a-4f8e-9a61-0c5d2e7b9f10"))

	for _, bad := range []string{
		"",
		"4b1c0f3e-2d7a-4f8e-9a61-0c5d2e7b9f10",
		".abc",
		token + "0",
		"other" + token[len("4b1c0f3e-2d7a-4f8e-9a61-0c5d2e7b9f10"):],
		NewSessionSigner("other").Sign("4b1c0f3e-2d7a-4f8e-9a61-0c5d2e7b9f10"),
	} {
		_, ok := s.Verify(bad)
		assert.False(t, ok, bad)
	}
}

func TestSessionSignerRandomKey(t *testing.T) {
	a, b := NewSessionSigner(""), NewSessionSigner("")
	_, ok := b.Verify(a.Sign("sid"))
	assert.False(t, ok)

	id, ok := a.Verify(a.Sign("sid"))
	require.True(t, ok)
	assert.Equal(t, "sid", id)

	var nilSigner *SessionSigner
	_, ok = nilSigner.Verify("sid.abc")
	assert.False(t, ok)
}
