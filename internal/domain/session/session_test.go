package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Anonymous(t *testing.T) {
	sess := New()
	assert.NotEmpty(t, sess.ID)
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, sess.HasFlash())
}

func TestAuthenticate_RotatesID(t *testing.T) {
	sess := New()
	before := sess.ID

	oldID := sess.Authenticate("user-1", "alice")

	assert.Equal(t, before, oldID)
	assert.NotEqual(t, before, sess.ID)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, "alice", sess.Username)
}

func TestPopFlash_OneShot(t *testing.T) {
	sess := New()
	sess.Error = "bad"
	sess.Message = "good"
	require.True(t, sess.HasFlash())

	f := sess.PopFlash()
	assert.Equal(t, "bad", f.Error)
	assert.Equal(t, "good", f.Message)

	assert.False(t, sess.HasFlash())
	assert.Equal(t, Flash{}, sess.PopFlash())
}

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := NewCookieCodec("test-secret")
	value := codec.Encode("abc-123")

	id, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
}

func TestCookieCodec_RejectsTampering(t *testing.T) {
	codec := NewCookieCodec("test-secret")
	value := codec.Encode("abc-123")

	_, err := codec.Decode("zzz" + value)
	assert.Error(t, err)

	_, err = codec.Decode("no-signature")
	assert.Error(t, err)

	_, err = codec.Decode("")
	assert.Error(t, err)
}

func TestCookieCodec_RejectsWrongKey(t *testing.T) {
	value := NewCookieCodec("secret-a").Encode("abc-123")

	_, err := NewCookieCodec("secret-b").Decode(value)
	assert.Error(t, err)
}
