package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityFromGateValues(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/posts", nil, &alice)

	got, err := identityFrom(c)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestIdentityFromMissing(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/posts", nil, nil)

	_, err := identityFrom(c)
	assert.Error(t, err)
}

func TestIdentityFromRejectsForeignTypes(t *testing.T) {
	// Only the exact types the gate stores are accepted; a stringly
	// user_id means the handler is running behind something else.
	c, _ := newTestContext(t, http.MethodGet, "/posts", nil, nil)
	c.Set("user_id", "42")
	c.Set("username", "alice")

	_, err := identityFrom(c)
	assert.Error(t, err)
}

func TestPathID(t *testing.T) {
	c, _ := newTestContext(t, http.MethodGet, "/posts/byId/7", nil, nil)
	c.SetParamNames("id")
	c.SetParamValues("7")
	n, ok := pathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(7), n)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c, _ := newTestContext(t, http.MethodGet, "/posts/byId/"+bad, nil, nil)
		c.SetParamNames("id")
		c.SetParamValues(bad)
		_, ok := pathID(c, "id")
		assert.False(t, ok, "id %q", bad)
	}
}
