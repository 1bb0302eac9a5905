package app

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Config(t *testing.T) {
	c := newHTTPClient(7 * time.Second)
	assert.Equal(t, 7*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok, "expected *http.Transport")
	assert.NotNil(t, tr.Proxy, "expected proxy from environment")
	assert.NotSame(t, http.DefaultTransport, tr, "transport should not be the default")
}
