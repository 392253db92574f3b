package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := GenerateID()
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate session id generated")
		seen[id] = true
	}
}

func TestSetCookie(t *testing.T) {
	w := httptest.NewRecorder()
	expiry := time.Now().Add(24 * time.Hour)

	SetCookie(w, "abc123", expiry, CookieOptions{Secure: true, SameSite: http.SameSiteNoneMode})

	res := w.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "abc123", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.WithinDuration(t, expiry, c.Expires, time.Second)
}

func TestClearCookie(t *testing.T) {
	w := httptest.NewRecorder()

	ClearCookie(w, CookieOptions{})

	res := w.Result()
	cookies := res.Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.HttpOnly)
}
