package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies the cookies set on rr onto a fresh request, the way a
// browser would follow a redirect.
func carry(t *testing.T, rr *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestSetThenPop(t *testing.T) {
	rr := httptest.NewRecorder()
	Set(rr, Error("Student record not found"))

	next := httptest.NewRecorder()
	got, ok := Pop(next, carry(t, rr))

	require.True(t, ok)
	assert.Equal(t, KindError, got.Kind)
	assert.Equal(t, "Student record not found", got.Text)
	assert.True(t, got.IsError())
}

func TestPopExpiresTheCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	Set(rr, Success("Login successful"))

	next := httptest.NewRecorder()
	_, ok := Pop(next, carry(t, rr))
	require.True(t, ok)

	cookies := next.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)

	// A browser honouring the expiry sends nothing on the following request.
	_, ok = Pop(httptest.NewRecorder(), carry(t, next))
	assert.False(t, ok)
}

func TestPop_NoCookie(t *testing.T) {
	rr := httptest.NewRecorder()
	_, ok := Pop(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, ok)
	assert.Empty(t, rr.Result().Cookies())
}

func TestPop_MalformedCookie(t *testing.T) {
	for _, value := range []string{"%%%not-base64", "bm90LWpzb24"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})

		rr := httptest.NewRecorder()
		_, ok := Pop(rr, req)

		assert.False(t, ok, "value %q", value)
		assert.Len(t, rr.Result().Cookies(), 1, "malformed cookie should still be expired")
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, Status{}.IsZero())
	assert.False(t, Success("ok").IsZero())
	assert.False(t, Success("ok").IsError())
	assert.Equal(t, KindSuccess, Success("ok").Kind)
}
