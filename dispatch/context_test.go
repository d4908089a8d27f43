package dispatch

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	return newContext(context.Background(), NewRequest(http.MethodGet, "/test", nil))
}

func TestContextParam(t *testing.T) {
	t.Run("returns a bound value", func(t *testing.T) {
		c := testContext(t)
		caps := Captures{}
		caps.bind("id", "42")
		c.pushCaptures(caps)

		v, err := c.Param("id")
		require.NoError(t, err)
		assert.Equal(t, "42", v)
	})

	t.Run("unbound name is an error", func(t *testing.T) {
		c := testContext(t)
		c.pushCaptures(Captures{})

		_, err := c.Param("missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParamNotFound)
	})

	t.Run("inner captures shadow outer", func(t *testing.T) {
		c := testContext(t)

		outer := Captures{}
		outer.bind("id", "outer")
		outer.bind("only-outer", "still here")
		c.pushCaptures(outer)

		inner := Captures{}
		inner.bind("id", "inner")
		c.pushCaptures(inner)

		v, err := c.Param("id")
		require.NoError(t, err)
		assert.Equal(t, "inner", v)

		v, err = c.Param("only-outer")
		require.NoError(t, err)
		assert.Equal(t, "still here", v)
	})
}

func TestContextWildcard(t *testing.T) {
	t.Run("absent without a wildcard route", func(t *testing.T) {
		c := testContext(t)
		c.pushCaptures(Captures{})

		_, ok := c.Wildcard()
		assert.False(t, ok)
	})

	t.Run("innermost wildcard wins", func(t *testing.T) {
		c := testContext(t)
		c.pushCaptures(Captures{wildcard: "outer/rest", hasWildcard: true})
		c.pushCaptures(Captures{wildcard: "inner/rest", hasWildcard: true})

		rest, ok := c.Wildcard()
		require.True(t, ok)
		assert.Equal(t, "inner/rest", rest)
	})

	t.Run("empty remainder is still present", func(t *testing.T) {
		c := testContext(t)
		c.pushCaptures(Captures{wildcard: "", hasWildcard: true})

		rest, ok := c.Wildcard()
		require.True(t, ok)
		assert.Empty(t, rest)
	})
}

func TestContextStore(t *testing.T) {
	type token struct{ value string }
	type counter struct{ n int }

	t.Run("set then get returns the value", func(t *testing.T) {
		c := testContext(t)

		_, replaced := Set(c, token{value: "abc"})
		assert.False(t, replaced)

		got, ok := Get[token](c)
		require.True(t, ok)
		assert.Equal(t, "abc", got.value)
	})

	t.Run("same type replaces and returns previous", func(t *testing.T) {
		c := testContext(t)

		Set(c, token{value: "first"})
		prev, replaced := Set(c, token{value: "second"})
		assert.True(t, replaced)
		assert.Equal(t, "first", prev.value)

		got, _ := Get[token](c)
		assert.Equal(t, "second", got.value)
	})

	t.Run("different types never collide", func(t *testing.T) {
		c := testContext(t)

		Set(c, token{value: "t"})
		Set(c, counter{n: 7})

		tok, ok := Get[token](c)
		require.True(t, ok)
		assert.Equal(t, "t", tok.value)

		cnt, ok := Get[counter](c)
		require.True(t, ok)
		assert.Equal(t, 7, cnt.n)
	})

	t.Run("take removes the value", func(t *testing.T) {
		c := testContext(t)

		Set(c, token{value: "once"})
		got, ok := Take[token](c)
		require.True(t, ok)
		assert.Equal(t, "once", got.value)

		_, ok = Get[token](c)
		assert.False(t, ok)

		_, ok = Take[token](c)
		assert.False(t, ok)
	})

	t.Run("get on empty store", func(t *testing.T) {
		c := testContext(t)

		_, ok := Get[token](c)
		assert.False(t, ok)
	})
}

func TestContextAccessors(t *testing.T) {
	t.Run("request accessors delegate", func(t *testing.T) {
		req := NewRequest(http.MethodPost, "/things?q=1", nil)
		req.Header.Set("X-Auth", "secret")
		c := newContext(context.Background(), req)

		assert.Equal(t, http.MethodPost, c.Method())
		assert.Equal(t, "/things", c.Path())
		assert.Equal(t, "secret", c.Header("X-Auth"))
		assert.Equal(t, req, c.Request())
	})

	t.Run("nil context falls back to background", func(t *testing.T) {
		c := newContext(nil, NewRequest(http.MethodGet, "/", nil)) //nolint:staticcheck // deliberate nil
		assert.NotNil(t, c.Context())
	})

	t.Run("response starts as 200 with empty body", func(t *testing.T) {
		c := testContext(t)
		assert.Equal(t, http.StatusOK, c.Response().Status())
		assert.Empty(t, c.Response().Body())
	})
}

func TestContextDetach(t *testing.T) {
	t.Run("shares request, captures, and store", func(t *testing.T) {
		type token string

		c := testContext(t)
		caps := Captures{}
		caps.bind("id", "42")
		c.pushCaptures(caps)
		Set(c, token("abc"))

		d := c.Detach()

		assert.Equal(t, c.Request(), d.Request())
		assert.Equal(t, c.Context(), d.Context())

		v, err := d.Param("id")
		require.NoError(t, err)
		assert.Equal(t, "42", v)

		got, ok := Get[token](d)
		require.True(t, ok)
		assert.Equal(t, token("abc"), got)

		// Store writes through the child are visible to the parent.
		Set(d, token("xyz"))
		got, ok = Get[token](c)
		require.True(t, ok)
		assert.Equal(t, token("xyz"), got)
	})

	t.Run("responses are independent", func(t *testing.T) {
		c := testContext(t)
		d := c.Detach()

		require.NotSame(t, c.Response(), d.Response())

		d.Response().Text(http.StatusTeapot, "detached")

		assert.Equal(t, http.StatusOK, c.Response().Status())
		assert.Empty(t, c.Response().Body())
	})

	t.Run("child captures do not reach the parent", func(t *testing.T) {
		c := testContext(t)
		c.pushCaptures(Captures{})

		d := c.Detach()
		caps := Captures{}
		caps.bind("inner", "1")
		d.pushCaptures(caps)

		_, err := c.Param("inner")
		assert.ErrorIs(t, err, ErrParamNotFound)
	})
}
