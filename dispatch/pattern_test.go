package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("accepts literals captures and wildcards", func(t *testing.T) {
		for _, pattern := range []string{
			"/",
			"/hello",
			"/add_one/:num",
			"/files/:user/*",
			"/static/*path",
			"/static/:context/:",
			"add_two/:num",
			"/*",
		} {
			p, err := Compile(pattern)
			require.NoError(t, err, pattern)
			assert.Equal(t, pattern, p.String())
		}
	})

	t.Run("rejects segments after a wildcard", func(t *testing.T) {
		for _, pattern := range []string{
			"/files/*/last",
			"/*/anything",
			"/a/*name/b",
		} {
			_, err := Compile(pattern)
			var perr *PatternError
			require.ErrorAs(t, err, &perr, pattern)
			assert.Equal(t, pattern, perr.Pattern)
		}
	})

	t.Run("rejects multiple wildcards", func(t *testing.T) {
		_, err := Compile("/a/*/*")
		var perr *PatternError
		require.ErrorAs(t, err, &perr)
	})
}

func TestPatternMatch(t *testing.T) {
	compile := func(t *testing.T, pattern string) *Pattern {
		t.Helper()
		p, err := Compile(pattern)
		require.NoError(t, err)
		return p
	}

	t.Run("literal segments match exactly", func(t *testing.T) {
		p := compile(t, "/foo/bar")

		_, ok := p.Match("/foo/bar")
		assert.True(t, ok)

		_, ok = p.Match("/foo/baz")
		assert.False(t, ok)

		_, ok = p.Match("/foo")
		assert.False(t, ok)

		_, ok = p.Match("/FOO/bar")
		assert.False(t, ok, "matching is case-sensitive")
	})

	t.Run("trailing slash is ignored", func(t *testing.T) {
		p := compile(t, "/foo/bar")

		_, ok := p.Match("/foo/bar/")
		assert.True(t, ok)
	})

	t.Run("named capture binds one segment", func(t *testing.T) {
		p := compile(t, "/add_one/:num")

		caps, ok := p.Match("/add_one/3")
		require.True(t, ok)
		v, ok := caps.Get("num")
		require.True(t, ok)
		assert.Equal(t, "3", v)

		// Captures accept any non-empty segment; parsing happens later.
		caps, ok = p.Match("/add_one/not-a-number")
		require.True(t, ok)
		v, _ = caps.Get("num")
		assert.Equal(t, "not-a-number", v)
	})

	t.Run("capture requires a non-empty segment", func(t *testing.T) {
		p := compile(t, "/add_one/:num")

		_, ok := p.Match("/add_one/")
		assert.False(t, ok)

		_, ok = p.Match("/add_one")
		assert.False(t, ok)
	})

	t.Run("anonymous capture matches without binding", func(t *testing.T) {
		p := compile(t, "/static/:context/:")

		caps, ok := p.Match("/static/css/site.css")
		require.True(t, ok)

		v, ok := caps.Get("context")
		require.True(t, ok)
		assert.Equal(t, "css", v)

		_, ok = caps.Get("")
		assert.False(t, ok)
	})

	t.Run("wildcard consumes the remainder", func(t *testing.T) {
		p := compile(t, "/echo/*")

		caps, ok := p.Match("/echo/some_path")
		require.True(t, ok)
		rest, ok := caps.Wildcard()
		require.True(t, ok)
		assert.Equal(t, "some_path", rest)

		caps, ok = p.Match("/echo/multi/segment/path")
		require.True(t, ok)
		rest, _ = caps.Wildcard()
		assert.Equal(t, "multi/segment/path", rest)
	})

	t.Run("wildcard matches zero segments", func(t *testing.T) {
		p := compile(t, "/echo/*")

		for _, path := range []string{"/echo", "/echo/"} {
			caps, ok := p.Match(path)
			require.True(t, ok, path)
			rest, ok := caps.Wildcard()
			require.True(t, ok, path)
			assert.Empty(t, rest, path)
		}
	})

	t.Run("named wildcard also binds", func(t *testing.T) {
		p := compile(t, "/static/*path")

		caps, ok := p.Match("/static/js/app.js")
		require.True(t, ok)

		v, ok := caps.Get("path")
		require.True(t, ok)
		assert.Equal(t, "js/app.js", v)

		rest, ok := caps.Wildcard()
		require.True(t, ok)
		assert.Equal(t, "js/app.js", rest)
	})

	t.Run("no wildcard means no remainder", func(t *testing.T) {
		p := compile(t, "/foo/:bar")

		caps, ok := p.Match("/foo/x")
		require.True(t, ok)
		_, ok = caps.Wildcard()
		assert.False(t, ok)
	})

	t.Run("root pattern matches root path", func(t *testing.T) {
		p := compile(t, "/")

		_, ok := p.Match("/")
		assert.True(t, ok)

		_, ok = p.Match("/anything")
		assert.False(t, ok)
	})
}

func TestMoreSpecific(t *testing.T) {
	compile := func(t *testing.T, pattern string) *Pattern {
		t.Helper()
		p, err := Compile(pattern)
		require.NoError(t, err)
		return p
	}

	t.Run("literal beats capture", func(t *testing.T) {
		literal := compile(t, "/posts/*")
		captures := compile(t, "/:one/:two")

		assert.True(t, moreSpecific(literal, captures))
		assert.False(t, moreSpecific(captures, literal))
	})

	t.Run("capture beats wildcard", func(t *testing.T) {
		capture := compile(t, "/a/:b")
		wildcard := compile(t, "/a/*")

		assert.True(t, moreSpecific(capture, wildcard))
		assert.False(t, moreSpecific(wildcard, capture))
	})

	t.Run("exact beats wildcard at same prefix", func(t *testing.T) {
		exact := compile(t, "/a/b")
		wildcard := compile(t, "/a/b/*")

		assert.True(t, moreSpecific(exact, wildcard))
		assert.False(t, moreSpecific(wildcard, exact))
	})

	t.Run("longer fixed part beats shorter", func(t *testing.T) {
		long := compile(t, "/a/b/*")
		short := compile(t, "/a/*")

		assert.True(t, moreSpecific(long, short))
		assert.False(t, moreSpecific(short, long))
	})

	t.Run("ordering ignores capture names", func(t *testing.T) {
		a := compile(t, "/x/:alpha")
		b := compile(t, "/y/:beta")

		// Shapes are identical; only the literal text breaks the tie,
		// the same way regardless of argument order.
		assert.Equal(t, moreSpecific(a, b), !moreSpecific(b, a))
	})
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"", nil},
		{"/foo", []string{"foo"}},
		{"/foo/", []string{"foo"}},
		{"/foo/bar", []string{"foo", "bar"}},
		{"/foo//bar", []string{"foo", "bar"}},
		{"foo/bar", []string{"foo", "bar"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitPath(tt.path), tt.path)
	}
}
