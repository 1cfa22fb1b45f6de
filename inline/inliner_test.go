package inline_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/docset/inline"
	"github.com/fwojciec/docset/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const static = "https://docs.example.com/_static/"

// siteFetcher serves fixed bodies and counts requests per URL.
func siteFetcher(bodies map[string]string) (*mock.Fetcher, func(string) int) {
	var mu sync.Mutex
	calls := map[string]int{}
	f := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			calls[url]++
			mu.Unlock()
			body, ok := bodies[url]
			if !ok {
				return "", errors.New("HTTP 404 for " + url)
			}
			return body, nil
		},
	}
	return f, func(u string) int {
		mu.Lock()
		defer mu.Unlock()
		return calls[u]
	}
}

func TestInliner_InlineStylesheets(t *testing.T) {
	t.Parallel()

	t.Run("flattens imports depth first", func(t *testing.T) {
		t.Parallel()

		f, _ := siteFetcher(map[string]string{
			static + "alabaster.css": "@import url(\"basic.css\");\n.alabaster {  color: red; }",
			static + "basic.css":     "/* base */\n.basic { margin: 0; }",
			static + "pygments.css":  ".highlight { }",
		})

		css, err := inline.NewInliner(f, static).InlineStylesheets(context.Background(),
			[]string{static + "alabaster.css", static + "pygments.css"})

		require.NoError(t, err)
		assert.Equal(t, ".alabaster { color: red; } .basic { margin: 0; } .highlight { }", css)
	})

	t.Run("terminates on import cycle and includes each sheet once", func(t *testing.T) {
		t.Parallel()

		f, calls := siteFetcher(map[string]string{
			static + "a.css": "@import url(b.css); .a{}",
			static + "b.css": "@import url(a.css); .b{}",
		})

		css, err := inline.NewInliner(f, static).InlineStylesheets(context.Background(), []string{static + "a.css"})

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(css, ".a{}"))
		assert.Equal(t, 1, strings.Count(css, ".b{}"))
		assert.Equal(t, 1, calls(static+"a.css"))
		assert.Equal(t, 1, calls(static+"b.css"))
	})

	t.Run("versioned link and plain import name one sheet", func(t *testing.T) {
		t.Parallel()

		f, calls := siteFetcher(map[string]string{
			static + "a.css?v=1": "@import url(b.css); .a{}",
			static + "b.css":     "@import url(a.css); .b{}",
		})

		css, err := inline.NewInliner(f, static).InlineStylesheets(context.Background(), []string{static + "a.css?v=1"})

		require.NoError(t, err)
		assert.Equal(t, ".a{} .b{}", css)
		assert.Equal(t, 1, calls(static+"a.css?v=1"))
		assert.Equal(t, 0, calls(static+"a.css"))
	})

	t.Run("self import terminates", func(t *testing.T) {
		t.Parallel()

		f, _ := siteFetcher(map[string]string{
			static + "self.css": "@import 'self.css'; .self{}",
		})

		css, err := inline.NewInliner(f, static).InlineStylesheets(context.Background(), []string{static + "self.css"})

		require.NoError(t, err)
		assert.Equal(t, ".self{}", css)
	})

	t.Run("resolves imports against static base", func(t *testing.T) {
		t.Parallel()

		f, calls := siteFetcher(map[string]string{
			"https://cdn.example.com/theme/main.css": "@import url(../css/shared.css); .main{}",
			static + "shared.css":                    ".shared{}",
		})

		css, err := inline.NewInliner(f, static).InlineStylesheets(context.Background(),
			[]string{"https://cdn.example.com/theme/main.css"})

		require.NoError(t, err)
		assert.Equal(t, ".main{} .shared{}", css)
		assert.Equal(t, 1, calls(static+"shared.css"))
	})

	t.Run("skips unreachable sheets and reports them", func(t *testing.T) {
		t.Parallel()

		f, _ := siteFetcher(map[string]string{
			static + "ok.css": "@import url(missing.css); .ok{}",
		})

		css, err := inline.NewInliner(f, static).InlineStylesheets(context.Background(), []string{static + "ok.css"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.css")
		assert.Equal(t, ".ok{}", css)
	})

	t.Run("no urls yields empty output", func(t *testing.T) {
		t.Parallel()

		f, _ := siteFetcher(nil)

		css, err := inline.NewInliner(f, static).InlineStylesheets(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, css)
	})
}

func TestInliner_InlineScripts(t *testing.T) {
	t.Parallel()

	t.Run("concatenates in order", func(t *testing.T) {
		t.Parallel()

		f, _ := siteFetcher(map[string]string{
			static + "documentation_options.js": "var DOCUMENTATION_OPTIONS = {\n  VERSION: '4.12.3'\n};",
			static + "doctools.js":              "/* doctools */\nconst Documentation = {};",
		})

		js, err := inline.NewInliner(f, static).InlineScripts(context.Background(),
			[]string{static + "documentation_options.js", static + "doctools.js"})

		require.NoError(t, err)
		assert.Equal(t, "var DOCUMENTATION_OPTIONS = { VERSION: '4.12.3'}; /* doctools */const Documentation = {};", js)
	})

	t.Run("keeps comment markers inside literals", func(t *testing.T) {
		t.Parallel()

		f, _ := siteFetcher(map[string]string{
			static + "searchtools.js": "const glob = /a\\/*/g;\nconst n = 1; /* end */",
		})

		js, err := inline.NewInliner(f, static).InlineScripts(context.Background(), []string{static + "searchtools.js"})

		require.NoError(t, err)
		assert.Equal(t, "const glob = /a\\/*/g;const n = 1; /* end */", js)
	})

	t.Run("skips failures", func(t *testing.T) {
		t.Parallel()

		f, _ := siteFetcher(map[string]string{static + "a.js": "a();"})

		js, err := inline.NewInliner(f, static).InlineScripts(context.Background(),
			[]string{static + "missing.js", static + "a.js"})

		require.Error(t, err)
		assert.Equal(t, "a();", js)
	})
}
