package baidu_test

import (
	"testing"

	"nobaidu/internal/filter"
	"nobaidu/internal/sites/baidu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResults(t *testing.T) {
	t.Parallel()

	page := `<html><body><div id="content_left">
  <div class="result c-container" mu="https://example.com/a"><h3 class="t"><a href="https://www.baidu.com/link?url=1">A</a></h3></div>
  <div class="result c-container" mu="https://example.com/a"><h3 class="t"><a href="https://www.baidu.com/link?url=2">A dup</a></h3></div>
  <div class="result-op c-container"><h3 class="t"><a href="https://www.baidu.com/link?url=3">Redirect only</a></h3></div>
  <div class="result c-container"><h3><a href="https://news.example.org/b">B</a></h3></div>
  <div class="result c-container" mu="https://baike.baidu.com/item/x"><h3><a href="https://www.baidu.com/link?url=4">Baike</a></h3></div>
</div>
<div id="con-ar"><h3><a href="https://example.net/side">sidebar</a></h3></div>
</body></html>`

	got, err := baidu.ParseResults(page, filter.NewDomains())

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://news.example.org/b"}, got)
}

func TestHasNoResults(t *testing.T) {
	t.Parallel()

	t.Run("no-results marker present", func(t *testing.T) {
		t.Parallel()

		got, err := baidu.HasNoResults(`<div id="content_left"><div class="nors"><p>抱歉没有找到</p></div></div>`)

		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("regular results page", func(t *testing.T) {
		t.Parallel()

		got, err := baidu.HasNoResults(`<div id="content_left"><div class="result"><h3><a href="#">x</a></h3></div></div>`)

		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestSearchURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.baidu.com/s?wd=https%3A%2F%2Fexample.com%2Fa%3Fb%3D1", baidu.SearchURL("https://example.com/a?b=1"))
}
