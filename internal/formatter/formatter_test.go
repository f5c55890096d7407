package formatter_test

import (
	"testing"
	"time"

	"nobaidu/internal/formatter"
	"nobaidu/internal/pipeline"
	"nobaidu/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	report := pipeline.NewReport("id", "go", pipeline.ModeDiff, time.Unix(0, 0).UTC(), []store.Finding{{URL: "https://a.example"}})

	for _, f := range formatter.Formats {
		t.Run(f, func(t *testing.T) {
			t.Parallel()

			out, err := formatter.Format(report, f)

			require.NoError(t, err)
			assert.Contains(t, out, "https://a.example")
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := formatter.Format(report, "yaml")

		assert.EqualError(t, err, "unsupported output format: yaml")
	})
}

func TestFromExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"out.md":     "markdown",
		"OUT.JSON":   "json",
		"page.htm":   "html",
		"notes.txt":  "text",
		"rows.csv":   "csv",
		"archive.gz": "",
		"noext":      "",
	}
	for name, want := range tests {
		assert.Equal(t, want, formatter.FromExtension(name), name)
	}
}
