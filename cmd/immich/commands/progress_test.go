package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	t.Parallel()

	t.Run("non-interactive writes one summary line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		bar := newProgressBar(&buf, false)
		bar.Start("beach.jpg", 4)
		bar.Advance(2)
		bar.Advance(2)
		bar.Finish()

		assert.Equal(t, "beach.jpg 4 B\n", buf.String())
	})

	t.Run("interactive redraws in place", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		bar := newProgressBar(&buf, true)
		bar.Start("beach.jpg", 4)
		bar.Advance(4)
		bar.Finish()

		output := buf.String()
		assert.Equal(t, 3, strings.Count(output, "\r"))
		assert.Contains(t, output, "beach.jpg")
		assert.Contains(t, output, "4 B / 4 B")
		assert.True(t, strings.HasSuffix(output, "\n"))
	})

	t.Run("unknown total shows bytes only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		bar := newProgressBar(&buf, true)
		bar.Start("clip.mp4", 0)
		bar.Advance(3)
		bar.Finish()

		output := buf.String()
		assert.Contains(t, output, "3 B")
		assert.NotContains(t, output, " / ")
	})

	t.Run("restart resets the count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		bar := newProgressBar(&buf, false)
		bar.Start("a.jpg", 10)
		bar.Advance(10)
		bar.Finish()
		bar.Start("b.jpg", 2)
		bar.Advance(2)
		bar.Finish()

		assert.Equal(t, "a.jpg 10 B\nb.jpg 2 B\n", buf.String())
	})

	t.Run("non-file writer is not interactive", func(t *testing.T) {
		t.Parallel()

		bar := NewProgressBar(&bytes.Buffer{})
		assert.False(t, bar.interactive)
	})
}
