package interstitial_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"nobaidu/internal/interstitial"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// urlSequence returns the given URLs in order, repeating the last one.
type urlSequence struct {
	urls  []string
	calls atomic.Int32
	err   error
}

func (s *urlSequence) CurrentURL(ctx context.Context) (string, error) {
	n := int(s.calls.Add(1)) - 1
	if s.err != nil && n > 0 {
		return "", s.err
	}
	if n >= len(s.urls) {
		n = len(s.urls) - 1
	}
	return s.urls[n], nil
}

const challenge = "https://wappass.baidu.com/static/captcha/tuxing.html?ak=1"

func opts() interstitial.Options {
	return interstitial.Options{
		Pattern:  interstitial.BaiduVerification,
		Interval: time.Millisecond,
	}
}

func TestAwait(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately when no challenge is shown", func(t *testing.T) {
		t.Parallel()

		src := &urlSequence{urls: []string{"https://www.baidu.com/s?wd=go"}}
		o := opts()
		o.OnAwait = func(string) { t.Fatal("OnAwait must not be called") }

		blocked, err := interstitial.Await(context.Background(), src, o)

		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Equal(t, int32(1), src.calls.Load())
	})

	t.Run("waits until the challenge clears", func(t *testing.T) {
		t.Parallel()

		src := &urlSequence{urls: []string{challenge, challenge, challenge, "https://www.baidu.com/s?wd=go"}}
		var notified string
		o := opts()
		o.OnAwait = func(url string) { notified = url }

		blocked, err := interstitial.Await(context.Background(), src, o)

		require.NoError(t, err)
		assert.True(t, blocked)
		assert.Equal(t, challenge, notified)
		assert.Equal(t, int32(4), src.calls.Load())
	})

	t.Run("gives up after the timeout", func(t *testing.T) {
		t.Parallel()

		src := &urlSequence{urls: []string{challenge}}
		o := opts()
		o.Timeout = 20 * time.Millisecond

		blocked, err := interstitial.Await(context.Background(), src, o)

		assert.True(t, blocked)
		assert.ErrorIs(t, err, interstitial.ErrTimeout)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		src := &urlSequence{urls: []string{challenge}}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := interstitial.Await(ctx, src, opts())

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("keeps polling through read errors", func(t *testing.T) {
		t.Parallel()

		src := &urlSequence{urls: []string{challenge}, err: errors.New("navigating")}
		o := opts()
		o.Timeout = 20 * time.Millisecond

		_, err := interstitial.Await(context.Background(), src, o)

		assert.ErrorIs(t, err, interstitial.ErrTimeout)
	})

	t.Run("initial read error is returned", func(t *testing.T) {
		t.Parallel()

		src := &errSource{}
		_, err := interstitial.Await(context.Background(), src, opts())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read current url")
	})
}

type errSource struct{}

func (errSource) CurrentURL(ctx context.Context) (string, error) {
	return "", errors.New("page gone")
}
