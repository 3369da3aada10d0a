package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scraperServer(t *testing.T, body string, status int) (*Scrapers, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return &Scrapers{Endpoints: []string{ts.URL + "/?v={videoId}"}, Timeout: time.Second}, &hits
}

func TestCascade_HelperFirst(t *testing.T) {
	scrapers, hits := scraperServer(t, `[{"text":"scraped"}]`, http.StatusOK)
	c := &Cascade{
		Helper:   shHelper(t, `echo '{"success":true,"transcript":[{"start":0,"end":1,"text":"helper"}]}'`, 5*time.Second),
		Scrapers: scrapers,
	}

	segs, err := c.FetchTranscript(context.Background(), "vid")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "helper", segs[0].Text)
	assert.Zero(t, hits.Load())
}

func TestCascade_ScrapersAfterHelperFailure(t *testing.T) {
	scrapers, hits := scraperServer(t, `[{"text":"scraped"}]`, http.StatusOK)
	c := &Cascade{
		Helper:   shHelper(t, `exit 1`, 5*time.Second),
		Scrapers: scrapers,
	}

	segs, err := c.FetchTranscript(context.Background(), "vid")
	require.NoError(t, err)
	assert.Equal(t, "scraped", segs[0].Text)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCascade_NoHelperConfigured(t *testing.T) {
	scrapers, _ := scraperServer(t, `[{"text":"scraped"}]`, http.StatusOK)
	c := &Cascade{Scrapers: scrapers}

	segs, err := c.FetchTranscript(context.Background(), "vid")
	require.NoError(t, err)
	assert.Equal(t, "scraped", segs[0].Text)
}

func TestCascade_Exhausted(t *testing.T) {
	scrapers, _ := scraperServer(t, `oops`, http.StatusServiceUnavailable)
	c := &Cascade{Helper: &Helper{}, Scrapers: scrapers}

	segs, err := c.FetchTranscript(context.Background(), "vid")
	assert.Nil(t, segs)
	assert.ErrorIs(t, err, engine.ErrNoTranscript)
}
