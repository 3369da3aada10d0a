package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScraped(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []engine.TranscriptSegment
	}{
		{
			name: "canonical fields",
			body: `[{"start":1,"duration":2,"text":"hi there"}]`,
			want: []engine.TranscriptSegment{{Start: 1, End: 3, Text: "hi there", Difficulty: engine.Beginner}},
		},
		{
			name: "aliased fields",
			body: `[{"offset":2,"dur":4,"content":"hi"}]`,
			want: []engine.TranscriptSegment{{Start: 2, End: 6, Text: "hi", Difficulty: engine.Beginner}},
		},
		{
			name: "numeric strings",
			body: `[{"start":"1.5","dur":"0.5","text":"a"}]`,
			want: []engine.TranscriptSegment{{Start: 1.5, End: 2, Text: "a", Difficulty: engine.Beginner}},
		},
		{
			name: "zero falls through to alias",
			body: `[{"start":0,"offset":5,"duration":0,"dur":2,"text":"","content":"x"}]`,
			want: []engine.TranscriptSegment{{Start: 5, End: 7, Text: "x", Difficulty: engine.Beginner}},
		},
		{
			name: "missing duration defaults to three seconds",
			body: `[{"text":"a"}]`,
			want: []engine.TranscriptSegment{{Start: 0, End: 3, Text: "a", Difficulty: engine.Beginner}},
		},
		{
			name: "negative duration defaults",
			body: `[{"start":4,"duration":-1,"text":"a"}]`,
			want: []engine.TranscriptSegment{{Start: 4, End: 7, Text: "a", Difficulty: engine.Beginner}},
		},
		{
			name: "non-object elements skipped",
			body: `[1, "x", null, {"text":"however"}]`,
			want: []engine.TranscriptSegment{{Start: 0, End: 3, Text: "however", Difficulty: engine.Advanced}},
		},
		{
			name: "NaN start falls through to alias",
			body: `[{"start":"NaN","offset":2,"text":"hi"}]`,
			want: []engine.TranscriptSegment{{Start: 2, End: 5, Text: "hi", Difficulty: engine.Beginner}},
		},
		{
			name: "infinite offset ignored",
			body: `[{"offset":"Inf","text":"hi"}]`,
			want: []engine.TranscriptSegment{{Start: 0, End: 3, Text: "hi", Difficulty: engine.Beginner}},
		},
		{
			name: "infinite duration defaults",
			body: `[{"start":1,"duration":"-Infinity","dur":"Infinity","text":"hi"}]`,
			want: []engine.TranscriptSegment{{Start: 1, End: 4, Text: "hi", Difficulty: engine.Beginner}},
		},
		{
			name: "empty array",
			body: ` [] `,
			want: []engine.TranscriptSegment{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeScraped([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeScraped_RejectsNonArray(t *testing.T) {
	for _, body := range []string{``, `{"transcript":[]}`, `<html></html>`, `[{"text":"a"}`} {
		_, err := NormalizeScraped([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestExpandEndpoint(t *testing.T) {
	assert.Equal(t, "https://a.example/?v=abc", expandEndpoint("https://a.example/?v={videoId}", "abc"))
	assert.Equal(t,
		"https://b.example/get?url=https%3A%2F%2Fwww.youtube.com%2Fwatch%3Fv%3Dabc",
		expandEndpoint("https://b.example/get?url={watchURL}", "abc"))
}

func TestScrapers_FirstSuccessfulEndpointWins(t *testing.T) {
	var order []string
	var unexpected atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, r.URL.Path)
		assert.Equal(t, engine.UserAgentScraper, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/down":
			w.WriteHeader(http.StatusBadGateway)
		case "/object":
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		case "/empty":
			_, _ = w.Write([]byte(`[]`))
		case "/ok":
			assert.Equal(t, "vid", r.URL.Query().Get("id"))
			_, _ = w.Write([]byte(`[{"start":0,"duration":1.5,"text":"first"},{"start":1.5,"duration":2,"text":"second"}]`))
		default:
			unexpected.Add(1)
		}
	}))
	defer ts.Close()

	s := &Scrapers{
		Endpoints: []string{
			ts.URL + "/down?id={videoId}",
			ts.URL + "/object?id={videoId}",
			ts.URL + "/empty?id={videoId}",
			ts.URL + "/ok?id={videoId}",
			ts.URL + "/never?id={videoId}",
		},
		Timeout:    time.Second,
		HTTPClient: ts.Client(),
	}

	segs, err := s.Fetch(context.Background(), "vid")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "first", segs[0].Text)
	assert.Equal(t, 3.5, segs[1].End)
	assert.Equal(t, []string{"/down", "/object", "/empty", "/ok"}, order)
	assert.Zero(t, unexpected.Load())
}

func TestScrapers_AllFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	s := &Scrapers{Endpoints: []string{ts.URL + "/a", ts.URL + "/b"}, Timeout: time.Second}
	segs, err := s.Fetch(context.Background(), "vid")
	assert.Nil(t, segs)
	assert.Error(t, err)
}

func TestScrapers_PerEndpointTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		_, _ = w.Write([]byte(`[{"text":"fast"}]`))
	}))
	defer ts.Close()

	s := &Scrapers{Endpoints: []string{ts.URL + "/slow", ts.URL + "/fast"}, Timeout: 100 * time.Millisecond}
	start := time.Now()
	segs, err := s.Fetch(context.Background(), "vid")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "fast", segs[0].Text)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNormalizeScraped_NonFiniteStillEncodes(t *testing.T) {
	segs, err := NormalizeScraped([]byte(`[{"start":"NaN","duration":"+Inf","text":"hi"}]`))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Greater(t, segs[0].End, segs[0].Start)

	_, err = json.Marshal(segs)
	assert.NoError(t, err)
}
