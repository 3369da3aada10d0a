package sources

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/anatolykoptev/go_subtitles/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shHelper(t *testing.T, script string, timeout time.Duration) *Helper {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return &Helper{Command: []string{"sh", "-c", script, "helper"}, Timeout: timeout}
}

func TestHelper_Enabled(t *testing.T) {
	var nilHelper *Helper
	assert.False(t, nilHelper.Enabled())
	assert.False(t, (&Helper{}).Enabled())
	assert.True(t, (&Helper{Command: []string{"python3"}}).Enabled())
}

func TestHelper_Run(t *testing.T) {
	h := shHelper(t, `printf '{"success":true,"transcript":[{"start":0,"end":2.5,"text":"id %s","translation":"","difficulty":"advanced"},{"start":2.5,"end":4,"text":"hi"}]}' "$1"`, 5*time.Second)

	segs, err := h.Run(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "id abc", segs[0].Text)
	assert.Equal(t, 2.5, segs[0].End)
	assert.Equal(t, engine.Advanced, segs[0].Difficulty)
	assert.Equal(t, engine.Beginner, segs[1].Difficulty, "missing difficulty is classified")
}

func TestHelper_RunFailures(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		timeout time.Duration
		wantErr string
	}{
		{"non-zero exit", `echo "module not found" >&2; exit 3`, 5 * time.Second, "exited with code 3: module not found"},
		{"reported failure", `echo '{"success":false,"error":"no captions"}'`, 5 * time.Second, "reported failure: no captions"},
		{"bad json", `echo 'Traceback (most recent call last)'`, 5 * time.Second, "parse output"},
		{"empty transcript", `echo '{"success":true,"transcript":[]}'`, 5 * time.Second, "empty transcript"},
		{"only invalid segments", `echo '{"success":true,"transcript":[{"start":5,"end":5,"text":"x"}]}'`, 5 * time.Second, "empty transcript"},
		{"timeout", `exec sleep 5`, 200 * time.Millisecond, "timed out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := shHelper(t, tt.script, tt.timeout)
			start := time.Now()
			segs, err := h.Run(context.Background(), "vid")
			assert.Nil(t, segs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Less(t, time.Since(start), 4*time.Second)
		})
	}
}

func TestHelper_MissingBinary(t *testing.T) {
	h := &Helper{Command: []string{"definitely-not-a-real-binary-xyz"}, Timeout: time.Second}
	_, err := h.Run(context.Background(), "vid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "helper: run")
}

func TestParseHelperOutput_DropsInvertedSegments(t *testing.T) {
	segs, err := parseHelperOutput([]byte(`{"success":true,"transcript":[
		{"start":0,"end":1,"text":"ok"},
		{"start":3,"end":2,"text":"backwards"}
	]}`))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "ok", segs[0].Text)
}

func TestParseHelperOutput_ReclassifiesUnknownDifficulty(t *testing.T) {
	segs, err := parseHelperOutput([]byte(`{"success":true,"transcript":[
		{"start":0,"end":1,"text":"I like it","difficulty":"expert"},
		{"start":1,"end":2,"text":"I like it","difficulty":"intermediate"}
	]}`))
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, engine.Beginner, segs[0].Difficulty)
	assert.Equal(t, engine.Intermediate, segs[1].Difficulty)
}
