package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachClients(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantLLM bool
	}{
		{"translation off", Config{LLMAPIKey: "k"}, false},
		{"translation without key", Config{TranslateEnabled: true}, false},
		{"translation with key", Config{TranslateEnabled: true, LLMAPIKey: "k", LLMAPIBase: "http://127.0.0.1:1", LLMModel: "m"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cfg
			AttachClients(context.Background(), &c)
			assert.NotNil(t, c.HTTPClient)
			assert.Nil(t, c.BrowserClient, "stealth not requested")
			assert.Equal(t, tt.wantLLM, c.LLMClient != nil)
		})
	}
}

func TestAttachClients_Stealth(t *testing.T) {
	c := Config{ScraperStealth: true}
	AttachClients(context.Background(), &c)
	assert.NotNil(t, c.BrowserClient)
}
