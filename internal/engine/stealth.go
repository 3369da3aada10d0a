package engine

import (
	"context"
	"log/slog"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
)

// Re-export stealth types for engine consumers.
type BrowserClient = stealth.BrowserClient

// NewBrowserClient builds a Chrome-fingerprinted client for third-party
// transcript endpoints. timeoutSec bounds every request made through it.
// A non-empty webshareKey routes requests through a rotating proxy pool.
func NewBrowserClient(ctx context.Context, timeoutSec int, webshareKey string) (*BrowserClient, error) {
	log := LoggerFrom(ctx)
	opts := []stealth.ClientOption{stealth.WithTimeout(timeoutSec)}

	if webshareKey != "" {
		pool, err := proxypool.NewWebshare(webshareKey)
		if err != nil {
			log.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			log.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}
	return stealth.NewClient(opts...)
}

// BrowserGet performs a GET through bc, giving up when ctx is done.
// BrowserClient.Do takes no context, so an abandoned request keeps running in
// the background until the client's own timeout (ScraperTimeout, see
// AttachClients) ends it. That timeout is the real bound on the connection.
func BrowserGet(ctx context.Context, bc *BrowserClient, url string, headers map[string]string) ([]byte, int, error) {
	type result struct {
		data   []byte
		status int
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		data, _, status, err := bc.Do(http.MethodGet, url, headers, nil)
		ch <- result{data, status, err}
	}()
	select {
	case r := <-ch:
		return r.data, r.status, r.err
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
}
