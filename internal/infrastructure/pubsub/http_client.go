package pubsub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type client struct {
	*http.Client
}

func newHTTPClient(requestTimeout time.Duration) *client {
	return &client{&http.Client{Timeout: requestTimeout}}
}

// post sends body to url and fails for any non-2xx response.
func (c *client) post(
	ctx context.Context, url, body string, header map[string]string,
) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, strings.NewReader(body),
	)
	if err != nil {
		return err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf(
			"endpoint %s replied with status %d: %s", url, resp.StatusCode,
			strings.TrimSpace(string(msg)),
		)
	}
	return nil
}
