package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type apiClient struct {
	base  string
	http  *http.Client
	token func() (string, error)
}

func newAPIClient(g *globalFlags) *apiClient {
	return &apiClient{
		base:  strings.TrimRight(g.server, "/"),
		http:  &http.Client{Timeout: 30 * time.Second},
		token: func() (string, error) { return issueToken(g, time.Minute) },
	}
}

// do sends body as JSON and copies a pretty-printed response to out. Signed
// requests carry a fresh bearer token.
func (c *apiClient) do(ctx context.Context, out io.Writer, method, path string, signed bool, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "resolverctl/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if signed {
		token, err := c.token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if len(raw) > 0 {
		var pretty bytes.Buffer
		if json.Indent(&pretty, raw, "", "  ") == nil {
			raw = pretty.Bytes()
		}
		fmt.Fprintln(out, string(raw))
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	return nil
}
