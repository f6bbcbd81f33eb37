package board

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
)

type Item interface{}

// FetchError is returned for every failure while retrieving a resource:
// transport, bad status, broken body or undecodable payload.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// getList loads a JSON array from the resource path and decodes its items into target.
func (c *Client) getList(path string, target interface{}) error {
	items, err := c.GetItems(path)
	if err != nil {
		return &FetchError{Resource: path, Err: err}
	}

	cfg := &mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return &FetchError{Resource: path, Err: err}
	}

	if err := decoder.Decode(items); err != nil {
		return &FetchError{Resource: path, Err: fmt.Errorf("decode items: %w", err)}
	}

	c.logger.Debug("got items from job board", zap.String("resource", path), zap.Int("count", len(items)))

	return nil
}

// GetItems makes GET request to the resource and returns the items of the JSON array.
func (c *Client) GetItems(path string) ([]Item, error) {
	endpoint, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		body = gzipReader
	}

	var items []Item
	if err := json.NewDecoder(body).Decode(&items); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return items, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

// resolve joins the path to the base URL. A base without trailing slash is
// treated as a directory.
func (c *Client) resolve(path string) (string, error) {
	base := strings.TrimSpace(c.BaseURL)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}

	return u.ResolveReference(ref).String(), nil
}
