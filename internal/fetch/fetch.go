package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/hyperifyio/newsscrape/internal/cache"
)

// DefaultUserAgent identifies requests as a desktop browser. Several news
// templates serve an empty shell to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultTimeout bounds a single request including reading the body.
const DefaultTimeout = 10 * time.Second

const defaultRedirectMaxHops = 10

// Client issues single GET requests. There is no retry: one attempt per URL.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// Optional on-disk cache for response bodies and validators.
	Cache *cache.HTTPCache
	// RedirectMaxHops caps redirect following. Zero means 10.
	RedirectMaxHops int
}

// New returns a Client with the default user agent and timeout.
func New(c *cache.HTTPCache) *Client {
	return &Client{UserAgent: DefaultUserAgent, Timeout: DefaultTimeout, Cache: c}
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.timeout(), CheckRedirect: c.checkRedirectFunc()}
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

// Fetch downloads rawURL and returns its markup transcoded to UTF-8. Any
// failure, including a panic in the request path, comes back as *Error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (body []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			body = nil
			err = &Error{Kind: KindGeneral, URL: rawURL, Detail: fmt.Sprintf("panic: %v", r)}
		}
	}()

	// URL problems are request failures too.
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return nil, networkError(rawURL, errors.New("empty URL"))
	}
	u, perr := url.Parse(target)
	if perr != nil {
		return nil, networkError(rawURL, perr)
	}
	if u.Scheme == "" {
		return nil, networkError(rawURL, fmt.Errorf("invalid URL %q: no scheme supplied", target))
	}
	if !isHTTPScheme(u) {
		return nil, networkError(rawURL, fmt.Errorf("unsupported URL %q: need http or https with a host", target))
	}

	var etag, lastMod string
	if c.Cache != nil {
		if meta, err := c.Cache.LoadMeta(ctx, target); err == nil && meta != nil {
			etag = meta.ETag
			lastMod = meta.LastModified
		}
	}

	res, ferr := c.do(ctx, target, etag, lastMod)
	if ferr != nil {
		return nil, ferr
	}

	raw, contentType := res.body, res.contentType
	switch {
	case res.status == http.StatusNotModified:
		cached, cerr := c.Cache.LoadBody(ctx, target)
		if cerr != nil {
			return nil, networkError(rawURL, fmt.Errorf("304 Not Modified without cached body: %w", cerr))
		}
		raw = cached
		if meta, merr := c.Cache.LoadMeta(ctx, target); merr == nil && meta != nil {
			contentType = meta.ContentType
		}
	case c.Cache != nil:
		_ = c.Cache.Save(ctx, target, contentType, res.etag, res.lastModified, raw)
	}

	decoded, derr := toUTF8(raw, contentType)
	if derr != nil {
		return nil, generalError(rawURL, fmt.Errorf("decode body: %w", derr))
	}
	return decoded, nil
}

type response struct {
	status       int
	body         []byte
	contentType  string
	etag         string
	lastModified string
}

func (c *Client) do(ctx context.Context, target, etag, lastMod string) (*response, *Error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, networkError(target, fmt.Errorf("new request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent())
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastMod != "" {
		req.Header.Set("If-Modified-Since", lastMod)
	}

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, networkError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && c.Cache != nil && (etag != "" || lastMod != "") {
		return &response{status: resp.StatusCode}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := networkError(target, fmt.Errorf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), target))
		e.StatusCode = resp.StatusCode
		return nil, e
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(target, fmt.Errorf("read body: %w", err))
	}
	return &response{
		status:       resp.StatusCode,
		body:         b,
		contentType:  resp.Header.Get("Content-Type"),
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
	}, nil
}

// toUTF8 transcodes using the declared charset, a <meta> declaration, or
// content sniffing, in that order.
func toUTF8(raw []byte, contentType string) ([]byte, error) {
	if len(raw) == 0 {
		return raw, nil
	}
	enc, _, _ := charset.DetermineEncoding(raw, contentType)
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	return out, err
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = defaultRedirectMaxHops
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
