// Package client is the Go SDK for the back office API. It caches GET
// responses for CacheTTL and can answer from local or demo data when the API
// is unreachable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vendaflow/backoffice/pkg/logger"
	"github.com/vendaflow/backoffice/pkg/types"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 10 * time.Second

const maxResponseBytes = 4 << 20

// Source tells where a Response came from.
type Source string

const (
	SourceNetwork Source = "network"
	SourceCache   Source = "cache"
	SourceLocal   Source = "local"
	SourceDemo    Source = "demo"
)

// RequestOptions shape one request. The zero value is a cached GET.
type RequestOptions struct {
	Method  string
	Query   url.Values
	Body    any
	NoCache bool
}

func (o RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(o.Method)
}

// Response is a raw API envelope plus its origin.
type Response struct {
	StatusCode int
	Source     Source
	Body       []byte
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

// Decode unmarshals the envelope's data field into v.
func (r *Response) Decode(v any) error {
	var env envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if v == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// networkError marks transport failures, the only errors that trigger the
// auto-mode fallback.
type networkError struct {
	err error
}

func (e *networkError) Error() string { return "network: " + e.err.Error() }
func (e *networkError) Unwrap() error { return e.err }

// IsNetworkError reports whether err came from the transport rather than
// the API.
func IsNetworkError(err error) bool {
	var netErr *networkError
	return errors.As(err, &netErr)
}

// Options configure a Client.
type Options struct {
	BaseURL    string
	Mode       Mode
	HTTPClient *http.Client
	Timeout    time.Duration
	Store      Store
	Local      LocalProvider
	Logger     *logger.Logger
	Now        func() time.Time
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	store   Store
	local   LocalProvider
	logg    *logger.Logger
	now     func() time.Time
	cache   *responseCache

	mu   sync.Mutex
	mode Mode
}

// New builds a client. The mode is resolved once here: Options.Mode first,
// then the mode saved in the store, then ModeAuto.
func New(opts Options) (*Client, error) {
	store := opts.Store
	if store == nil {
		store = NewMemoryStore(State{})
	}
	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	mode, err := ResolveMode(string(opts.Mode), string(st.Mode))
	if err != nil {
		return nil, err
	}

	var base *url.URL
	if strings.TrimSpace(opts.BaseURL) != "" {
		base, err = url.Parse(strings.TrimRight(opts.BaseURL, "/"))
		if err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		if base.Scheme != "http" && base.Scheme != "https" {
			return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", opts.BaseURL)
		}
	} else if mode != ModeFrontend {
		return nil, errors.New("base url required unless mode is frontend")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	local := opts.Local
	if local == nil {
		local = NewStateProvider(store)
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		timeout: timeout,
		store:   store,
		local:   local,
		logg:    logg,
		now:     now,
		cache:   newResponseCache(CacheTTL),
		mode:    mode,
	}, nil
}

// Mode returns the current mode.
func (c *Client) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches mode manually. It is the only way back to the backend
// after an automatic degrade.
func (c *Client) SetMode(m Mode) error {
	m, err := ParseMode(string(m))
	if err != nil {
		return err
	}
	if m != ModeFrontend && c.baseURL == nil {
		return errors.New("base url required unless mode is frontend")
	}
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
	return nil
}

// degrade flips auto mode to frontend. It never flips back.
func (c *Client) degrade(ctx context.Context, cause error) bool {
	c.mu.Lock()
	if c.mode != ModeAuto {
		c.mu.Unlock()
		return false
	}
	c.mode = ModeFrontend
	c.mu.Unlock()

	c.logg.Warn(c.logg.WithField(ctx, "cause", cause.Error()), "api unreachable, switching to frontend mode")
	return true
}

// FetchWithCache answers from the cache when a fresh entry exists, otherwise
// from the API or, in frontend mode, from local and demo data.
func (c *Client) FetchWithCache(ctx context.Context, endpoint Endpoint, opts RequestOptions) (*Response, error) {
	cacheable := opts.method() == http.MethodGet && !opts.NoCache
	key := cacheKey(string(endpoint), opts)
	if cacheable {
		if entry, ok := c.cache.get(key, c.now()); ok {
			return &Response{StatusCode: entry.status, Source: SourceCache, Body: entry.body}, nil
		}
	}

	if c.Mode() == ModeFrontend {
		return c.fetchLocal(ctx, endpoint, opts)
	}

	resp, err := c.fetchRemote(ctx, string(endpoint), opts)
	if err != nil {
		if IsNetworkError(err) && c.degrade(ctx, err) {
			return c.fetchLocal(ctx, endpoint, opts)
		}
		return nil, err
	}
	if cacheable {
		c.cache.put(key, cacheEntry{body: resp.Body, status: resp.StatusCode, storedAt: c.now()})
	}
	return resp, nil
}

func (c *Client) fetchRemote(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(reqCtx, opts.method(), c.urlFor(path, opts.Query), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	st, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if st.Token != "" {
		req.Header.Set("Authorization", "Bearer "+st.Token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &networkError{err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, &networkError{err: err}
	}
	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res.StatusCode, raw)
	}
	return &Response{StatusCode: res.StatusCode, Source: SourceNetwork, Body: raw}, nil
}

func (c *Client) fetchLocal(ctx context.Context, endpoint Endpoint, opts RequestOptions) (*Response, error) {
	if c.local != nil {
		data, ok, err := c.local.Handle(ctx, endpoint, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			return wrapLocal(data, SourceLocal)
		}
	}
	if opts.method() != http.MethodGet {
		return nil, fmt.Errorf("%s %s: %w", opts.method(), endpoint, ErrNoDemoData)
	}
	payload, err := demoResponse(endpoint, c.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return wrapLocal(data, SourceDemo)
}

func wrapLocal(data json.RawMessage, source Source) (*Response, error) {
	raw, err := json.Marshal(types.Envelope{Success: true, Data: data})
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: http.StatusOK, Source: source, Body: raw}, nil
}

func (c *Client) urlFor(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status, Message: http.StatusText(status)}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error != "" {
			apiErr.Message = env.Error
		}
		apiErr.Code = env.Code
		apiErr.Details = env.Details
	}
	return apiErr
}

// cacheKey is endpoint plus a canonical rendering of the options. Query
// values are encoded sorted by key.
func cacheKey(endpoint string, opts RequestOptions) string {
	var b strings.Builder
	b.WriteString(opts.method())
	b.WriteByte(' ')
	b.WriteString(endpoint)
	if len(opts.Query) > 0 {
		b.WriteByte('?')
		b.WriteString(opts.Query.Encode())
	}
	if opts.Body != nil {
		if raw, err := json.Marshal(opts.Body); err == nil {
			b.WriteByte(' ')
			b.Write(raw)
		}
	}
	return b.String()
}
