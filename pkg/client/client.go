package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/mathd/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/mathd/internal/shared/types"
)

var (
	// ErrBadRequest marks a request the server refused as malformed. It never
	// trips the breaker.
	ErrBadRequest = errors.New("bad request")

	// ErrDecode marks a 2xx answer whose body could not be decoded. The server
	// did its job, so it is neither retried nor counted by the breaker.
	ErrDecode = errors.New("undecodable response")
)

// responseJSON keeps numbers as json.Number so integer results wider than
// a float64 (factorial, lcm) arrive digit for digit.
var responseJSON = sonic.Config{UseNumber: true}.Froze()

// Client calls a remote mathd HTTP server
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.resty.SetTimeout(d)
	}
}

// WithRetry configures retries for transport errors and 5xx answers
func WithRetry(count int, minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.resty.SetRetryCount(count).
			SetRetryWaitTime(minWait).
			SetRetryMaxWaitTime(maxWait)
	}
}

// WithBreaker replaces the default circuit breaker settings
func WithBreaker(settings resilience.Settings) Option {
	return func(c *Client) {
		c.breaker = newBreaker(settings)
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("User-Agent", types.ServerName+"-client/"+types.Version).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(responseJSON.Unmarshal).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	c := &Client{resty: r}
	c.breaker = newBreaker(resilience.Settings{})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newBreaker(settings resilience.Settings) *resilience.Breaker {
	if settings.IsFailure == nil {
		settings.IsFailure = func(err error) bool {
			return err != nil && !errors.Is(err, ErrBadRequest)
		}
	}
	return resilience.New("mathd-client", settings)
}

// Breaker exposes the circuit breaker guarding remote calls
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

type errorBody struct {
	Error string `json:"error"`
}

type toolList struct {
	Tools []types.Tool `json:"tools"`
	Count int          `json:"count"`
}

type discovery struct {
	Query string       `json:"query"`
	Tools []types.Tool `json:"tools"`
}

// ListTools fetches the advertised catalog, optionally limited to a group
func (c *Client) ListTools(ctx context.Context, group string) ([]types.Tool, error) {
	var out toolList
	err := c.do(ctx, &out, func(req *resty.Request) (*resty.Response, error) {
		if group != "" {
			req.SetQueryParam("group", group)
		}
		return req.Get("/tools")
	})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return out.Tools, nil
}

// Tool describes a single tool
func (c *Client) Tool(ctx context.Context, name string) (types.Tool, error) {
	var out types.Tool
	err := c.do(ctx, &out, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/tools/" + url.PathEscape(name))
	})
	if err != nil {
		return types.Tool{}, fmt.Errorf("describe %s: %w", name, err)
	}
	return out, nil
}

// Discover ranks tools against a free-text intent
func (c *Client) Discover(ctx context.Context, query string, limit int) ([]types.Tool, error) {
	var out discovery
	err := c.do(ctx, &out, func(req *resty.Request) (*resty.Response, error) {
		req.SetQueryParam("q", query)
		if limit > 0 {
			req.SetQueryParam("limit", strconv.Itoa(limit))
		}
		return req.Get("/tools/discover")
	})
	if err != nil {
		return nil, fmt.Errorf("discover %q: %w", query, err)
	}
	return out.Tools, nil
}

// Call executes a tool with raw arguments. A computation failure is not an
// error: it comes back as a Result carrying an ErrorReport.
func (c *Client) Call(ctx context.Context, name string, args interface{}) (*types.Result, error) {
	var out types.Result
	err := c.do(ctx, &out, func(req *resty.Request) (*resty.Response, error) {
		if args != nil {
			req.SetBody(args)
		}
		return req.
			SetHeader("Content-Type", "application/json").
			Post("/tools/" + url.PathEscape(name))
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return &out, nil
}

// do runs one request through the breaker, maps non-2xx answers to errors
// and decodes a 2xx body into out. Decoding happens after the breaker has
// recorded the exchange.
func (c *Client) do(ctx context.Context, out interface{}, send func(req *resty.Request) (*resty.Response, error)) error {
	resp, err := resilience.Call(ctx, c.breaker, func(ctx context.Context) (*resty.Response, error) {
		resp, err := send(c.resty.R().SetContext(ctx))
		if err != nil {
			return resp, err
		}
		return resp, statusError(resp)
	})
	if err != nil {
		return err
	}

	if err := responseJSON.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func statusError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	msg := resp.Status()
	var body errorBody
	if err := responseJSON.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	code := resp.StatusCode()
	if code >= 400 && code < 500 && code != http.StatusTooManyRequests {
		return fmt.Errorf("%w: %d %s", ErrBadRequest, code, msg)
	}
	return fmt.Errorf("server error: %d %s", code, msg)
}
