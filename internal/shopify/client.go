package shopify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	goshopify "github.com/bold-commerce/go-shopify/v4"

	"coupon-generator/internal/metrics"
	"coupon-generator/internal/model"
	"coupon-generator/pkg/apierror"
)

var apiVersionPattern = regexp.MustCompile(`/admin/api/(\d{4}-\d{2}|unstable)(?:/|$)`)

type Options struct {
	Retries int
	// Timeout bounds each upstream call. Zero leaves calls bounded only by
	// the inbound request context.
	Timeout   time.Duration
	Transport http.RoundTripper
	Metrics   *metrics.Metrics
}

// Client talks to the Shopify Admin API on behalf of configured brands. One
// go-shopify client is built lazily per brand and reused.
type Client struct {
	opts Options

	mu      sync.Mutex
	clients map[string]*goshopify.Client
}

func NewClient(opts Options) *Client {
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	return &Client{opts: opts, clients: map[string]*goshopify.Client{}}
}

func (c *Client) clientFor(brand model.Brand) (*goshopify.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.clients[brand.ID]; ok {
		return existing, nil
	}

	adminURL, err := url.Parse(brand.AdminAPIURL)
	if err != nil || adminURL.Host == "" {
		return nil, apierror.Internal(fmt.Sprintf("brand %q has an invalid Admin API URL", brand.ID), err)
	}

	transport := &brandTransport{base: c.opts.Transport, admin: adminURL}
	if strings.TrimSpace(brand.GraphQLURL) != "" {
		graphqlURL, parseErr := url.Parse(brand.GraphQLURL)
		if parseErr != nil || graphqlURL.Host == "" {
			return nil, apierror.Internal(fmt.Sprintf("brand %q has an invalid GraphQL URL", brand.ID), parseErr)
		}
		transport.graphql = graphqlURL
	}

	options := []goshopify.Option{
		goshopify.WithHTTPClient(&http.Client{Transport: transport, Timeout: c.opts.Timeout}),
		goshopify.WithLogger(&leveledLogger{log: slog.Default().With("brand_id", brand.ID)}),
	}
	if version := apiVersion(adminURL.Path); version != "" {
		options = append(options, goshopify.WithVersion(version))
	}
	if c.opts.Retries > 0 {
		options = append(options, goshopify.WithRetry(c.opts.Retries))
	}

	app := goshopify.App{ApiKey: brand.APIKey, ApiSecret: brand.APISecret}
	client, err := goshopify.NewClient(app, adminURL.Hostname(), brand.AccessToken, options...)
	if err != nil {
		return nil, apierror.Internal("failed to create Shopify client", err)
	}

	c.clients[brand.ID] = client
	return client, nil
}

// call runs fn against the brand's client and converts failures into typed
// API errors.
func (c *Client) call(ctx context.Context, brand model.Brand, operation string, fn func(*goshopify.Client) error) error {
	client, err := c.clientFor(brand)
	if err != nil {
		return err
	}

	started := time.Now()
	err = normalizeError(fn(client))
	elapsed := time.Since(started)

	outcome := "ok"
	if err != nil {
		outcome = string(apierror.KindOf(err))
		slog.WarnContext(ctx, "shopify request failed",
			"brand_id", brand.ID,
			"operation", operation,
			"duration_ms", elapsed.Milliseconds(),
			"error", err.Error(),
		)
	} else {
		slog.DebugContext(ctx, "shopify request",
			"brand_id", brand.ID,
			"operation", operation,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
	c.opts.Metrics.ShopifyRequest(brand.ID, operation, outcome, elapsed)

	return err
}

func apiVersion(path string) string {
	match := apiVersionPattern.FindStringSubmatch(path)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// normalizeError maps go-shopify errors to apierror kinds. The upstream
// message is kept verbatim; when Shopify sent none the status line is used.
func normalizeError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		// An empty body (204 No Content) decodes to io.EOF.
		return nil
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return err
	}

	var rateErr goshopify.RateLimitError
	if errors.As(err, &rateErr) {
		return apierror.RateLimited(responseMessage(rateErr.ResponseError))
	}

	var respErr goshopify.ResponseError
	if errors.As(err, &respErr) {
		message := responseMessage(respErr)
		if respErr.Status == http.StatusNotFound {
			e := apierror.NotFound(message)
			e.Err = err
			return e
		}
		return apierror.Upstream(message, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apierror.Upstream("Shopify request cancelled: "+err.Error(), err)
	}

	return apierror.Upstream(err.Error(), err)
}

func responseMessage(respErr goshopify.ResponseError) string {
	if strings.TrimSpace(respErr.Message) != "" {
		return respErr.Message
	}
	if len(respErr.Errors) > 0 {
		return strings.Join(respErr.Errors, ", ")
	}
	return fmt.Sprintf("Shopify API error: %d %s", respErr.Status, http.StatusText(respErr.Status))
}
