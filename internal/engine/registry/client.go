package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fedmap/internal/core/errors"
	"fedmap/internal/shared/observability"
	"fedmap/internal/shared/util"

	"github.com/getkin/kin-openapi/openapi3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxResponseBytes = 8 << 20 // 8 MiB

const (
	endpointProject = "project"
	endpointPackage = "package"
)

type ClientOptions struct {
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
	Burst     int
	// HTTPClient overrides the default transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client is a read-only client for the project/package registry API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *util.Limiter
}

func NewClient(baseURL string, opts ClientOptions) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		client:  httpClient,
		limiter: util.NewLimiter(opts.RateLimit, opts.Burst),
	}
}

// BaseURL returns the registry base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetProject fetches the package id list of a project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*ProjectResponse, error) {
	var out ProjectResponse
	if err := c.fetch(ctx, endpointProject, "/projects/"+url.PathEscape(projectID), projectSchema, &out); err != nil {
		return nil, errors.AddContext(err, errors.CtxProject, projectID)
	}
	return &out, nil
}

// GetPackage fetches a package name and its exposed module descriptors.
func (c *Client) GetPackage(ctx context.Context, packageID string) (*PackageResponse, error) {
	var out PackageResponse
	if err := c.fetch(ctx, endpointPackage, "/packages/"+url.PathEscape(packageID), packageSchema, &out); err != nil {
		return nil, errors.AddContext(err, errors.CtxPackage, packageID)
	}
	return &out, nil
}

func (c *Client) fetch(ctx context.Context, endpoint, path string, schema *openapi3.Schema, out any) (err error) {
	target := c.baseURL + path
	ctx, span := observability.Tracer.Start(ctx, "registry."+endpoint, trace.WithAttributes(
		attribute.String("url", target),
	))
	defer span.End()

	started := time.Now()
	defer func() {
		observability.RegistryRequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
		if err != nil {
			span.RecordError(err)
			code, _ := errors.CodeOf(err)
			observability.RegistryRequestErrorsTotal.WithLabelValues(endpoint, string(code)).Inc()
		}
	}()

	if err := c.limiter.Wait(ctx, 1); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeUnavailable, "rate limiter wait"), errors.CtxURL, target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build registry request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeUnavailable, "registry request failed"), errors.CtxURL, target)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		code := errors.CodeUnavailable
		if resp.StatusCode == http.StatusNotFound {
			code = errors.CodeNotFound
		}
		statusErr := errors.New(code, "registry returned status "+strconv.Itoa(resp.StatusCode))
		statusErr = errors.AddContext(statusErr, errors.CtxStatus, resp.StatusCode)
		return errors.AddContext(statusErr, errors.CtxURL, target)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeUnavailable, "read registry response"), errors.CtxURL, target)
	}
	if len(data) > maxResponseBytes {
		tooLarge := errors.New(errors.CodeInvalidResponse, fmt.Sprintf("response exceeds %d bytes", maxResponseBytes))
		return errors.AddContext(tooLarge, errors.CtxURL, target)
	}

	if err := decodeValidated(data, schema, out); err != nil {
		return errors.AddContext(err, errors.CtxURL, target)
	}
	return nil
}

// decodeValidated checks data against schema before decoding it into out.
func decodeValidated(data []byte, schema *openapi3.Schema, out any) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.CodeInvalidResponse, "response is not valid JSON")
	}
	if err := schema.VisitJSON(raw); err != nil {
		return errors.Wrap(err, errors.CodeInvalidResponse, "response does not match schema")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, errors.CodeInvalidResponse, "decode response")
	}
	return nil
}
