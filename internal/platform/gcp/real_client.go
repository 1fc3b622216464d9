package gcp

import (
	"context"
	"fmt"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"

	"github.com/imamik/zncdeploy/internal/config"
)

// RealClient implements ComputeManager using the Compute Engine API.
type RealClient struct {
	project    string
	service    *compute.Service
	timeouts   *config.Timeouts
	clientOpts []option.ClientOption
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithComputeService sets a pre-built compute service (useful for testing
// against a local endpoint).
func WithComputeService(svc *compute.Service) ClientOption {
	return func(c *RealClient) {
		c.service = svc
	}
}

// WithAPIOptions passes additional options to the underlying API client,
// such as option.WithEndpoint or option.WithoutAuthentication.
func WithAPIOptions(opts ...option.ClientOption) ClientOption {
	return func(c *RealClient) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// NewRealClient creates a client for the given project using application
// default credentials unless a service or API options are supplied.
func NewRealClient(ctx context.Context, project string, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{
		project:  project,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.service == nil {
		svc, err := compute.NewService(ctx, c.clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create compute service: %w", err)
		}
		c.service = svc
	}

	return c, nil
}

// Project returns the project the client operates on.
func (c *RealClient) Project() string {
	return c.project
}

// Service returns the underlying compute service for operations not
// exposed through ComputeManager.
func (c *RealClient) Service() *compute.Service {
	return c.service
}

var _ ComputeManager = (*RealClient)(nil)
