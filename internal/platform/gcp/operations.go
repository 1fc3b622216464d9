package gcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/compute/v1"
)

const operationDone = "DONE"

// waitOperation polls an operation until it reaches DONE or the timeout
// elapses. The poll function must return the latest view of the operation.
func (c *RealClient) waitOperation(ctx context.Context, op *compute.Operation, timeout time.Duration, poll func(ctx context.Context, name string) (*compute.Operation, error)) error {
	if op.Status == operationDone {
		return operationError(op)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(c.timeouts.OperationPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for operation %s: %w", op.Name, ctx.Err())
		case <-ticker.C:
			latest, err := poll(ctx, op.Name)
			if err != nil {
				return fmt.Errorf("failed to poll operation %s: %w", op.Name, err)
			}
			if latest.Status == operationDone {
				return operationError(latest)
			}
		}
	}
}

// waitZoneOperation waits for a zonal operation to complete.
func (c *RealClient) waitZoneOperation(ctx context.Context, zone string, op *compute.Operation, timeout time.Duration) error {
	return c.waitOperation(ctx, op, timeout, func(ctx context.Context, name string) (*compute.Operation, error) {
		return c.service.ZoneOperations.Get(c.project, zone, name).Context(ctx).Do()
	})
}

// waitRegionOperation waits for a regional operation to complete.
func (c *RealClient) waitRegionOperation(ctx context.Context, region string, op *compute.Operation, timeout time.Duration) error {
	return c.waitOperation(ctx, op, timeout, func(ctx context.Context, name string) (*compute.Operation, error) {
		return c.service.RegionOperations.Get(c.project, region, name).Context(ctx).Do()
	})
}

// waitGlobalOperation waits for a global operation to complete.
func (c *RealClient) waitGlobalOperation(ctx context.Context, op *compute.Operation, timeout time.Duration) error {
	return c.waitOperation(ctx, op, timeout, func(ctx context.Context, name string) (*compute.Operation, error) {
		return c.service.GlobalOperations.Get(c.project, name).Context(ctx).Do()
	})
}

// operationError converts a completed operation's error block into a Go
// error, or nil when the operation succeeded.
func operationError(op *compute.Operation) error {
	if op.Error == nil || len(op.Error.Errors) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(op.Error.Errors))
	for _, e := range op.Error.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Code, e.Message))
	}
	return fmt.Errorf("operation %s failed: %s", op.Name, strings.Join(msgs, "; "))
}
