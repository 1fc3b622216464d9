package gcp

import (
	"context"
	"fmt"

	"google.golang.org/api/compute/v1"

	"github.com/imamik/zncdeploy/internal/util/retry"
)

// GetAddress returns the named regional address, or nil if it does not exist.
func (c *RealClient) GetAddress(ctx context.Context, region, name string) (*compute.Address, error) {
	addr, err := c.service.Addresses.Get(c.project, region, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get address %s: %w", name, err)
	}
	return addr, nil
}

// EnsureAddress reserves the named regional address if absent. The address
// value is only populated once the reservation operation completes, so the
// resource is re-fetched after a create.
func (c *RealClient) EnsureAddress(ctx context.Context, region, name string) (*compute.Address, bool, error) {
	existing, err := c.GetAddress(ctx, region, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	op, err := c.service.Addresses.Insert(c.project, region, &compute.Address{Name: name}).Context(ctx).Do()
	if err != nil {
		return nil, false, fmt.Errorf("failed to reserve address %s: %w", name, err)
	}
	if err := c.waitRegionOperation(ctx, region, op, c.timeouts.AddressReserve); err != nil {
		return nil, false, fmt.Errorf("address %s reservation did not complete: %w", name, err)
	}

	addr, err := c.GetAddress(ctx, region, name)
	if err != nil {
		return nil, false, err
	}
	if addr == nil {
		return nil, false, fmt.Errorf("address %s not found after reservation", name)
	}
	return addr, true, nil
}

// DeleteAddress releases the named address. A missing address is success.
func (c *RealClient) DeleteAddress(ctx context.Context, region, name string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.Do(ctx, func() error {
		op, err := c.service.Addresses.Delete(c.project, region, name).Context(ctx).Do()
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			if isRetryable(err) {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete address %s: %w", name, err))
		}
		return c.waitRegionOperation(ctx, region, op, c.timeouts.Delete)
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithDelay(c.timeouts.RetryInitialDelay))
}
