// Package netutil provides small helpers for checking instance
// reachability over the network.
package netutil

import (
	"context"
	"fmt"
	"net"
	"time"
)

const (
	// SSHPort is probed to tell when a freshly created instance has
	// finished booting.
	SSHPort = 22
	// DefaultWaitTimeout bounds how long a reachability wait may take.
	DefaultWaitTimeout = 5 * time.Minute

	pollInterval = 5 * time.Second
	dialTimeout  = 2 * time.Second
)

// WaitForPort polls until a TCP connection to ip:port succeeds or the
// timeout expires. The first probe fires immediately.
func WaitForPort(ctx context.Context, ip string, port int, timeout time.Duration) error {
	address := net.JoinHostPort(ip, fmt.Sprintf("%d", port))

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		conn, err := net.DialTimeout("tcp", address, dialTimeout)
		if err == nil {
			_ = conn.Close()
			return nil
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return fmt.Errorf("timeout waiting for %s", address)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
