package gcp

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/compute/v1"

	"github.com/imamik/zncdeploy/internal/util/retry"
)

// GetFirewall returns the named firewall rule, or nil if it does not exist.
func (c *RealClient) GetFirewall(ctx context.Context, name string) (*compute.Firewall, error) {
	fw, err := c.service.Firewalls.Get(c.project, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get firewall rule %s: %w", name, err)
	}
	return fw, nil
}

// EnsureFirewall creates the rule if it does not exist. Existing rules are
// returned unchanged; drift against the desired rule is the caller's to
// report.
func (c *RealClient) EnsureFirewall(ctx context.Context, rule FirewallRule) (*compute.Firewall, bool, error) {
	existing, err := c.GetFirewall(ctx, rule.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	op, err := c.service.Firewalls.Insert(c.project, buildFirewall(rule)).Context(ctx).Do()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create firewall rule %s: %w", rule.Name, err)
	}
	if err := c.waitGlobalOperation(ctx, op, c.timeouts.AddressReserve); err != nil {
		return nil, false, fmt.Errorf("firewall rule %s creation did not complete: %w", rule.Name, err)
	}

	fw, err := c.GetFirewall(ctx, rule.Name)
	if err != nil {
		return nil, false, err
	}
	if fw == nil {
		return nil, false, fmt.Errorf("firewall rule %s not found after creation", rule.Name)
	}
	return fw, true, nil
}

// buildFirewall maps a rule onto the API firewall resource. An empty
// source range list defaults to allowing traffic from anywhere, which is
// what a bouncer reachable from arbitrary client networks needs.
func buildFirewall(rule FirewallRule) *compute.Firewall {
	sourceRanges := rule.SourceRanges
	if len(sourceRanges) == 0 {
		sourceRanges = []string{"0.0.0.0/0"}
	}

	return &compute.Firewall{
		Name:         rule.Name,
		Network:      rule.Network,
		SourceRanges: sourceRanges,
		TargetTags:   []string{rule.TargetTag},
		Description:  rule.Description,
		Allowed: []*compute.FirewallAllowed{
			{
				IPProtocol: rule.Protocol,
				Ports:      []string{strconv.Itoa(rule.Port)},
			},
		},
	}
}

// Matches reports whether an existing firewall resource still matches the
// desired rule's target tag and allowed port. Used to warn about drift on
// rules that predate this invocation.
func (r FirewallRule) Matches(fw *compute.Firewall) bool {
	if fw == nil {
		return false
	}
	if len(fw.TargetTags) != 1 || fw.TargetTags[0] != r.TargetTag {
		return false
	}
	port := strconv.Itoa(r.Port)
	for _, allowed := range fw.Allowed {
		if allowed.IPProtocol != r.Protocol {
			continue
		}
		for _, p := range allowed.Ports {
			if p == port {
				return true
			}
		}
	}
	return false
}

// DeleteFirewall deletes the named rule. A missing rule is success.
func (c *RealClient) DeleteFirewall(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	return retry.Do(ctx, func() error {
		op, err := c.service.Firewalls.Delete(c.project, name).Context(ctx).Do()
		if err != nil {
			if IsNotFound(err) {
				return nil
			}
			if isRetryable(err) {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete firewall rule %s: %w", name, err))
		}
		return c.waitGlobalOperation(ctx, op, c.timeouts.Delete)
	},
		retry.WithMaxAttempts(c.timeouts.RetryMaxAttempts),
		retry.WithDelay(c.timeouts.RetryInitialDelay))
}
