// Package handlers implements the execution logic behind the CLI
// commands. Collaborators are created through package-level factory
// variables so tests can substitute mocks.
package handlers

import (
	"context"

	"github.com/imamik/zncdeploy/internal/platform/gcp"
	"github.com/imamik/zncdeploy/internal/provisioning"
)

// Factory function variables - can be replaced in tests.
var (
	// newComputeClient creates the GCP client used by deploy and destroy.
	newComputeClient = func(ctx context.Context, project string) (gcp.ComputeManager, error) {
		return gcp.NewRealClient(ctx, project)
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext
)
