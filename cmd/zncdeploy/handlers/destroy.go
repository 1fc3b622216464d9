package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/imamik/zncdeploy/internal/config"
	"github.com/imamik/zncdeploy/internal/provisioning"
	"github.com/imamik/zncdeploy/internal/provisioning/destroy"
)

// Destroyer interface for testing - matches destroy.Destroyer.
type Destroyer interface {
	Run(ctx *provisioning.Context) ([]destroy.Result, error)
}

// Factory function variables for destroy - can be replaced in tests.
var (
	newDestroyer = func() Destroyer {
		return destroy.NewDestroyer()
	}

	// stdinIsTerminal reports whether a confirmation prompt can be shown.
	stdinIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// confirmDestroy prompts the operator before deletion.
	confirmDestroy = func(ctx context.Context, title string) (bool, error) {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(title).
					Description("This operation is irreversible.").
					Value(&confirmed),
			),
		)
		if err := form.RunWithContext(ctx); err != nil {
			return false, err
		}
		return confirmed, nil
	}
)

// Destroy handles the destroy command.
//
// It lists the resources the descriptor names, asks for confirmation
// unless yes is set, then deletes them best effort: the instance first,
// then the static address (when one is named) and the firewall rule.
// Missing resources count as already deleted.
func Destroy(ctx context.Context, cfg *config.Config, yes bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Print(renderDestroyPlan(cfg))

	if !yes {
		if !stdinIsTerminal() {
			return fmt.Errorf("stdin is not a terminal; re-run with --yes to skip confirmation")
		}
		confirmed, err := confirmDestroy(ctx, fmt.Sprintf("Delete the resources of %s?", cfg.InstanceName))
		if err != nil {
			return fmt.Errorf("confirmation prompt: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	log.Printf("Destroying ZNC bouncer %s in project %s", cfg.InstanceName, cfg.ProjectID)

	client, err := newComputeClient(ctx, cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("creating compute client: %w", err)
	}

	pCtx := newProvisioningContext(ctx, cfg, client)

	results, runErr := newDestroyer().Run(pCtx)
	fmt.Print(renderDestroySummary(results))

	if runErr != nil {
		return fmt.Errorf("destroy incomplete: %w", runErr)
	}
	return nil
}
