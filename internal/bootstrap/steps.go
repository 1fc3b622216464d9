package bootstrap

import (
	"fmt"

	"github.com/imamik/zncdeploy/internal/util/retry"
)

// Steps returns the boot sequence in order. Each step tolerates or
// escalates its own failures; the runner only halts on Fatal.
func Steps() []Step {
	return []Step{
		{Name: "connectivity", Run: checkConnectivity},
		{Name: "user", Run: ensureUser},
		{Name: "apt-update", Run: refreshPackageIndex},
		{Name: "apt-install", Run: installPackage},
		{Name: "service-unit", Run: writeServiceUnit},
		{Name: "service-activation", Run: activateService},
	}
}

// checkConnectivity probes an external host to wait out slow network
// bring-up. Exhaustion is tolerated: the apt steps retry on their own.
func checkConnectivity(ctx *Context) (Outcome, error) {
	err := retry.Do(ctx, func() error {
		return ctx.Exec.Run(ctx, "ping", "-c", "1", "-W", "2", ctx.ProbeHost)
	}, retry.WithMaxAttempts(ctx.ProbeAttempts), retry.WithFixedDelay(ctx.RetryDelay))
	if err != nil {
		return Warn, fmt.Errorf("no route to %s: %w", ctx.ProbeHost, err)
	}
	return OK, nil
}

// ensureUser creates the service account if absent.
func ensureUser(ctx *Context) (Outcome, error) {
	if err := ctx.Exec.Run(ctx, "id", "-u", ctx.User); err == nil {
		ctx.Log.Printf("user %s already exists", ctx.User)
		return OK, nil
	}
	err := ctx.Exec.Run(ctx, "useradd", "--system", "--create-home", "--shell", "/usr/sbin/nologin", ctx.User)
	if err != nil {
		return Fatal, fmt.Errorf("creating user %s: %w", ctx.User, err)
	}
	return OK, nil
}

func refreshPackageIndex(ctx *Context) (Outcome, error) {
	err := retry.Do(ctx, func() error {
		return ctx.Exec.Run(ctx, "apt-get", "update")
	}, retry.WithMaxAttempts(ctx.IndexAttempts), retry.WithFixedDelay(ctx.RetryDelay))
	if err != nil {
		// The install step still runs against a possibly stale index.
		return Warn, err
	}
	return OK, nil
}

// installPackage installs ZNC with a bounded retry. Success is recorded
// so the activation step knows whether a start is worthwhile.
func installPackage(ctx *Context) (Outcome, error) {
	err := retry.Do(ctx, func() error {
		return ctx.Exec.Run(ctx, "apt-get", "install", "-y", ctx.Package)
	}, retry.WithMaxAttempts(ctx.InstallAttempts), retry.WithFixedDelay(ctx.RetryDelay))
	if err != nil {
		return Warn, fmt.Errorf("installing %s: %w", ctx.Package, err)
	}
	ctx.InstallOK = true
	return OK, nil
}

// writeServiceUnit writes the systemd unit. A failed write is logged and
// tolerated; activation will then fail to enable and report that too.
func writeServiceUnit(ctx *Context) (Outcome, error) {
	unit, err := RenderUnit(ctx.User)
	if err != nil {
		return Warn, err
	}
	if err := ctx.Exec.WriteFile(ctx.UnitPath, []byte(unit)); err != nil {
		return Warn, fmt.Errorf("writing %s: %w", ctx.UnitPath, err)
	}
	return OK, nil
}

// activateService reloads systemd and enables the unit so the service
// comes up on future boots. It starts the service now only if the
// install step succeeded; otherwise an operator can install manually and
// start afterwards.
func activateService(ctx *Context) (Outcome, error) {
	unit := ctx.UnitName()
	if err := ctx.Exec.Run(ctx, "systemctl", "daemon-reload"); err != nil {
		return Warn, err
	}
	if err := ctx.Exec.Run(ctx, "systemctl", "enable", unit); err != nil {
		return Warn, err
	}
	if !ctx.InstallOK {
		ctx.Log.Printf("package install did not succeed, skipping service start")
		return Warn, fmt.Errorf("%s not installed, service enabled but not started", ctx.Package)
	}
	if err := ctx.Exec.Run(ctx, "systemctl", "start", unit); err != nil {
		return Warn, err
	}
	return OK, nil
}
