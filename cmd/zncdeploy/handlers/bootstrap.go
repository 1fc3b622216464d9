package handlers

import (
	"context"

	"github.com/imamik/zncdeploy/internal/bootstrap"
	"github.com/imamik/zncdeploy/internal/config"
)

// Factory function variables for bootstrap - can be replaced in tests.
var (
	newBootLog  = bootstrap.OpenLog
	newBootExec = func(l *bootstrap.Log) bootstrap.Exec {
		return &bootstrap.SystemExec{Log: l}
	}
)

// Bootstrap handles the bootstrap command.
//
// It runs the first-boot step sequence in place on the local machine,
// appending progress to the configured boot log. Intended to run as
// root on the target instance.
func Bootstrap(ctx context.Context, cfg *config.Config) error {
	opts := bootstrap.OptionsFromConfig(cfg)

	bootLog, err := newBootLog(opts.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = bootLog.Close() }()

	bCtx := &bootstrap.Context{
		Context: ctx,
		Options: opts,
		Exec:    newBootExec(bootLog),
		Log:     bootLog,
	}
	return bootstrap.NewRunner().Run(bCtx)
}
