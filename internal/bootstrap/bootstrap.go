// Package bootstrap implements the boot-time initialization of a bouncer
// instance: install the ZNC package, create its service account, write a
// systemd unit and activate it. The same step sequence can run in place
// (the bootstrap subcommand) or be rendered as a shell script for
// injection as startup-script instance metadata.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Outcome is the tri-state result of a step.
type Outcome int

const (
	// OK means the step completed.
	OK Outcome = iota
	// Warn means the step failed but later steps may still proceed.
	Warn
	// Fatal means the run must halt.
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Warn:
		return "warn"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Options configures the step sequence. Zero values are filled in by
// DefaultOptions.
type Options struct {
	// User is the unprivileged account ZNC runs as.
	User string
	// Package is the distribution package to install.
	Package string
	// UnitPath is where the systemd unit is written.
	UnitPath string
	// LogPath is the append-only progress log.
	LogPath string
	// ProbeHost is pinged by the connectivity check.
	ProbeHost string
	// ProbeAttempts bounds the connectivity check retries.
	ProbeAttempts int
	// IndexAttempts bounds the package index refresh retries.
	IndexAttempts int
	// InstallAttempts bounds the package install retries.
	InstallAttempts int
	// RetryDelay is the fixed delay between retry attempts.
	RetryDelay time.Duration
}

// DefaultOptions returns the standard step configuration.
func DefaultOptions() Options {
	return Options{
		User:            "znc",
		Package:         "znc",
		UnitPath:        "/etc/systemd/system/znc.service",
		LogPath:         "/var/log/znc-startup.log",
		ProbeHost:       "8.8.8.8",
		ProbeAttempts:   5,
		IndexAttempts:   3,
		InstallAttempts: 3,
		RetryDelay:      5 * time.Second,
	}
}

// fill replaces zero values with the defaults.
func (o Options) fill() Options {
	def := DefaultOptions()
	if o.User == "" {
		o.User = def.User
	}
	if o.Package == "" {
		o.Package = def.Package
	}
	if o.UnitPath == "" {
		o.UnitPath = def.UnitPath
	}
	if o.LogPath == "" {
		o.LogPath = def.LogPath
	}
	if o.ProbeHost == "" {
		o.ProbeHost = def.ProbeHost
	}
	if o.ProbeAttempts == 0 {
		o.ProbeAttempts = def.ProbeAttempts
	}
	if o.IndexAttempts == 0 {
		o.IndexAttempts = def.IndexAttempts
	}
	if o.InstallAttempts == 0 {
		o.InstallAttempts = def.InstallAttempts
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = def.RetryDelay
	}
	return o
}

// UnitName returns the systemd unit name derived from UnitPath, so
// enable and start always address the unit the sequence wrote.
func (o Options) UnitName() string {
	return strings.TrimSuffix(filepath.Base(o.UnitPath), ".service")
}

// Context carries the shared state of one bootstrap run.
type Context struct {
	context.Context
	Options
	Exec Exec
	Log  *Log

	// InstallOK records whether the package install step succeeded.
	// The activation step starts the service only when it did.
	InstallOK bool
}

// Step is one named state of the boot sequence.
type Step struct {
	Name string
	Run  func(*Context) (Outcome, error)
}

// Runner drives an ordered step list, halting only on a fatal outcome.
type Runner struct {
	steps []Step
}

// NewRunner returns a runner over the standard step sequence.
func NewRunner() *Runner {
	return &Runner{steps: Steps()}
}

// Run executes the steps in order. Warn outcomes are logged and the run
// continues; a fatal outcome stops the run and is returned as an error.
// No step undoes the work of an earlier one.
func (r *Runner) Run(ctx *Context) error {
	ctx.Options = ctx.Options.fill()
	for _, step := range r.steps {
		ctx.Log.Printf("step %s: started", step.Name)
		outcome, err := step.Run(ctx)
		switch outcome {
		case OK:
			ctx.Log.Printf("step %s: ok", step.Name)
		case Warn:
			ctx.Log.Printf("step %s: failed, continuing: %v", step.Name, err)
		case Fatal:
			ctx.Log.Printf("step %s: fatal: %v", step.Name, err)
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}
