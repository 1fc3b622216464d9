package bootstrap

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/imamik/zncdeploy/internal/config"
)

// scriptTemplate is the shell rendering of the step sequence. It mirrors
// the Go steps exactly: same order, same retry bounds, same log path and
// the same conditional service start.
const scriptTemplate = `#!/bin/bash
# ZNC bouncer first-boot initialization. Appends progress to {{ .LogPath }}.

LOG_FILE="{{ .LogPath }}"
INSTALL_OK=0

log() {
    echo "$(date '+%Y-%m-%d %H:%M:%S') $*" >> "$LOG_FILE"
}

log "step connectivity: started"
CONNECTED=0
for attempt in $(seq 1 {{ .ProbeAttempts }}); do
    if ping -c 1 -W 2 {{ .ProbeHost }} >> "$LOG_FILE" 2>&1; then
        CONNECTED=1
        break
    fi
    log "step connectivity: attempt $attempt failed, retrying in {{ .RetryDelay }}s"
    sleep {{ .RetryDelay }}
done
if [ "$CONNECTED" -eq 1 ]; then
    log "step connectivity: ok"
else
    log "step connectivity: failed, continuing"
fi

log "step user: started"
if id -u {{ .User }} >/dev/null 2>&1; then
    log "user {{ .User }} already exists"
    log "step user: ok"
elif useradd --system --create-home --shell /usr/sbin/nologin {{ .User }} >> "$LOG_FILE" 2>&1; then
    log "step user: ok"
else
    log "step user: fatal: creating user {{ .User }} failed"
    exit 1
fi

log "step apt-update: started"
UPDATED=0
for attempt in $(seq 1 {{ .IndexAttempts }}); do
    if apt-get update >> "$LOG_FILE" 2>&1; then
        UPDATED=1
        break
    fi
    log "step apt-update: attempt $attempt failed, retrying in {{ .RetryDelay }}s"
    sleep {{ .RetryDelay }}
done
if [ "$UPDATED" -eq 1 ]; then
    log "step apt-update: ok"
else
    log "step apt-update: failed, continuing"
fi

log "step apt-install: started"
for attempt in $(seq 1 {{ .InstallAttempts }}); do
    if apt-get install -y {{ .Package }} >> "$LOG_FILE" 2>&1; then
        INSTALL_OK=1
        break
    fi
    log "step apt-install: attempt $attempt failed, retrying in {{ .RetryDelay }}s"
    sleep {{ .RetryDelay }}
done
if [ "$INSTALL_OK" -eq 1 ]; then
    log "step apt-install: ok"
else
    log "step apt-install: failed, continuing"
fi

log "step service-unit: started"
cat > {{ .UnitPath }} <<'UNIT'
{{ .Unit }}UNIT
if [ $? -eq 0 ]; then
    log "step service-unit: ok"
else
    log "step service-unit: failed, continuing"
fi

log "step service-activation: started"
systemctl daemon-reload >> "$LOG_FILE" 2>&1
systemctl enable {{ .UnitName }} >> "$LOG_FILE" 2>&1
if [ "$INSTALL_OK" -eq 1 ]; then
    systemctl start {{ .UnitName }} >> "$LOG_FILE" 2>&1
    log "step service-activation: ok"
else
    log "package install did not succeed, service enabled but not started"
fi

log "boot initialization finished"
`

var scriptTmpl = template.Must(template.New("startup").Parse(scriptTemplate))

type scriptData struct {
	User            string
	Package         string
	UnitPath        string
	UnitName        string
	LogPath         string
	ProbeHost       string
	ProbeAttempts   int
	IndexAttempts   int
	InstallAttempts int
	RetryDelay      int
	Unit            string
}

// Script renders the startup script for the descriptor. The result is
// injected as startup-script instance metadata by deploy and printed by
// the script subcommand.
func Script(cfg *config.Config) (string, error) {
	opts := OptionsFromConfig(cfg)

	unit, err := RenderUnit(opts.User)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = scriptTmpl.Execute(&buf, scriptData{
		User:            opts.User,
		Package:         opts.Package,
		UnitPath:        opts.UnitPath,
		UnitName:        opts.UnitName(),
		LogPath:         opts.LogPath,
		ProbeHost:       opts.ProbeHost,
		ProbeAttempts:   opts.ProbeAttempts,
		IndexAttempts:   opts.IndexAttempts,
		InstallAttempts: opts.InstallAttempts,
		RetryDelay:      int(opts.RetryDelay.Seconds()),
		Unit:            unit,
	})
	if err != nil {
		return "", fmt.Errorf("rendering startup script: %w", err)
	}
	return buf.String(), nil
}

// OptionsFromConfig applies the descriptor's bootstrap knobs on top of
// the defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg.ZNCUser != "" {
		opts.User = cfg.ZNCUser
	}
	if cfg.BootLogPath != "" {
		opts.LogPath = cfg.BootLogPath
	}
	return opts
}
