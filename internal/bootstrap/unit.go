package bootstrap

import (
	"bytes"
	"fmt"
	"text/template"
)

const unitTemplate = `[Unit]
Description=ZNC IRC bouncer
After=network-online.target
Wants=network-online.target

[Service]
User={{ .User }}
ExecStart=/usr/bin/znc --foreground --datadir=/home/{{ .User }}/.znc
Restart=on-failure
RestartSec=30

[Install]
WantedBy=multi-user.target
`

var unitTmpl = template.Must(template.New("unit").Parse(unitTemplate))

// RenderUnit returns the systemd unit definition for the bouncer running
// as the given user.
func RenderUnit(user string) (string, error) {
	var buf bytes.Buffer
	if err := unitTmpl.Execute(&buf, struct{ User string }{User: user}); err != nil {
		return "", fmt.Errorf("rendering unit: %w", err)
	}
	return buf.String(), nil
}
