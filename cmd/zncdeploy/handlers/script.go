package handlers

import (
	"io"

	"github.com/imamik/zncdeploy/internal/bootstrap"
	"github.com/imamik/zncdeploy/internal/config"
)

// Script handles the script command. It writes the rendered first-boot
// startup script to w, exactly as deploy injects it as instance metadata.
func Script(w io.Writer, cfg *config.Config) error {
	script, err := bootstrap.Script(cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, script)
	return err
}
