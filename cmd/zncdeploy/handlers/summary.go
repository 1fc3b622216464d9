package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/zncdeploy/internal/config"
	"github.com/imamik/zncdeploy/internal/provisioning"
	"github.com/imamik/zncdeploy/internal/provisioning/destroy"
)

var (
	summaryColorGreen = lipgloss.Color("#22c55e")
	summaryColorRed   = lipgloss.Color("#ef4444")
	summaryColorBlue  = lipgloss.Color("#3b82f6")
	summaryColorDim   = lipgloss.Color("#6b7280")
	summaryColorWhite = lipgloss.Color("#f9fafb")
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorWhite)

	summarySectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorBlue)

	summaryDimStyle = lipgloss.NewStyle().
			Foreground(summaryColorDim)

	summaryGreenStyle = lipgloss.NewStyle().
				Foreground(summaryColorGreen)

	summaryRedStyle = lipgloss.NewStyle().
			Foreground(summaryColorRed)
)

// renderDeploySummary produces the styled post-deploy report.
func renderDeploySummary(cfg *config.Config, state *provisioning.State) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render(fmt.Sprintf("  zncdeploy: %s", cfg.InstanceName)))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(summarySectionStyle.Render("  Instance"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    %-14s %s\n", "name", cfg.InstanceName)
	fmt.Fprintf(&b, "    %-14s %s\n", "zone", cfg.Zone)
	fmt.Fprintf(&b, "    %-14s %s\n", "machine type", cfg.MachineType)

	ipMode := "ephemeral"
	if cfg.StaticIPName != "" {
		ipMode = fmt.Sprintf("static (%s)", cfg.StaticIPName)
	}
	ip := state.InstanceIP
	if ip == "" {
		ip = "pending"
	}
	fmt.Fprintf(&b, "    %-14s %s %s\n", "external IP", summaryGreenStyle.Render(ip), summaryDimStyle.Render(ipMode))
	if state.AttachErr != nil {
		b.WriteString(summaryRedStyle.Render(fmt.Sprintf("    static address attach failed: %v", state.AttachErr)))
		b.WriteString("\n")
		b.WriteString("    The instance keeps its current address; re-run deploy to retry the attach.\n")
	}

	b.WriteString("\n")
	b.WriteString(summarySectionStyle.Render("  Firewall"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    %-14s %s\n", "rule", cfg.FirewallRuleName)
	fmt.Fprintf(&b, "    %-14s tcp/%d to tag %s\n", "allows", cfg.ZNCPort, cfg.NetworkTag)

	b.WriteString("\n")
	b.WriteString(summarySectionStyle.Render("  Next steps"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    ZNC is being installed at first boot; progress log: %s\n", cfg.BootLogPath)
	if state.InstanceIP != "" {
		fmt.Fprintf(&b, "    Configure ZNC, then connect your IRC client to %s:%d\n", state.InstanceIP, cfg.ZNCPort)
	}
	b.WriteString("\n")

	return b.String()
}

// renderDestroyPlan lists the resources destroy is about to target.
func renderDestroyPlan(cfg *config.Config) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render("  Resources to delete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    instance   %s (zone %s)\n", cfg.InstanceName, cfg.Zone)
	if cfg.StaticIPName != "" {
		fmt.Fprintf(&b, "    address    %s (region %s)\n", cfg.StaticIPName, cfg.RegionForAddress())
	} else {
		b.WriteString(summaryDimStyle.Render("    address    none configured, skipped"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "    firewall   %s\n", cfg.FirewallRuleName)
	b.WriteString("\n")

	return b.String()
}

// renderDestroySummary reports the per-resource outcomes of a destroy run.
func renderDestroySummary(results []destroy.Result) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render("  Destroy results"))
	b.WriteString("\n")
	for _, r := range results {
		status := summaryGreenStyle.Render(r.Status)
		switch r.Status {
		case destroy.StatusFailed:
			status = summaryRedStyle.Render(r.Status)
		case destroy.StatusSkipped:
			status = summaryDimStyle.Render(r.Status)
		}
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&b, "    %-10s %-24s %s\n", r.Kind, name, status)
		if r.Err != nil {
			b.WriteString(summaryRedStyle.Render(fmt.Sprintf("               %v", r.Err)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	return b.String()
}
