package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gmodtools/gmollama/pkg/llm"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func renderModels(models []llm.Model) string {
	if len(models) == 0 {
		return faintStyle.Render("no models installed") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-32s %-10s %s", "NAME", "SIZE", "MODIFIED")))
	sb.WriteString("\n")
	for _, m := range models {
		sb.WriteString(fmt.Sprintf("%-32s %-10s %s\n",
			nameStyle.Render(fmt.Sprintf("%-32s", m.Name)),
			humanSize(m.Size),
			faintStyle.Render(m.ModifiedAt),
		))
	}
	return sb.String()
}

func renderRunningModels(models []llm.RunningModel) string {
	if len(models) == 0 {
		return faintStyle.Render("no models loaded") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-32s %-10s %-10s %s", "NAME", "SIZE", "VRAM", "EXPIRES")))
	sb.WriteString("\n")
	for _, m := range models {
		expires := m.ExpiresAt
		if expires == "" {
			expires = "-"
		}
		vram := "-"
		if m.SizeVRAM > 0 {
			vram = humanSize(m.SizeVRAM)
		}
		sb.WriteString(fmt.Sprintf("%-32s %-10s %-10s %s\n",
			nameStyle.Render(fmt.Sprintf("%-32s", m.Name)),
			humanSize(m.Size),
			vram,
			faintStyle.Render(expires),
		))
	}
	return sb.String()
}

func renderDetails(d *llm.ModelDetails) string {
	var sb strings.Builder
	section := func(title, body string) {
		if body == "" {
			return
		}
		sb.WriteString(headerStyle.Render(title))
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}
	section("LICENSE", d.License)
	section("MODELFILE", d.Modelfile)
	section("PARAMETERS", d.Parameters)
	section("TEMPLATE", d.Template)
	if sb.Len() == 0 {
		return faintStyle.Render("no details reported") + "\n"
	}
	return sb.String()
}

func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
