package tui

import (
	"fmt"
	"strings"

	"github.com/capmap-hq/capmap/core/capability"
)

// renderList renders the capability list view.
func renderList(m *Model) string {
	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf(" capmap — %d capabilities", len(m.filtered)))
	if len(m.capabilities) != len(m.filtered) {
		title += subtleStyle.Render(fmt.Sprintf(" (of %d total)", len(m.capabilities)))
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	if m.search != "" {
		b.WriteString(subtleStyle.Render(" Search: ") + "[" + m.search + "]")
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(subtleStyle.Render("  No capabilities match the current search.\n"))
	}
	for i, c := range m.filtered {
		b.WriteString(renderCapabilityLine(c, i == m.cursor))
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString("\n Search: " + m.search + "█\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" ↑↓ navigate  enter detail  / search  q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderCapabilityLine renders one list row.
func renderCapabilityLine(c *capability.Capability, selected bool) string {
	subprocesses := 0
	for _, p := range c.Processes {
		subprocesses += len(p.Subprocesses)
	}
	line := fmt.Sprintf(" %-45s %s", c.Name,
		subtleStyle.Render(fmt.Sprintf("%d processes / %d subprocesses", len(c.Processes), subprocesses)))

	if selected {
		return selectedStyle.Render("▸") + line
	}
	return " " + line
}
