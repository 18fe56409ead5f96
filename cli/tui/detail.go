package tui

import (
	"fmt"
	"strings"
)

// renderDetail renders the capability detail view.
func renderDetail(m *Model) string {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return subtleStyle.Render(" Nothing selected.\n")
	}
	c := m.filtered[m.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render(" " + c.Name))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  (%d/%d)", m.cursor+1, len(m.filtered))))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n\n")

	if c.Description != "" {
		b.WriteString(" " + c.Description)
		b.WriteString("\n\n")
	}

	if len(c.Processes) == 0 {
		b.WriteString(subtleStyle.Render(" No core processes recorded.\n"))
	}
	for _, p := range c.Processes {
		b.WriteString(processStyle.Render(" " + p.Name))
		b.WriteString("\n")
		for _, sp := range p.Subprocesses {
			b.WriteString(fmt.Sprintf("   - %s ", sp.Name))
			b.WriteString(phaseStyle.Render("[" + sp.LifecyclePhase + "]"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(" esc back  n next  p prev  q quit"))
	b.WriteString("\n")

	return b.String()
}
