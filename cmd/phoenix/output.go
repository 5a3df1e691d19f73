package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ckotwn/phoenix-move-windows/internal/ipc"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// formatTopology renders per-screen space counts, e.g. "3+3+1" for
// three screens with 3, 3 and 1 spaces.
func formatTopology(spaces []int) string {
	if len(spaces) == 0 {
		return "none"
	}
	parts := make([]string, len(spaces))
	for i, n := range spaces {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "+")
}

func printApply(data *ipc.ApplyData) {
	if data.Aborted {
		fmt.Println(warnStyle.Render("aborted") + ": no arrangement matches topology " + formatTopology(data.Topology))
		return
	}
	fmt.Printf("%s %s\n", labelStyle.Render("arrangement:"), data.Arrangement)
	fmt.Printf("%s %s\n", labelStyle.Render("topology:   "), formatTopology(data.Topology))
	fmt.Printf("%s %d moved, %d skipped, %d untouched of %d windows\n",
		labelStyle.Render("result:     "),
		data.Changed, data.Skipped, data.Total-data.Changed-data.Skipped-data.Errors, data.Total)
	if data.Errors > 0 {
		fmt.Printf("%s %d windows failed\n", errStyle.Render("errors:     "), data.Errors)
	}
}

func printStatus(status *ipc.StatusData) {
	fmt.Println(headerStyle.Render("phoenix daemon"))
	fmt.Printf("%s %s\n", labelStyle.Render("running:    "), okStyle.Render("yes"))
	fmt.Printf("%s %ds\n", labelStyle.Render("uptime:     "), status.UptimeSeconds)
	fmt.Printf("%s %s\n", labelStyle.Render("topology:   "), formatTopology(status.Topology))
	fmt.Printf("%s %s\n", labelStyle.Render("arrangement:"), status.Arrangement)
	if status.LastPass != nil {
		fmt.Println(headerStyle.Render("last pass"))
		printApply(status.LastPass)
	}
}

func printTopology(data *ipc.TopologyData) {
	fmt.Printf("%s %s\n", labelStyle.Render("topology:"), formatTopology(data.ScreenSpaces))
	for _, s := range data.Screens {
		fmt.Printf("  %s %s %dx%d at %d,%d (%d spaces)\n",
			labelStyle.Render(fmt.Sprintf("screen %d:", s.Index)),
			s.Name, s.Width, s.Height, s.X, s.Y, s.Spaces)
	}
}

func printArrangements(data *ipc.ArrangementsData) {
	for _, a := range data.Arrangements {
		name := a.Name
		if a.Active {
			name = activeStyle.Render(name) + " (active)"
		}
		fmt.Printf("%s\n", name)
		fmt.Printf("  %s %s\n", labelStyle.Render("topology:"), formatTopology(a.ScreenSpaces))
		suffix := ""
		if a.HasDefault {
			suffix = " (incl. catch-all)"
		}
		fmt.Printf("  %s %d%s\n", labelStyle.Render("bindings:"), a.Bindings, suffix)
	}
}
