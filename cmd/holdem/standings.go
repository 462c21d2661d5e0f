package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/soleohess/poker/internal/game"
	"github.com/soleohess/poker/internal/tournament"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)
	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// renderStandings formats a finished tournament as a table, winner first.
func renderStandings(standings []game.Standing, stats map[string]*tournament.PlayerStats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" ♠ ♥ Final Standings ♦ ♣ "))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-16s %8s %7s %6s %8s %7s",
		"Place", "Player", "Chips", "Hands", "Won", "Big Pot", "Faults")))
	b.WriteString("\n")

	for _, s := range standings {
		st := stats[s.ID]
		faults := st.Timeouts + st.Panics + st.IllegalActions
		row := fmt.Sprintf("%-5d %-16s %8d %7d %6d %8d %7d",
			s.Place, s.ID, s.Chips, st.HandsPlayed, st.HandsWon, st.BiggestPot, faults)
		switch {
		case s.Place == 1:
			row = winnerStyle.Render(row)
		case s.Chips == 0:
			row = faintStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// renderSeries formats aggregate results across a series, ordered by points.
func renderSeries(cfg *tournament.Config, result *tournament.SeriesResult) string {
	names := make([]string, 0, len(cfg.Bots))
	for _, b := range cfg.Bots {
		names = append(names, b.Name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return result.Points[names[i]] > result.Points[names[j]]
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" Series Results (%d tournaments) ", result.Tournaments)))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %6s %8s %8s", "Player", "Wins", "Points", "Podiums")))
	b.WriteString("\n")

	for i, name := range names {
		row := fmt.Sprintf("%-16s %6d %8d %8d",
			name, result.Wins[name], result.Points[name], result.Podiums[name])
		if i == 0 {
			row = winnerStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
