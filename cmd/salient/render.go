package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"salient/pkg/attention"
)

// Theme defines the visual styling for ranked output. Attention heat runs
// from Muted (lowest weight) to Hot (highest).
type Theme struct {
	Score lipgloss.Style
	Hot   lipgloss.Style
	Warm  lipgloss.Style
	Cool  lipgloss.Style
	Muted lipgloss.Style
}

// DefaultTheme returns the default theme for salient output.
func DefaultTheme() Theme {
	return Theme{
		Score: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true), // Blue
		Hot:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),             // Red
		Warm:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),            // Yellow
		Cool:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),            // Cyan
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),           // Gray
	}
}

// stdoutIsTTY reports whether stdout is an interactive terminal.
// Styled output is disabled for pipes and files.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// formatRanked renders ranked posts for CLI output: one numbered line per
// post with its score, then the attention heat line for its words.
func formatRanked(ranked []attention.RankedPost, th Theme, colored bool) string {
	if len(ranked) == 0 {
		return "No posts cleared the threshold.\n"
	}

	var b strings.Builder
	for i, rp := range ranked {
		score := fmt.Sprintf("[%+.3f]", rp.Score)
		if colored {
			score = th.Score.Render(score)
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, score, rp.Post)
		fmt.Fprintf(&b, "   %s\n", formatAttention(rp.Post, rp.Weights, th, colored))
	}
	return b.String()
}

// formatAttention zips the words of post with their attention weights.
// Weights are only meaningful when one lines up with each word; on a
// mismatch the weights are omitted rather than misattributed.
func formatAttention(post string, weights []float64, th Theme, colored bool) string {
	words := strings.Fields(post)
	if len(words) != len(weights) {
		return "(attention unavailable)"
	}

	maxW := weights[0]
	for _, w := range weights[1:] {
		if w > maxW {
			maxW = w
		}
	}

	parts := make([]string, len(words))
	for i, word := range words {
		cell := fmt.Sprintf("%s(%.3f)", word, weights[i])
		if colored {
			cell = heatStyle(weights[i], maxW, th).Render(cell)
		}
		parts[i] = cell
	}
	return strings.Join(parts, " ")
}

// heatStyle buckets a weight by its share of the maximum weight in the text.
func heatStyle(w, maxW float64, th Theme) lipgloss.Style {
	if maxW <= 0 {
		return th.Muted
	}
	switch share := w / maxW; {
	case share >= 0.9:
		return th.Hot
	case share >= 0.6:
		return th.Warm
	case share >= 0.3:
		return th.Cool
	default:
		return th.Muted
	}
}
