package cli

import "github.com/charmbracelet/lipgloss"

// Paint palette
// Shared colours for consistent branding across CLI and TUI
var (
	// Core colours (cool to warm)
	PaintBlue  = lipgloss.Color("#1D6FF8") // Deep blue
	PaintTeal  = lipgloss.Color("#1DD8C8") // Teal
	PaintAmber = lipgloss.Color("#F8B31D") // Brand amber
	PaintCoral = lipgloss.Color("#F8731D") // Warm coral

	// Accent colours
	SlateGray = lipgloss.Color("#8A94A6") // Subtle text
)
