package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/wavepaint/internal/generator"
)

// Color palette
var (
	primaryColor   = PaintAmber
	successColor   = lipgloss.Color("#00AA00") // Green
	errorColor     = lipgloss.Color("#D0312D") // Red
	mutedColor     = lipgloss.Color("#888888") // Gray
	highlightColor = lipgloss.Color("#FFFF00") // Yellow
	textColor      = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	// Title style - bold amber
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Subtitle style - muted gray
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	// Verbose frame lines
	FrameStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// Title is the product name shown in banners and help
const Title = "wavepaint 🎨"

// Description is the one-line summary shown in banners and help
const Description = "Paint audio into images: one still, or a frame sequence driven by loudness."

// PrintBanner prints the application banner
func PrintBanner() {
	fmt.Println(TitleStyle.Render(Title))
	fmt.Println(SubtitleStyle.Render(Description))
	fmt.Println()
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render(Title))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", SuccessStyle.Render("✓"), message)
}

// PrintInfo prints an informational message
func PrintInfo(key, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// FormatFrame formats the verbose report line for one sequence frame
func FormatFrame(stats generator.FrameStats) string {
	return fmt.Sprintf("frame = %4d/%d, fps = %3d, last = %.4g ms, strategy = %s, est. time left = %3.3g s",
		stats.Frame,
		stats.MaxFrames,
		int(stats.FPS),
		float64(stats.Delta.Microseconds())/1000,
		stats.Strategy,
		stats.Remaining.Seconds())
}

// PrintFrame prints the verbose report line for one sequence frame
func PrintFrame(w io.Writer, stats generator.FrameStats) {
	fmt.Fprintln(w, FrameStyle.Render(FormatFrame(stats)))
}

// FormatCompleted formats the closing timing line of a run
func FormatCompleted(total time.Duration) string {
	return fmt.Sprintf("render completed in %g s", total.Seconds())
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
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

// PrintBox prints content in a styled box
func PrintBox(content string) {
	fmt.Println(BoxStyle.Render(content))
}

// PrintSummary prints the outcome of a run in a box
func PrintSummary(summary generator.Summary) {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("✓ Render Complete!"))
	b.WriteString("\n\n")

	output := summary.OutputPath
	if summary.Sequence {
		output += "####.png"
	}
	b.WriteString(KeyStyle.Render("Output:    "))
	b.WriteString(ValueStyle.Render(output))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Frames:    "))
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d", summary.Frames)))
	if summary.Sequence {
		b.WriteString(KeyStyle.Render(fmt.Sprintf(" (%s strategy)", summary.Strategy)))
	}
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Size:      "))
	b.WriteString(ValueStyle.Render(FormatBytes(summary.Bytes)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Rendering: "))
	b.WriteString(ValueStyle.Render(FormatDuration(summary.DrawTime)))
	b.WriteString("\n")

	b.WriteString(KeyStyle.Render("Encoding:  "))
	b.WriteString(ValueStyle.Render(FormatDuration(summary.WriteTime)))

	PrintBox(b.String())
}
