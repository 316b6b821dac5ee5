package ui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/wavepaint/internal/generator"
)

// historySize is the number of frame amplitudes kept for the meter
const historySize = 48

// FrameProgress is sent after each sequence frame is written
type FrameProgress struct {
	Stats   generator.FrameStats
	Preview [][]color.RGBA // Downsampled frame; nil when not refreshed
}

// RenderWarning carries a non-fatal problem to display
type RenderWarning struct {
	Err error
}

// RenderComplete signals the end of the run
type RenderComplete struct {
	Summary generator.Summary
}

// RenderFailed signals that the run stopped with an error
type RenderFailed struct {
	Err error
}

// quitTimerMsg is sent when it's time to quit after showing completion
type quitTimerMsg struct{}

// renderModel implements the Bubbletea model for sequence rendering
type renderModel struct {
	progress        progress.Model
	lastUpdate      generator.FrameStats
	amplitudes      []float64
	warnings        []string
	complete        *generator.Summary
	failed          error
	startTime       time.Time
	width           int
	minDisplayTime  time.Duration // Minimum time to show UI
	completionDelay time.Duration // Time to show completion screen
	cachedPreview   string        // Cached rendered preview string
	noPreview       bool
}

// NewRenderModel creates the progress model for a sequence run
func NewRenderModel(noPreview bool) tea.Model {
	p := progress.New(
		progress.WithGradient("#1D6FF8", "#F8B31D"),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &renderModel{
		progress:        p,
		startTime:       time.Now(),
		minDisplayTime:  500 * time.Millisecond,
		completionDelay: 1500 * time.Millisecond,
		noPreview:       noPreview,
	}
}

// Init initializes the model
func (m *renderModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *renderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case FrameProgress:
		m.lastUpdate = msg.Stats
		m.amplitudes = append(m.amplitudes, msg.Stats.Amplitude)
		if len(m.amplitudes) > historySize {
			m.amplitudes = m.amplitudes[len(m.amplitudes)-historySize:]
		}
		if msg.Preview != nil && !m.noPreview {
			m.cachedPreview = RenderPreview(msg.Preview)
		}
		return m, nil

	case RenderWarning:
		m.warnings = append(m.warnings, msg.Err.Error())
		return m, nil

	case RenderComplete:
		m.complete = &msg.Summary

		delay := m.completionDelay
		if elapsed := time.Since(m.startTime); elapsed < m.minDisplayTime {
			delay += m.minDisplayTime - elapsed
		}
		return m, tea.Tick(delay, func(time.Time) tea.Msg {
			return quitTimerMsg{}
		})

	case RenderFailed:
		m.failed = msg.Err
		return m, tea.Quit

	case quitTimerMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		// Any key skips the completion screen
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *renderModel) View() string {
	if m.failed != nil {
		return ""
	}
	if m.complete != nil {
		return m.renderComplete()
	}
	return m.renderProgress()
}

func (m *renderModel) renderProgress() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F8B31D")).
		Render("wavepaint")

	subtitle := lipgloss.NewStyle().
		Faint(true).
		Render(fmt.Sprintf("Rendering sequence: %s strategy", m.lastUpdate.Strategy))

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(subtitle)
	s.WriteString("\n\n")

	if m.lastUpdate.Count > 0 {
		percent := float64(m.lastUpdate.Completed) / float64(m.lastUpdate.Count)

		s.WriteString("Progress: ")
		s.WriteString(m.progress.ViewAs(percent))
		s.WriteString(fmt.Sprintf("  %d%%", int(percent*100)))
		s.WriteString("\n\n")

		elapsed := m.lastUpdate.Total
		timingInfo := fmt.Sprintf("Time: %s  │  %d fps  │  Last: %s  │  ETA: %s",
			formatDuration(elapsed),
			int(m.lastUpdate.FPS),
			formatDuration(m.lastUpdate.Delta),
			formatDuration(m.lastUpdate.Remaining))
		s.WriteString(lipgloss.NewStyle().Faint(true).Render(timingInfo))
		s.WriteString("\n")

		phase := fmt.Sprintf("Frame %d of %d", m.lastUpdate.Frame, m.lastUpdate.MaxFrames)
		s.WriteString(lipgloss.NewStyle().Faint(true).Italic(true).Render(phase))
		s.WriteString("\n\n")
	}

	if len(m.amplitudes) > 0 {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Amplitude:"))
		s.WriteString("\n")
		s.WriteString(renderAmplitudes(m.amplitudes))
		s.WriteString("\n")
	}

	if m.cachedPreview != "" {
		s.WriteString("\n")
		s.WriteString(m.cachedPreview)
	}

	for _, w := range m.warnings {
		s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⚠ " + w))
		s.WriteString("\n")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F8B31D")).
		Padding(1, 2).
		Render(s.String())
}

func (m *renderModel) renderComplete() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4A9B4A")).
		Render("✓ Render Complete!")

	s.WriteString(title)
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("Output:   %s####.png\n", m.complete.OutputPath))
	s.WriteString(fmt.Sprintf("Frames:   %d (%s strategy)\n", m.complete.Frames, m.complete.Strategy))
	s.WriteString(fmt.Sprintf("Size:     %s\n\n", formatBytes(m.complete.Bytes)))

	s.WriteString(lipgloss.NewStyle().Faint(true).Render("Performance Breakdown:"))
	s.WriteString("\n")

	totalMs := m.complete.Total.Milliseconds()
	if totalMs == 0 {
		totalMs = 1
	}

	breakdown := []struct {
		label string
		d     time.Duration
	}{
		{"Rendering:", m.complete.DrawTime},
		{"PNG encoding:", m.complete.WriteTime},
		{"Other:", m.complete.Total - m.complete.DrawTime - m.complete.WriteTime},
	}
	for _, b := range breakdown {
		if b.d <= 0 {
			continue
		}
		ratio := float64(b.d.Milliseconds()) / float64(totalMs)
		s.WriteString(fmt.Sprintf("  %-16s%-7s (%2d%%)  %s\n",
			b.label, formatDuration(b.d), int(ratio*100), makeSparkline(ratio, 30)))
	}

	s.WriteString(fmt.Sprintf("  %-16s%s\n", "Total time:", formatDuration(m.complete.Total)))
	if m.complete.Frames > 0 && m.complete.Total > 0 {
		s.WriteString(fmt.Sprintf("  %-16s%.1f fps average", "Throughput:",
			float64(m.complete.Frames)/m.complete.Total.Seconds()))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4A9B4A")).
		Padding(1, 1).
		Render(s.String()) + "\n"
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

func makeSparkline(ratio float64, width int) string {
	filled := max(0, min(int(ratio*float64(width)), width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// renderAmplitudes draws recent frame amplitudes as a one row meter.
// Amplitude is already in [0, 1] so no normalisation is applied.
func renderAmplitudes(amplitudes []float64) string {
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	colors := []lipgloss.Color{
		lipgloss.Color("#1D3FF8"),
		lipgloss.Color("#1D6FF8"),
		lipgloss.Color("#1DA5F8"),
		lipgloss.Color("#1DD8C8"),
		lipgloss.Color("#8ED81D"),
		lipgloss.Color("#D8C81D"),
		lipgloss.Color("#F8B31D"),
		lipgloss.Color("#F8731D"),
	}

	var result strings.Builder
	for _, a := range amplitudes {
		level := max(0, min(a, 1))
		idx := min(int(level*float64(len(blocks))), len(blocks)-1)
		result.WriteString(lipgloss.NewStyle().
			Foreground(colors[idx]).
			Render(string(blocks[idx])))
	}
	return result.String()
}
