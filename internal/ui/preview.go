package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds configuration for the frame preview
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells
}

// DefaultPreviewConfig returns a preview sized for square frames.
// Terminal cells are roughly twice as tall as they are wide.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  40,
		Height: 20,
	}
}

// FitPreview shrinks config so that no cell covers less than one source
// pixel
func FitPreview(config PreviewConfig, width, height int) PreviewConfig {
	return PreviewConfig{
		Width:  max(1, min(config.Width, width)),
		Height: max(1, min(config.Height, height)),
	}
}

// DownsampleFrame averages each rectangular region of frame into one
// preview cell. Alpha is ignored.
func DownsampleFrame(frame *image.RGBA, config PreviewConfig) [][]color.RGBA {
	bounds := frame.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	config = FitPreview(config, srcWidth, srcHeight)

	preview := make([][]color.RGBA, config.Height)
	for row := 0; row < config.Height; row++ {
		preview[row] = make([]color.RGBA, config.Width)
		y0 := row * srcHeight / config.Height
		y1 := (row + 1) * srcHeight / config.Height

		for col := 0; col < config.Width; col++ {
			x0 := col * srcWidth / config.Width
			x1 := (col + 1) * srcWidth / config.Width

			var sumR, sumG, sumB uint32
			pixelCount := uint32(0)

			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					o := frame.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
					sumR += uint32(frame.Pix[o])
					sumG += uint32(frame.Pix[o+1])
					sumB += uint32(frame.Pix[o+2])
					pixelCount++
				}
			}

			if pixelCount > 0 {
				preview[row][col] = color.RGBA{
					R: uint8(sumR / pixelCount),
					G: uint8(sumG / pixelCount),
					B: uint8(sumB / pixelCount),
					A: 255,
				}
			}
		}
	}

	return preview
}

// RenderPreview converts a preview grid to a string using ANSI 24-bit
// background colours, one space per cell
func RenderPreview(preview [][]color.RGBA) string {
	if len(preview) == 0 {
		return ""
	}

	var result strings.Builder

	result.WriteString("  Frame Preview:\n")
	result.WriteString("  ┌" + strings.Repeat("─", len(preview[0])) + "┐\n")

	for _, row := range preview {
		result.WriteString("  │")
		for _, pixel := range row {
			// \x1b[48;2;R;G;Bm sets a 24-bit background colour
			fmt.Fprintf(&result, "\x1b[48;2;%d;%d;%dm \x1b[0m", pixel.R, pixel.G, pixel.B)
		}
		result.WriteString("│\n")
	}

	result.WriteString("  └" + strings.Repeat("─", len(preview[0])) + "┘\n")

	return result.String()
}
