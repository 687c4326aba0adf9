package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// WorkerStats describes the work done by a single render goroutine
type WorkerStats struct {
	Worker     int
	Rows       RowRange
	RenderTime time.Duration
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	ID              string // unique per render
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	RenderTime      time.Duration
	Workers         []WorkerStats
}

// TotalSamples returns the number of camera rays traced
func (s RenderStats) TotalSamples() int {
	return s.Width * s.Height * s.SamplesPerPixel
}

// FramePercent returns the share of image rows a worker rendered
func (s RenderStats) FramePercent(w WorkerStats) float64 {
	if s.Height == 0 {
		return 0
	}
	return 100 * float64(w.Rows.Len()) / float64(s.Height)
}

// WriteTable renders the per-worker statistics as a text table
func (s RenderStats) WriteTable(out io.Writer) {
	table := tablewriter.NewWriter(out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Block height", "% of frame", "Render time"})
	for _, stat := range s.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Worker),
			fmt.Sprintf("%d-%d", stat.Rows.Start, stat.Rows.End-1),
			fmt.Sprintf("%d", stat.Rows.Len()),
			fmt.Sprintf("%02.1f %%", s.FramePercent(stat)),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", s.RenderTime.String()})

	table.Render()
}
