package render

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// PassStats describes a single cast pass over a frame region.
type PassStats struct {
	// Pass name, the mode cast.
	Name string
	Rect Rect

	// Number of primitives cast against.
	Primitives int

	// Hierarchy build time and shape. Zero without BVH.
	BVHBuild time.Duration
	BVHNodes int
	BVHDepth int
	// Sum of leaf box volumes.
	BVHVolume float32

	// Cast time for the pass region.
	CastTime time.Duration

	Tally
}

// FrameStats collects the passes of a frame render.
type FrameStats struct {
	Passes []PassStats

	// Total render time for entire frame.
	RenderTime time.Duration
}

// WriteTable writes the statistics as a text table.
func (s FrameStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Region", "Prims", "BVH nodes", "BVH volume", "BVH build", "Tests", "Hits", "Behind", "No crossing", "Off base", "Cast time"})
	for _, p := range s.Passes {
		table.Append([]string{
			p.Name,
			fmt.Sprintf("%dx%d+%d+%d", p.Rect.Width, p.Rect.Height, p.Rect.Left, p.Rect.Top),
			fmt.Sprintf("%d", p.Primitives),
			fmt.Sprintf("%d", p.BVHNodes),
			fmt.Sprintf("%.3g", p.BVHVolume),
			p.BVHBuild.String(),
			fmt.Sprintf("%d", p.Tests),
			fmt.Sprintf("%d", p.Hits),
			fmt.Sprintf("%d", p.BehindRay),
			fmt.Sprintf("%d", p.NoIntersections),
			fmt.Sprintf("%d", p.CantSubrayBase),
			p.CastTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "", "", "", "TOTAL", s.RenderTime.String()})
	table.Render()
}
