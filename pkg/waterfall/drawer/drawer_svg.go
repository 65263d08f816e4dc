package drawer

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// categoryColors keys the bar fill by command category.
var categoryColors = map[model.Category]string{
	model.CategoryFrom:   "#9370DB",
	model.CategoryRun:    "#4169E1",
	model.CategoryCopy:   "#FF8C00",
	model.CategoryCached: "#90EE90",
	model.CategoryOther:  "#808080",
}

const bottleneckColor = "#DC143C"

const (
	chartWidth  = 1200
	rowHeight   = 28
	barPadding  = 4
	chartMargin = 20
	// minBarWidth keeps zero-duration (cached) steps visible.
	minBarWidth = 3
)

// SVGDrawer renders the timeline as a Gantt chart: one horizontal bar
// per step at (row, start, end), with a tooltip carrying the label,
// command, duration and cache flag.
type SVGDrawer struct{}

// NewSVGDrawer creates a new SVG drawer.
func NewSVGDrawer() *SVGDrawer {
	return &SVGDrawer{}
}

type svgBar struct {
	X, Y, Width, Height float64
	Fill                string
	Tooltip             string
}

type svgLegendItem struct {
	X     float64
	Name  string
	Color string
}

type svgChart struct {
	Width, Height int
	Summary       string
	Bars          []svgBar
	Legend        []svgLegendItem
}

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<rect width="{{.Width}}" height="{{.Height}}" fill="white"/>
<text x="20" y="18" font-family="sans-serif" font-size="13">{{.Summary}}</text>
{{- range .Bars}}
<rect x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" width="{{printf "%.2f" .Width}}" height="{{printf "%.2f" .Height}}" fill="{{.Fill}}" stroke="#333" stroke-width="0.5"><title>{{.Tooltip}}</title></rect>
{{- end}}
{{- range .Legend}}
<rect x="{{printf "%.2f" .X}}" y="{{$.Height}}" width="10" height="10" fill="{{.Color}}" transform="translate(0,-16)"/>
<text x="{{printf "%.2f" .X}}" y="{{$.Height}}" font-family="sans-serif" font-size="11" transform="translate(14,-7)">{{.Name}}</text>
{{- end}}
</svg>
`

// Render writes the Gantt chart for the result to w.
func (d *SVGDrawer) Render(result *model.Result, w io.Writer) error {
	chart, err := d.layout(result)
	if err != nil {
		return errors.Wrap(err, "unable to lay out chart")
	}

	tpl, err := template.New("svgTemplate").Parse(svgTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(w, chart)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

func (d *SVGDrawer) layout(result *model.Result) (*svgChart, error) {
	span := result.TotalDuration
	if span <= 0 {
		span = time.Second
	}

	origin := time.Duration(0)
	for idx, step := range result.Steps {
		if idx == 0 || step.Start < origin {
			origin = step.Start
		}
	}

	chart := &svgChart{
		Width:  chartWidth + 2*chartMargin,
		Height: 40 + result.Rows()*rowHeight + 30,
		Summary: fmt.Sprintf("%d steps, %d cached, total %s (%s timing)",
			result.TotalSteps, result.CachedCount, roundDuration(result.TotalDuration), result.Precision),
	}

	scale := float64(chartWidth) / float64(span)
	for _, step := range result.Steps {
		fill, err := barColor(step)
		if err != nil {
			return nil, err
		}

		width := float64(step.Duration()) * scale
		if width < minBarWidth {
			width = minBarWidth
		}

		chart.Bars = append(chart.Bars, svgBar{
			X:      chartMargin + float64(step.Start-origin)*scale,
			Y:      float64(40 + step.Row*rowHeight),
			Width:  width,
			Height: rowHeight - barPadding,
			Fill:   fill,
			Tooltip: fmt.Sprintf("%s %s\n%s\nduration: %s, cached: %t",
				step.ID, step.Label, step.Command, roundDuration(step.Duration()), step.Cached),
		})
	}

	x := float64(chartMargin)
	for _, item := range []struct {
		name  string
		color string
	}{
		{"cached", categoryColors[model.CategoryCached]},
		{"run", categoryColors[model.CategoryRun]},
		{"bottleneck", bottleneckColor},
	} {
		chart.Legend = append(chart.Legend, svgLegendItem{X: x, Name: item.name, Color: item.color})
		x += 90
	}

	return chart, nil
}

// barColor resolves the fill for a step. Bottleneck wins over category;
// cached is already folded into the category. The hex values go through
// the colors package so a bad palette entry fails loudly.
func barColor(step *model.Step) (string, error) {
	hex := categoryColors[step.Category]
	if step.Bottleneck {
		hex = bottleneckColor
	}
	if hex == "" {
		hex = categoryColors[model.CategoryOther]
	}

	parsed, err := colors.ParseHEX(hex)
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return parsed.String(), nil
}

func roundDuration(d time.Duration) time.Duration {
	switch {
	case d > time.Minute:
		d = d.Round(time.Second)
	case d > time.Second:
		d = d.Round(10 * time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
