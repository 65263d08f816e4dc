package drawer

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// DOTDrawer renders the step-order graph in DOT notation: one vertex
// per step labelled with its duration, edges following discovery order.
// Vertex colors follow a heat ramp from blue (fastest) to red
// (slowest), so the bottleneck chain stands out in the rendered graph.
type DOTDrawer struct{}

// NewDOTDrawer creates a new DOT drawer.
func NewDOTDrawer() *DOTDrawer {
	return &DOTDrawer{}
}

const maxRGB = 240

// Render writes the DOT graph for the result to w.
func (d *DOTDrawer) Render(result *model.Result, w io.Writer) error {
	g := graph.New(graph.StringHash, graph.Directed())

	minDur, maxDur := durationRange(result.Steps)

	for _, step := range result.Steps {
		heat, err := heatColor(step.Duration(), minDur, maxDur)
		if err != nil {
			return err
		}

		attrs := []func(*graph.VertexProperties){
			graph.VertexAttribute("xlabel", roundDuration(step.Duration()).String()),
			graph.VertexAttribute("color", heat),
		}
		if step.Bottleneck {
			attrs = append(attrs, graph.VertexAttribute("penwidth", "3"))
		}

		err = g.AddVertex(step.ID, attrs...)
		if err != nil {
			return errors.Wrapf(err, "unable to add vertex %s", step.ID)
		}
	}

	for idx := 1; idx < len(result.Steps); idx++ {
		parent, child := result.Steps[idx-1], result.Steps[idx]
		err := g.AddEdge(parent.ID, child.ID)
		if err != nil {
			return errors.Wrapf(err, "unable to add edge from %s to %s", parent.ID, child.ID)
		}
	}

	return dot(g, w)
}

func durationRange(steps []*model.Step) (time.Duration, time.Duration) {
	var minDur, maxDur time.Duration
	first := true
	for _, step := range steps {
		d := step.Duration()
		if first {
			minDur, maxDur = d, d
			first = false

			continue
		}
		if d < minDur {
			minDur = d
		}
		if d > maxDur {
			maxDur = d
		}
	}

	return minDur, maxDur
}

// heatColor maps a duration onto the red/blue ramp used for vertices.
func heatColor(d, minDur, maxDur time.Duration) (string, error) {
	fraction := 1.0
	if maxDur > minDur {
		fraction = float64(d-minDur) / float64(maxDur-minDur)
	}

	red := uint8(maxRGB * fraction)
	blue := uint8(maxRGB - maxRGB*fraction)

	heat, err := colors.RGB(red, 0, blue) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return heat.ToHEX().String(), nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           interface{}
	Target           interface{}
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot[K comparable, T any](g graph.Graph[K, T], wrt io.Writer) error {
	desc, err := generateDOT(g)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

func generateDOT[K comparable, T any](gra graph.Graph[K, T]) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for vertex, adjacencies := range adjacencyMap {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)

		if xlabel, ok := sourceProperties.Attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%+v <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceProperties.Attributes, "xlabel")
		}

		stmt := statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceProperties.Attributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		for adjacency, edge := range adjacencies {
			stmt := statement{
				Source:         vertex,
				Target:         adjacency,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var (
	_ Drawer = (*DOTDrawer)(nil)
	_ Drawer = (*SVGDrawer)(nil)
)
