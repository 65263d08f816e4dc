package drawer

import (
	"io"

	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// Drawer is an interface that defines the methods for rendering a parsed
// build timeline.
type Drawer interface {
	// Render writes a visual artifact for the result to w.
	Render(result *model.Result, w io.Writer) error
}
