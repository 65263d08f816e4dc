package waterfall

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-buildwaterfall/internal/logline"
	"github.com/askiada/go-buildwaterfall/pkg/waterfall/model"
)

// Option configures a parse.
type Option func(p *parser)

// WithDialect pre-declares the log dialect, skipping detection.
func WithDialect(dialect model.Dialect) Option {
	return func(p *parser) {
		p.dialect = dialect
	}
}

type parser struct {
	dialect model.Dialect
}

// Parse runs the whole pipeline over raw log content: dialect
// detection, step extraction, timing reconciliation, timeline assembly,
// row layout, and bottleneck detection.
//
// It returns ErrUnrecognizedFormat when no dialect marker is found and
// ErrEmptyInput when the log matched a dialect but produced no steps.
// Recoverable conditions never fail the parse; they are accumulated on
// Result.Warnings.
func Parse(content string, opts ...Option) (*model.Result, error) {
	p := &parser{dialect: model.DialectAuto}
	for _, opt := range opts {
		opt(p)
	}

	lines := logline.Split(content)

	dialect := p.dialect
	if dialect == model.DialectAuto || dialect == "" {
		detected, err := detectDialect(lines)
		if err != nil {
			return nil, err
		}
		dialect = detected
	}

	ext := extractorFor(dialect).extract(lines)
	if len(ext.steps) == 0 {
		return nil, errors.Wrapf(ErrEmptyInput, "dialect %s", dialect)
	}

	result := buildTimeline(dialect, reconcile(dialect, ext))
	assignRows(result.Steps)
	markBottlenecks(result.Steps)

	return result, nil
}
