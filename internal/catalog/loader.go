package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/angelmondragon/partsdesk-backend/pkg/errors"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
	"github.com/angelmondragon/partsdesk-backend/pkg/metrics"
	"golang.org/x/text/language"
)

// RowSource supplies raw tabular rows, header included.
type RowSource interface {
	Name() string
	Rows(ctx context.Context) ([][]string, error)
}

// Loader builds a fresh catalog on every call.
type Loader interface {
	Load(ctx context.Context) (*Catalog, SegmentReport, error)
}

// LoaderOptions configures a SourceLoader.
type LoaderOptions struct {
	HeaderRows int
	Layout     *Layout
	Locale     language.Tag
	Metrics    *metrics.CatalogMetrics
	Logger     *logger.Logger
}

// SourceLoader fetches rows from a RowSource and segments them.
type SourceLoader struct {
	source     RowSource
	headerRows int
	layout     Layout
	locale     language.Tag
	metrics    *metrics.CatalogMetrics
	logg       *logger.Logger
}

// NewLoader wires a loader around source.
func NewLoader(source RowSource, opts LoaderOptions) (*SourceLoader, error) {
	if source == nil {
		return nil, errors.New("row source required")
	}
	if opts.HeaderRows < 0 {
		return nil, errors.New("header rows must not be negative")
	}
	layout := DefaultLayout
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	locale := opts.Locale
	if locale == language.Und {
		locale = language.Arabic
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &SourceLoader{
		source:     source,
		headerRows: opts.HeaderRows,
		layout:     layout,
		locale:     locale,
		metrics:    opts.Metrics,
		logg:       logg,
	}, nil
}

// Load fetches, segments and indexes the source.
func (l *SourceLoader) Load(ctx context.Context) (*Catalog, SegmentReport, error) {
	ctx = l.logg.WithField(ctx, "source", l.source.Name())

	start := time.Now()
	rows, err := l.source.Rows(ctx)
	l.metrics.ObserveFetch(l.source.Name(), time.Since(start), err)
	if err != nil {
		l.logg.Error(ctx, "catalog.fetch_failed", err)
		return nil, SegmentReport{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("fetch %s rows", l.source.Name()))
	}

	products, report := Segment(SkipHeader(rows, l.headerRows), l.layout)
	cat := New(products, WithLocale(l.locale))

	l.metrics.SetProducts(report.Products)
	l.metrics.AddAnomalies("blank_price", report.BlankPrice)
	l.metrics.AddAnomalies("invalid_price", report.InvalidPrice)
	l.metrics.AddAnomalies("missing_origin", report.MissingOrigin)
	l.metrics.AddAnomalies("duplicate_name", report.DuplicateNames)

	l.logg.Info(l.logg.WithFields(ctx, map[string]any{
		"rows":            report.Rows,
		"products":        report.Products,
		"categories":      len(cat.Categories()),
		"blank_price":     report.BlankPrice,
		"invalid_price":   report.InvalidPrice,
		"missing_origin":  report.MissingOrigin,
		"duplicate_names": report.DuplicateNames,
		"duration_ms":     time.Since(start).Milliseconds(),
	}), "catalog.loaded")

	return cat, report, nil
}
