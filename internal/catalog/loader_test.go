package catalog

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/angelmondragon/partsdesk-backend/pkg/errors"
	"github.com/angelmondragon/partsdesk-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type stubSource struct {
	rows  [][]string
	err   error
	calls int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Rows(context.Context) ([][]string, error) {
	s.calls++
	return s.rows, s.err
}

func TestLoaderSkipsHeaderAndSegments(t *testing.T) {
	source := &stubSource{rows: [][]string{
		{"القسم", "الصنف", "بلد المنشأ", "السعر"},
		{"Filters", "", "", ""},
		{"", "Oil Filter", "Japan", "50"},
		{"", "Air Filter", "", "x"},
	}}
	loader, err := NewLoader(source, LoaderOptions{HeaderRows: 1})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	cat, report, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", cat.Len())
	}
	if report.InvalidPrice != 1 || report.MissingOrigin != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if p, _ := cat.ByName("Oil Filter"); p.Category != "Filters" {
		t.Fatalf("expected Filters category, got %q", p.Category)
	}
}

func TestLoaderRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	source := &stubSource{rows: [][]string{
		{"h", "h", "h", "h"},
		{"", "Oil Filter", "Japan", ""},
	}}
	loader, err := NewLoader(source, LoaderOptions{HeaderRows: 1, Metrics: metrics.NewCatalogMetrics(reg)})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}
	if _, _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{"catalog_fetch_success", "catalog_products", "catalog_row_anomalies"} {
		if !found[name] {
			t.Fatalf("expected metric %s to be recorded", name)
		}
	}
}

func TestLoaderWrapsSourceError(t *testing.T) {
	source := &stubSource{err: errors.New("boom")}
	loader, err := NewLoader(source, LoaderOptions{})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	_, _, err = loader.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %s", pkgerrors.CodeOf(err))
	}
}

func TestNewLoaderValidation(t *testing.T) {
	if _, err := NewLoader(nil, LoaderOptions{}); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := NewLoader(&stubSource{}, LoaderOptions{HeaderRows: -1}); err == nil {
		t.Fatal("expected error for negative header rows")
	}
}
