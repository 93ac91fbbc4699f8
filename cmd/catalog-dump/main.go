package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/partsdesk-backend/internal/catalog"
	"github.com/angelmondragon/partsdesk-backend/pkg/config"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
	"github.com/angelmondragon/partsdesk-backend/pkg/sheets"
)

type dump struct {
	Report     catalog.SegmentReport `json:"report"`
	Categories []string              `json:"categories"`
	Origins    []string              `json:"origins"`
	Duplicates []string              `json:"duplicate_names"`
	Products   []catalog.Product     `json:"products,omitempty"`
}

func main() {
	withProducts := flag.Bool("products", false, "include every product row in the output")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "catalog-dump", Output: os.Stderr})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	client, err := sheets.NewClient(ctx, cfg.Sheets, cfg.GCP, logg)
	if err != nil {
		logg.Error(ctx, "failed to create sheets client", err)
		os.Exit(1)
	}
	loader, err := catalog.NewLoader(client, catalog.LoaderOptions{
		HeaderRows: cfg.Sheets.HeaderRows,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create catalog loader", err)
		os.Exit(1)
	}

	cat, report, err := loader.Load(ctx)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	out := dump{
		Report:     report,
		Categories: cat.Categories(),
		Origins:    cat.DistinctOrigins(),
		Duplicates: cat.DuplicateNames(),
	}
	if *withProducts {
		out.Products = cat.Products()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logg.Error(ctx, "failed to write output", err)
		os.Exit(1)
	}
}
