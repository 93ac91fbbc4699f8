package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/partsdesk-backend/pkg/config"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	defaultRange   = "A:D"
	defaultTimeout = 15 * time.Second
	renderOption   = "FORMATTED_VALUE"
)

var (
	errSpreadsheetIDRequired = errors.New("spreadsheet id is required")
	errClientNotInitialized  = errors.New("sheets client not initialized")
)

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

type valuesGetter interface {
	Get(ctx context.Context, spreadsheetID, readRange string) (*sheetsapi.ValueRange, error)
	Metadata(ctx context.Context, spreadsheetID string) error
}

// Client reads the raw rows of one spreadsheet range.
type Client struct {
	api           valuesGetter
	spreadsheetID string
	readRange     string
	timeout       time.Duration
}

// NewClient creates a read-only Sheets client with the configured credentials.
func NewClient(ctx context.Context, cfg config.SheetsConfig, gcp config.GCPConfig, logg *logger.Logger) (*Client, error) {
	id := strings.TrimSpace(cfg.SpreadsheetID)
	if id == "" {
		return nil, errSpreadsheetIDRequired
	}

	svc, err := sheetsapi.NewService(ctx, clientOptions(gcp)...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	client := newClient(&serviceGetter{svc: svc}, cfg)

	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"spreadsheet_id": id,
			"range":          client.readRange,
		}), "sheets client initialized")
	}

	return client, nil
}

func newClient(api valuesGetter, cfg config.SheetsConfig) *Client {
	readRange := strings.TrimSpace(cfg.Range)
	if readRange == "" {
		readRange = defaultRange
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		api:           api,
		spreadsheetID: strings.TrimSpace(cfg.SpreadsheetID),
		readRange:     readRange,
		timeout:       timeout,
	}
}

func clientOptions(gcp config.GCPConfig) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	switch {
	case strings.TrimSpace(gcp.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(gcp.CredentialsJSON)))
	case strings.TrimSpace(gcp.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}
	return opts
}

// Name labels this source in metrics and logs.
func (c *Client) Name() string {
	return "sheets"
}

// Rows returns every row of the configured range as text cells, header included.
// Trailing empty cells are omitted by the API, so rows may be ragged.
func (c *Client) Rows(ctx context.Context) ([][]string, error) {
	if c == nil || c.api == nil {
		return nil, errClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Get(ctx, c.spreadsheetID, c.readRange)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("spreadsheet %q range %q not found: %w", c.spreadsheetID, c.readRange, err)
		}
		return nil, fmt.Errorf("reading spreadsheet values: %w", err)
	}
	if resp == nil {
		return nil, nil
	}
	return toRows(resp.Values), nil
}

// Ping checks that the spreadsheet is reachable with the configured credentials.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.api == nil {
		return errClientNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.api.Metadata(ctx, c.spreadsheetID)
}

func toRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, raw := range values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			if cell == nil {
				continue
			}
			if s, ok := cell.(string); ok {
				row[i] = s
				continue
			}
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 404
	}
	return false
}

type serviceGetter struct {
	svc *sheetsapi.Service
}

func (g *serviceGetter) Get(ctx context.Context, spreadsheetID, readRange string) (*sheetsapi.ValueRange, error) {
	return g.svc.Spreadsheets.Values.
		Get(spreadsheetID, readRange).
		ValueRenderOption(renderOption).
		Context(ctx).
		Do()
}

func (g *serviceGetter) Metadata(ctx context.Context, spreadsheetID string) error {
	_, err := g.svc.Spreadsheets.
		Get(spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	return err
}
