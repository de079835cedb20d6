package sheets

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/brewlinehq/storefront-backend/pkg/config"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

var errNotConfigured = errors.New("sheets credentials not configured")

type valuesAPI interface {
	Append(ctx context.Context, spreadsheetID, readRange string, values [][]any) error
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
	Probe(ctx context.Context, spreadsheetID string) error
}

// Client talks to the spreadsheet that acts as the storefront's datastore:
// one tab for the product catalog, one tab for the order ledger.
type Client struct {
	api           valuesAPI
	spreadsheetID string
}

// NewClient authenticates with the configured service account and verifies
// the credentials are present. Missing credentials fail eagerly; they are a
// configuration error, not something to retry.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logg *logger.Logger) (*Client, error) {
	if !cfg.Configured() {
		return nil, errNotConfigured
	}

	ts := newTokenSource(ctx, cfg.ServiceAccountEmail, cfg.PrivateKey)
	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("initializing sheets service: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "sheets client initialized")
	}

	return &Client{
		api:           &googleValuesAPI{svc: svc},
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// AppendRows appends the given rows to the bottom of the range, values taken
// verbatim (RAW input option, matching the order ledger's expectations).
func (c *Client) AppendRows(ctx context.Context, readRange string, rows [][]any) error {
	if c == nil || c.api == nil {
		return errNotConfigured
	}
	if len(rows) == 0 {
		return errors.New("no rows to append")
	}
	return c.api.Append(ctx, c.spreadsheetID, readRange, rows)
}

// ReadRows returns the full 2-D value range, header row included.
func (c *Client) ReadRows(ctx context.Context, readRange string) ([][]any, error) {
	if c == nil || c.api == nil {
		return nil, errNotConfigured
	}
	return c.api.Get(ctx, c.spreadsheetID, readRange)
}

// Ping verifies the spreadsheet is reachable with the current credentials.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.api == nil {
		return errNotConfigured
	}
	return c.api.Probe(ctx, c.spreadsheetID)
}

type googleValuesAPI struct {
	svc *sheetsapi.Service
}

func (g *googleValuesAPI) Append(ctx context.Context, spreadsheetID, readRange string, values [][]any) error {
	body := &sheetsapi.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.
		Append(spreadsheetID, readRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (g *googleValuesAPI) Get(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Get(spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValuesAPI) Probe(ctx context.Context, spreadsheetID string) error {
	_, err := g.svc.Spreadsheets.
		Get(spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	return err
}
