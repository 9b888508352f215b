// Package sheets provides the Google Sheets access layer.
// Authentication uses a service account JWT with the read-write
// spreadsheets scope.
package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/contentbicarus/7k-mobile-waitlist/internal/credentials"
)

// Client wraps an authenticated Sheets service bound to one spreadsheet
// and append range.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	appendRange   string
}

// Dial builds an authenticated client for the given spreadsheet.
// The token itself is fetched lazily by the underlying transport, so a
// successful Dial does not guarantee the credentials are valid.
func Dial(ctx context.Context, account credentials.ServiceAccount, spreadsheetID, appendRange string) (*Client, error) {
	conf := &jwt.Config{
		Email:      account.ClientEmail,
		PrivateKey: []byte(account.PrivateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		appendRange:   appendRange,
	}, nil
}

// VerifyAccess performs a metadata read against the spreadsheet.
// It fails if the sheet does not exist or has not been shared with the
// service account, which is the most common misconfiguration.
func (c *Client) VerifyAccess(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	return nil
}

// Append writes one row to the configured range. USER_ENTERED makes the
// service parse cell values as if typed by a user, so RFC 3339
// timestamps become real dates.
func (c *Client) Append(ctx context.Context, row []interface{}) error {
	body := &sheetsapi.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.appendRange, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}
