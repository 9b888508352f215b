// Package service implements the waitlist signup pipeline: validate the
// input, check the sheets configuration, authenticate, verify access to
// the spreadsheet, append one row.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/contentbicarus/7k-mobile-waitlist/internal/cache"
	"github.com/contentbicarus/7k-mobile-waitlist/internal/credentials"
	"github.com/contentbicarus/7k-mobile-waitlist/internal/model"
	"github.com/contentbicarus/7k-mobile-waitlist/internal/sheets"
)

// Pipeline error kinds. ErrMissingFields maps to a 400; everything else
// surfaces as a 500 with a classified message.
var (
	ErrMissingFields    = errors.New("email and username are required")
	ErrConfigIncomplete = errors.New("sheets configuration incomplete")
	ErrInvalidKeyFormat = errors.New("private key failed format check")
	ErrAuthFailed       = errors.New("sheets authentication failed")
	ErrAccessDenied     = errors.New("spreadsheet access denied")
	ErrSheetNotFound    = errors.New("spreadsheet not found")
	ErrSaveFailed       = errors.New("failed to save signup")
)

// User-facing messages for classified failures.
const (
	msgMissingConfig = "Missing environment variables: GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_PRIVATE_KEY, and GOOGLE_SHEET_ID must all be set"
	msgInvalidKey    = "Invalid GOOGLE_PRIVATE_KEY format: expected a PEM-encoded private key"
	msgAuthFailed    = "Failed to authenticate with Google Sheets"
	msgSaveFailed    = "Failed to save data"
)

// Error is a classified pipeline failure. Kind is one of the sentinel
// errors above, Message is what the client sees, Cause is the raw
// upstream error surfaced under the response details field.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Detail returns the raw upstream message, empty if there is none.
func (e *Error) Detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ""
}

// SheetAppender is the subset of the sheets client the pipeline uses.
type SheetAppender interface {
	VerifyAccess(ctx context.Context) error
	Append(ctx context.Context, row []interface{}) error
}

// DialFunc builds an authenticated sheet client.
type DialFunc func(ctx context.Context) (SheetAppender, error)

// Config holds waitlist service dependencies.
type Config struct {
	Account       credentials.ServiceAccount
	SpreadsheetID string
	Range         string

	// Cache enables duplicate suppression when DedupeEnabled is set.
	// Nil disables both.
	Cache         *cache.Cache
	DedupeEnabled bool
	DedupeTTL     time.Duration

	Logger *slog.Logger

	// Dial overrides how the sheets client is built. Tests inject fakes
	// here; nil means the real Google Sheets client.
	Dial DialFunc
}

// Waitlist runs the signup pipeline.
type Waitlist struct {
	cfg    Config
	logger *slog.Logger

	// The sheets client is memoized after the first successful dial.
	// A failed dial is not cached, so the next request retries.
	mu     sync.Mutex
	client SheetAppender
}

// NewWaitlist creates a Waitlist service.
func NewWaitlist(cfg Config) *Waitlist {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	w := &Waitlist{cfg: cfg, logger: cfg.Logger}
	if w.cfg.Dial == nil {
		w.cfg.Dial = func(ctx context.Context) (SheetAppender, error) {
			return sheets.Dial(ctx, cfg.Account, cfg.SpreadsheetID, cfg.Range)
		}
	}
	return w
}

// SignupInput is the parsed request body. Timestamp is optional and is
// written to the sheet as-is, even when empty.
type SignupInput struct {
	Email     string
	Username  string
	Timestamp string
}

// SignupResult reports a completed signup.
type SignupResult struct {
	ID        string
	Duplicate bool
}

// Signup validates the input and appends one row to the spreadsheet.
// The pipeline is a strictly linear guard chain; the first failing gate
// is terminal for the request.
func (w *Waitlist) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	if input.Email == "" || input.Username == "" {
		return nil, ErrMissingFields
	}

	rec := model.Signup{
		Timestamp: input.Timestamp,
		Email:     input.Email,
		Username:  input.Username,
	}
	id := ulid.Make().String()

	if !w.cfg.Account.Complete() || w.cfg.SpreadsheetID == "" {
		w.logger.Error("incomplete sheets configuration",
			slog.Bool("has_client_email", w.cfg.Account.ClientEmail != ""),
			slog.Bool("has_private_key", w.cfg.Account.PrivateKey != ""),
			slog.Bool("has_sheet_id", w.cfg.SpreadsheetID != ""),
		)
		return nil, &Error{Kind: ErrConfigIncomplete, Message: msgMissingConfig}
	}

	if !w.cfg.Account.HasPEMMarkers() {
		w.logger.Error("private key failed format check",
			slog.Int("key_length", len(w.cfg.Account.PrivateKey)),
		)
		return nil, &Error{Kind: ErrInvalidKeyFormat, Message: msgInvalidKey}
	}

	if w.dedupeEnabled() {
		seen, err := w.cfg.Cache.SeenSignup(ctx, rec.Email)
		if err != nil {
			// Dedupe is best-effort; fall through to the append.
			w.logger.Warn("dedupe check failed", slog.String("error", err.Error()))
		} else if seen {
			w.logger.Info("signup_duplicate",
				slog.String("signup_id", id),
				slog.String("email", rec.Email),
			)
			return &SignupResult{ID: id, Duplicate: true}, nil
		}
	}

	client, err := w.sheetClient(ctx)
	if err != nil {
		w.logger.Error("sheets authentication failed", slog.String("error", err.Error()))
		return nil, &Error{Kind: ErrAuthFailed, Message: msgAuthFailed, Cause: err}
	}

	if err := client.VerifyAccess(ctx); err != nil {
		return nil, w.classifyAccessError(err)
	}

	if err := client.Append(ctx, rec.Row()); err != nil {
		w.logger.Error("append failed",
			slog.String("error", err.Error()),
			slog.Int("upstream_status", sheets.StatusCode(err)),
			slog.String("sheet_id", w.cfg.SpreadsheetID),
		)
		return nil, &Error{Kind: ErrSaveFailed, Message: msgSaveFailed, Cause: err}
	}

	if w.dedupeEnabled() {
		if _, err := w.cfg.Cache.MarkSignup(ctx, rec.Email, id, w.cfg.DedupeTTL); err != nil {
			w.logger.Warn("dedupe mark failed", slog.String("error", err.Error()))
		}
	}

	w.logger.Info("signup_saved",
		slog.String("signup_id", id),
		slog.String("email", rec.Email),
		slog.String("username", rec.Username),
	)

	return &SignupResult{ID: id}, nil
}

// Configured reports whether the service has everything it needs to
// reach the spreadsheet. Used to decide whether the sheet participates
// in readiness checks.
func (w *Waitlist) Configured() bool {
	return w.cfg.Account.Complete() && w.cfg.SpreadsheetID != "" && w.cfg.Account.HasPEMMarkers()
}

// Ping verifies the spreadsheet is reachable. Satisfies the readiness
// checker interface.
func (w *Waitlist) Ping(ctx context.Context) error {
	client, err := w.sheetClient(ctx)
	if err != nil {
		return err
	}
	return client.VerifyAccess(ctx)
}

func (w *Waitlist) dedupeEnabled() bool {
	return w.cfg.DedupeEnabled && w.cfg.Cache != nil
}

// sheetClient returns the memoized client, dialing on first use.
func (w *Waitlist) sheetClient(ctx context.Context) (SheetAppender, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.client != nil {
		return w.client, nil
	}

	client, err := w.cfg.Dial(ctx)
	if err != nil {
		return nil, err
	}
	w.client = client
	return client, nil
}

// classifyAccessError maps an access-check failure to a user-facing
// message. Permission failures name the service account so the operator
// knows who to share the sheet with.
func (w *Waitlist) classifyAccessError(err error) error {
	w.logger.Error("spreadsheet access check failed",
		slog.String("error", err.Error()),
		slog.Int("upstream_status", sheets.StatusCode(err)),
		slog.String("sheet_id", w.cfg.SpreadsheetID),
	)

	switch {
	case sheets.IsPermissionDenied(err):
		msg := fmt.Sprintf(
			"Permission denied. Share the spreadsheet with %s (Editor access), then try again.",
			w.cfg.Account.ClientEmail,
		)
		return &Error{Kind: ErrAccessDenied, Message: msg, Cause: err}
	case sheets.IsNotFound(err):
		msg := fmt.Sprintf("Sheet not found. Check that GOOGLE_SHEET_ID %q is correct.", w.cfg.SpreadsheetID)
		return &Error{Kind: ErrSheetNotFound, Message: msg, Cause: err}
	default:
		return &Error{Kind: ErrSaveFailed, Message: msgSaveFailed, Cause: err}
	}
}
