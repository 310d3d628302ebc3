//go:generate mockgen -source=export.go -destination=export_mock.go -package=export
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"

	"siemctl/internal/app/api"
	"siemctl/internal/app/auth"
	"siemctl/internal/app/errors"
	"siemctl/internal/app/render"
	"siemctl/internal/app/telemetry"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

const gzipExt = ".gz"

var dispositionFilename = regexp.MustCompile(`filename=([^;]+)`)

// Options override the configured destination for one export
type Options struct {
	Dir  string
	Gzip bool
}

// Exporter downloads the full event export to a local file
type Exporter interface {
	Export(ctx context.Context, format string, opts Options) (string, error)
}

type exporter struct {
	auth      auth.Auth
	client    api.Client
	telemetry telemetry.Telemetry
	dir       string
	compress  bool
	log       logger.Logger
}

// NewExporter creates an Exporter writing to cfg.Export.Dir
func NewExporter(cfg *config.Config, a auth.Auth, client api.Client, tel telemetry.Telemetry, log logger.Logger) Exporter {
	return &exporter{
		auth:      a,
		client:    client,
		telemetry: tel,
		dir:       cfg.Export.Dir,
		compress:  cfg.Export.Compress,
		log:       log.WithComponent("EXPORT"),
	}
}

// Export requests format from the backend and streams it to disk, returning the written path
func (e *exporter) Export(ctx context.Context, format string, opts Options) (string, error) {
	if format != config.FormatJSON && format != config.FormatCSV {
		return "", fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, format)
	}

	creds, ok := e.auth.Credentials()
	if !ok {
		return "", errors.ErrNotAuthenticated
	}

	resp, err := e.client.Export(ctx, *creds, format)
	if err != nil {
		e.log.Error().Err(err).Str("format", format).Msg("Export request failed")
		e.telemetry.CaptureError(err, "EXPORT")

		return "", fmt.Errorf("%w: %w", errors.ErrExportFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	dir := e.dir
	if opts.Dir != "" {
		dir = opts.Dir
	}

	name := Filename(resp.ContentDisposition, format)
	if opts.Gzip || e.compress {
		name += gzipExt
	}

	path, written, err := write(dir, name, resp.Body, opts.Gzip || e.compress)
	if err != nil {
		e.log.Error().Err(err).Str("path", filepath.Join(dir, name)).Msg("Failed to write export")
		e.telemetry.CaptureError(err, "EXPORT")

		return "", err
	}

	e.log.Info().Str("path", path).Int64("bytes", written).Str("format", format).Msg("Export saved")

	return path, nil
}

// Filename takes the filename from a Content-Disposition header, falling back to events_export.<format>
func Filename(disposition, format string) string {
	fallback := "events_export." + format

	m := dispositionFilename.FindStringSubmatch(disposition)
	if m == nil {
		return fallback
	}

	name := strings.Trim(strings.TrimSpace(m[1]), `"'`)
	name = filepath.Base(filepath.Clean("/" + name))

	if name == "" || name == "." || name == "/" || name == string(filepath.Separator) {
		return fallback
	}

	return name
}

// AlertMessage renders an export failure as the user-facing alert text
func AlertMessage(err error) string {
	msg := err.Error()

	var se *api.StatusError
	if errors.As(err, &se) {
		msg = se.Message
	}

	return render.ExportErrorText + strings.TrimPrefix(msg, render.ExportErrorText)
}

func write(dir, name string, body io.Reader, compress bool) (string, int64, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("%w: %w", errors.ErrFailedToWriteExport, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", errors.ErrFailedToWriteExport, err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	written, err := copyBody(tmp, name, body, compress)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", errors.ErrFailedToWriteExport, err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", 0, fmt.Errorf("%w: %w", errors.ErrFailedToWriteExport, err)
	}

	return path, written, nil
}

func copyBody(w io.Writer, name string, body io.Reader, compress bool) (int64, error) {
	if !compress {
		return io.Copy(w, body)
	}

	zw := gzip.NewWriter(w)
	zw.Name = strings.TrimSuffix(name, gzipExt)

	n, err := io.Copy(zw, body)
	if closeErr := zw.Close(); err == nil {
		err = closeErr
	}

	return n, err
}
