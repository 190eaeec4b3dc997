// Package download fetches survey report PDFs over HTTPS.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/marinesurvey/csm-extractor/internal/domain"
)

const defaultTimeout = 2 * time.Minute

// Downloader streams remote PDFs to a local directory.
type Downloader struct {
	client *http.Client
	log    zerolog.Logger
}

// NewDownloader returns a downloader with a bounded request timeout.
func NewDownloader(log zerolog.Logger) *Downloader {
	return &Downloader{
		client: &http.Client{Timeout: defaultTimeout},
		log:    log.With().Str("component", "downloader").Logger(),
	}
}

// Fetch downloads the document at rawURL into destDir and returns the local
// path. The filename is the final URL path segment with any query string
// stripped; a segment without a .pdf extension gets one appended.
func (d *Downloader) Fetch(ctx context.Context, rawURL, destDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", domain.ValidationError("invalid document URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", domain.ValidationError(fmt.Sprintf("unsupported URL scheme %q", u.Scheme), nil)
	}

	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return "", domain.ValidationError("document URL has no file name", nil)
	}
	if filepath.Ext(name) != ".pdf" {
		name += ".pdf"
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", domain.IOError("failed to create download directory", err)
	}
	destPath := filepath.Join(destDir, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", domain.ValidationError("failed to build download request", err)
	}

	d.log.Info().Str("url", rawURL).Str("dest", destPath).Msg("downloading document")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", domain.RemoteServiceError("document download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domain.RemoteServiceError(
			fmt.Sprintf("document server returned status %d", resp.StatusCode), nil)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return "", domain.IOError("failed to create local file", err)
	}

	written, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return "", domain.IOError("failed to write downloaded document", err)
	}

	d.log.Info().Int64("bytes", written).Str("path", destPath).Msg("download complete")
	return destPath, nil
}
