package abraflexi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/flexidash/flexidash/internal/model"
	"github.com/flexidash/flexidash/internal/secrets"
)

// Failure classes of a fetch. Wrapped errors match with errors.Is.
var (
	ErrNetwork = errors.New("abraflexi: request failed")
	ErrAuth    = errors.New("abraflexi: authentication failed")
	ErrStatus  = errors.New("abraflexi: unexpected status")
	ErrNotJSON = errors.New("abraflexi: response is not JSON")
)

// DefaultTimeout bounds a single request when no client is supplied.
const DefaultTimeout = 30 * time.Second

const maxErrorBody = 512

// Client fetches trial-balance rows from an AbraFlexi company endpoint.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient gets a default one with
// DefaultTimeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{httpClient: httpClient}
}

// Endpoint returns the stav-uctu URL for an accounting year.
func Endpoint(companyURL string, year int) string {
	base := strings.TrimSuffix(companyURL, "/") + "/"
	return fmt.Sprintf("%sstav-uctu/(ucetniObdobi%%20%%3D%%20%%22code%%3A%d%%22)?limit=0&detail=full", base, year)
}

// FetchRows downloads every stav-uctu record of the year. An empty result is
// not an error.
func (c *Client) FetchRows(ctx context.Context, creds secrets.Credentials, year int) ([]model.RawAccountRow, error) {
	endpoint := Endpoint(creds.URL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(creds.User, creds.Password)

	slog.Debug("Requesting AbraFlexi trial balance", "url", endpoint, "year", year)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrAuth, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s: %s", ErrStatus, resp.Status, strings.TrimSpace(string(body)))
	}

	rows, err := DecodeRows(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return rows, nil
}
