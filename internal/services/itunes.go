// iTunes Search API [Catalog] implementation
//
// The API is anonymous and rate limited (roughly 20 calls per minute per client).
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultITunesBaseURL string = "https://itunes.apple.com"
	defaultTimeout              = 10 * time.Second

	// SearchLimit is the result ceiling requested from the catalog.
	SearchLimit = 50
)

var _ Catalog = (*ITunesService)(nil)

// ITunesOpts contains configuration options for creating an [ITunesService].
type ITunesOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter // nil disables rate limiting
	Logger     *log.Logger
}

// ITunesService implements [Catalog] for the public iTunes Search API.
type ITunesService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewITunesService creates a new catalog client.
func NewITunesService(opts ITunesOpts) *ITunesService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultITunesBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Inf, 0)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &ITunesService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		limiter:    opts.Limiter,
		logger:     shared.WithLogger(opts.Logger, "component", "itunes"),
	}
}

// NewLimiter builds a limiter allowing requestsPerMinute with the given burst.
//
// A non-positive rate disables limiting.
func NewLimiter(requestsPerMinute float64, burst int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerMinute/60), burst)
}

// Name returns the catalog name.
func (s *ITunesService) Name() string {
	return "iTunes Search"
}

// Search queries GET /search restricted to music songs, at most [SearchLimit] results.
//
// Non-2xx responses and transport failures wrap [shared.ErrAPIRequest]; malformed bodies wrap [shared.ErrDecodeResponse].
func (s *ITunesService) Search(ctx context.Context, term string) ([]models.Track, error) {
	if strings.TrimSpace(term) == "" {
		return []models.Track{}, nil
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "music")
	params.Set("entity", "song")
	params.Set("limit", strconv.Itoa(SearchLimit))

	var resp models.SearchResponse
	if err := s.doRequest(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	songs := models.FilterSongs(resp.Results)
	s.logger.Debug("search complete", "term", term, "results", resp.ResultCount, "songs", len(songs))

	return songs, nil
}

// Lookup retrieves one song via GET /lookup?id={id}.
func (s *ITunesService) Lookup(ctx context.Context, id int64) (*models.Track, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: track id must be positive, got %d", shared.ErrInvalidArgument, id)
	}

	params := url.Values{}
	params.Set("id", strconv.FormatInt(id, 10))

	var resp models.SearchResponse
	if err := s.doRequest(ctx, "/lookup", params, &resp); err != nil {
		return nil, err
	}

	for _, t := range models.FilterSongs(resp.Results) {
		if t.ID == id {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("%w: %d", shared.ErrTrackNotFound, id)
}

func (s *ITunesService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	logger := s.logger.With("request_id", shared.GenerateID(), "endpoint", endpoint)

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", shared.ErrAPIRequest, err)
	}

	apiURL := s.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("catalog request failed", "err", err)
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	logger.Debug("catalog response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP error status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		logger.Warn("catalog response could not be decoded", "err", err)
		return fmt.Errorf("%w: %w", shared.ErrDecodeResponse, err)
	}

	return nil
}
