package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobtracker/internal/config"

	"golang.org/x/time/rate"
)

const statusRequestSucceeded = "REQUEST_SUCCEEDED"

var ErrTooManySeries = errors.New("too many series ids for one request")

// Client talks to the BLS public API and the OEWS bulk download site.
type Client struct {
	cfg     config.BLSConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

func NewClient(cfg config.BLSConfig, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

type seriesRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type seriesEnvelope struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []Series `json:"series"`
	} `json:"Results"`
}

type Series struct {
	SeriesID string       `json:"seriesID"`
	Data     []SeriesData `json:"data"`
}

type SeriesData struct {
	Year   string `json:"year"`
	Period string `json:"period"`
	Value  string `json:"value"`
}

// FetchSeries fetches time series data for up to MaxSeriesPerRequest
// series IDs in one call.
func (c *Client) FetchSeries(ctx context.Context, seriesIDs []string, startYear, endYear int) ([]Series, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil bls client")
	}
	maxPer := c.cfg.MaxSeriesPerRequest
	if maxPer <= 0 {
		maxPer = 50
	}
	if len(seriesIDs) > maxPer {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySeries, len(seriesIDs), maxPer)
	}

	body := seriesRequest{
		SeriesID:        seriesIDs,
		StartYear:       strconv.Itoa(startYear),
		EndYear:         strconv.Itoa(endYear),
		RegistrationKey: c.cfg.APIKey,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/timeseries/data/"

	var env seriesEnvelope
	err = c.doWithRetry(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.decodeJSON(req, &env)
	})
	if err != nil {
		return nil, err
	}

	if env.Status != statusRequestSucceeded {
		return nil, fmt.Errorf("bls request failed: status=%s message=%s", env.Status, strings.Join(env.Message, "; "))
	}
	return env.Results.Series, nil
}

// FetchSeriesBatched splits the series IDs into API-sized batches and
// combines the results. A failed batch is logged and skipped so one bad
// batch does not lose the rest.
func (c *Client) FetchSeriesBatched(ctx context.Context, seriesIDs []string, startYear, endYear int) ([]Series, error) {
	maxPer := c.cfg.MaxSeriesPerRequest
	if maxPer <= 0 {
		maxPer = 50
	}

	all := make([]Series, 0, len(seriesIDs))
	for i := 0; i < len(seriesIDs); i += maxPer {
		end := i + maxPer
		if end > len(seriesIDs) {
			end = len(seriesIDs)
		}
		batch, err := c.FetchSeries(ctx, seriesIDs[i:end], startYear, endYear)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Printf("[BLS] Series batch failed batch=%d err=%v", i/maxPer, err)
			continue
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (c *Client) decodeJSON(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(rb))}
	}

	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status=%d body=%s", e.code, e.body)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return false
}

// doWithRetry applies the rate limit, then retries rate-limit and
// server errors with exponential backoff. Up to 3 attempts.
func (c *Client) doWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	backoff := 2 * time.Second

	for attempt := 0; attempt < 3; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		c.logger.Printf("[BLS] Retryable error attempt=%d err=%v", attempt+1, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return lastErr
}
