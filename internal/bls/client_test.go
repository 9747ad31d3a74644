package bls

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"jobtracker/internal/config"
)

func testConfig(baseURL string) config.BLSConfig {
	return config.BLSConfig{
		BaseURL:             baseURL,
		RequestsPerSecond:   1000,
		MaxSeriesPerRequest: 50,
	}
}

func TestFetchSeries_Success(t *testing.T) {
	var gotBody seriesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/timeseries/data/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "REQUEST_SUCCEEDED",
			"Results": map[string]any{
				"series": []map[string]any{{
					"seriesID": "OEUM000000000000015125201",
					"data":     []map[string]any{{"year": "2024", "period": "A01", "value": "1656880"}},
				}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	series, err := c.FetchSeries(context.Background(), []string{"OEUM000000000000015125201"}, 2024, 2024)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(series) != 1 || series[0].SeriesID != "OEUM000000000000015125201" {
		t.Fatalf("unexpected series: %+v", series)
	}
	if series[0].Data[0].Value != "1656880" {
		t.Fatalf("unexpected value: %q", series[0].Data[0].Value)
	}
	if gotBody.StartYear != "2024" || gotBody.EndYear != "2024" {
		t.Fatalf("unexpected years in request: %+v", gotBody)
	}
}

func TestFetchSeries_RequestFailedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "REQUEST_NOT_PROCESSED",
			"message": []string{"invalid series"},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	if _, err := c.FetchSeries(context.Background(), []string{"bogus"}, 2024, 2024); err == nil {
		t.Fatalf("expected error on failed status")
	}
}

func TestFetchSeries_TooManySeries(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.MaxSeriesPerRequest = 2
	c := NewClient(cfg, nil)

	_, err := c.FetchSeries(context.Background(), []string{"a", "b", "c"}, 2024, 2024)
	if !errors.Is(err, ErrTooManySeries) {
		t.Fatalf("expected ErrTooManySeries, got %v", err)
	}
}

func TestFetchSeries_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "REQUEST_SUCCEEDED",
			"Results": map[string]any{"series": []any{}},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), nil)
	if _, err := c.FetchSeries(context.Background(), []string{"x"}, 2024, 2024); err != nil {
		t.Fatalf("unexpected err after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestFetchSeriesBatched_SkipsFailedBatch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body seriesRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		calls.Add(1)
		if body.SeriesID[0] == "bad" {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "REQUEST_NOT_PROCESSED"})
			return
		}
		out := make([]map[string]any, 0, len(body.SeriesID))
		for _, id := range body.SeriesID {
			out = append(out, map[string]any{"seriesID": id})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "REQUEST_SUCCEEDED",
			"Results": map[string]any{"series": out},
		})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxSeriesPerRequest = 2
	c := NewClient(cfg, nil)

	series, err := c.FetchSeriesBatched(context.Background(), []string{"a", "b", "bad", "d", "e"}, 2024, 2024)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Batches: [a b] [bad d] [e]; the middle batch fails and is skipped.
	if len(series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(series))
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 batch calls, got %d", calls.Load())
	}
}
