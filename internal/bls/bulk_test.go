package bls

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestBulkFileName(t *testing.T) {
	cases := []struct {
		areaType string
		year     int
		want     string
	}{
		{AreaNational, 2024, "oesm24nat.zip"},
		{AreaState, 2024, "oesm24st.zip"},
		{AreaMetro, 2024, "oesm24ma.zip"},
		{AreaNational, 2009, "oesm09nat.zip"},
	}
	for _, c := range cases {
		got, err := bulkFileName(c.areaType, c.year)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != c.want {
			t.Fatalf("bulkFileName(%s, %d) = %q, want %q", c.areaType, c.year, got, c.want)
		}
	}

	if _, err := bulkFileName("county", 2024); err == nil {
		t.Fatalf("expected error for invalid area type")
	}
}

func TestSuppressed(t *testing.T) {
	for _, s := range []string{"", "*", "**", "#"} {
		if !suppressed(s) {
			t.Fatalf("expected %q suppressed", s)
		}
	}
	if suppressed("132270") {
		t.Fatalf("real value flagged as suppressed")
	}
}

func TestParseEstimate(t *testing.T) {
	if v := parseEstimate("132,270"); v == nil || *v != 132270 {
		t.Fatalf("comma value: %v", v)
	}
	if v := parseEstimate("*"); v != nil {
		t.Fatalf("suppressed value should be nil, got %v", *v)
	}
	if v := parseEstimate("not-a-number"); v != nil {
		t.Fatalf("garbage should be nil, got %v", *v)
	}
}

// buildBulkZip builds an in-memory OEWS-style bulk archive: a zip
// holding one xlsx with the national columns.
func buildBulkZip(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef := "A" + strconv.Itoa(i+1)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	xlsx, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("oesm24nat/national_M2024_dl.xlsx")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write(xlsx.Bytes()); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestParseBulkZip(t *testing.T) {
	b := buildBulkZip(t, [][]any{
		{"AREA", "AREA_TITLE", "OCC_CODE", "OCC_TITLE", "O_GROUP", "TOT_EMP", "A_MEAN", "A_MEDIAN", "H_MEAN"},
		{"99", "U.S.", "00-0000", "All Occupations", "total", "151853870", "66450", "48060", "31.95"},
		{"99", "U.S.", "15-1252", "Software Developers", "detailed", "1656880", "138110", "132270", "66.40"},
		{"99", "U.S.", "15-1254", "Web Developers", "detailed", "*", "**", "**", "**"},
	})

	recs, err := parseBulkZip(b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}

	if recs[0].IsDetailed() {
		t.Fatalf("total group row must not be detailed")
	}

	dev := recs[1]
	if !dev.IsDetailed() {
		t.Fatalf("detailed row not recognized")
	}
	if dev.OccCode != "15-1252" || dev.AreaCode != "99" {
		t.Fatalf("unexpected record: %+v", dev)
	}
	if dev.TotalEmployment == nil || *dev.TotalEmployment != 1656880 {
		t.Fatalf("unexpected employment: %v", dev.TotalEmployment)
	}
	if dev.AnnualMedian == nil || *dev.AnnualMedian != 132270 {
		t.Fatalf("unexpected median: %v", dev.AnnualMedian)
	}
	if dev.HourlyMean == nil || *dev.HourlyMean != 66.40 {
		t.Fatalf("unexpected hourly mean: %v", dev.HourlyMean)
	}

	web := recs[2]
	if web.TotalEmployment != nil || web.AnnualMedian != nil {
		t.Fatalf("suppressed row must carry nil estimates: %+v", web)
	}
}

func TestDownloadBulk_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.BulkDownloadBaseURL = srv.URL
	c := NewClient(cfg, nil)

	_, err := c.DownloadBulk(context.Background(), AreaNational, 2031)
	if !errors.Is(err, ErrNoDataForYear) {
		t.Fatalf("expected ErrNoDataForYear, got %v", err)
	}
}

func TestLatestAvailableYear(t *testing.T) {
	published := time.Now().UTC().Year() - 1
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, _ := bulkFileName(AreaNational, published)
		if r.Method == http.MethodHead && r.URL.Path == "/"+name {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.BulkDownloadBaseURL = srv.URL
	c := NewClient(cfg, nil)

	year, err := c.LatestAvailableYear(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if year != published {
		t.Fatalf("expected %d, got %d", published, year)
	}
}
