package bls

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	AreaNational = "national"
	AreaState    = "state"
	AreaMetro    = "metro"
)

var ErrNoDataForYear = errors.New("no bulk data published for year")

// Record is one row of an OEWS bulk file. Wage and employment fields
// are nil when BLS suppressed the estimate ("*", "**" or "#").
type Record struct {
	AreaCode  string
	AreaTitle string
	OccCode   string
	OccTitle  string
	Group     string

	TotalEmployment  *int64
	JobsPer1000      *float64
	LocationQuotient *float64

	HourlyMean   *float64
	HourlyMedian *float64
	HourlyPct10  *float64
	HourlyPct25  *float64
	HourlyPct75  *float64
	HourlyPct90  *float64

	AnnualMean   *float64
	AnnualMedian *float64
	AnnualPct10  *float64
	AnnualPct25  *float64
	AnnualPct75  *float64
	AnnualPct90  *float64
}

// IsDetailed reports whether the row is a detailed occupation rather
// than a major/minor/broad group aggregate.
func (r Record) IsDetailed() bool {
	return r.Group == "" || strings.EqualFold(r.Group, "detailed")
}

func bulkFileName(areaType string, year int) (string, error) {
	suffix := strconv.Itoa(year % 100)
	if year%100 < 10 {
		suffix = "0" + suffix
	}
	switch areaType {
	case AreaNational:
		return "oesm" + suffix + "nat.zip", nil
	case AreaState:
		return "oesm" + suffix + "st.zip", nil
	case AreaMetro:
		return "oesm" + suffix + "ma.zip", nil
	}
	return "", fmt.Errorf("invalid area type: %s", areaType)
}

// DownloadBulk downloads one OEWS bulk ZIP and parses the embedded
// spreadsheet into records.
func (c *Client) DownloadBulk(ctx context.Context, areaType string, year int) ([]Record, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil bls client")
	}

	name, err := bulkFileName(areaType, year)
	if err != nil {
		return nil, err
	}
	url := strings.TrimRight(c.cfg.BulkDownloadBaseURL, "/") + "/" + name
	c.logger.Printf("[BLS] Downloading bulk file url=%s", url)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Bulk files run to tens of megabytes; the API timeout is too tight.
	dl := *c.client
	dl.Timeout = 2 * time.Minute

	resp, err := dl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", ErrNoDataForYear, year)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bulk download failed: status=%d url=%s", resp.StatusCode, url)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseBulkZip(b)
}

// LatestAvailableYear probes the bulk download site for the most recent
// published OEWS data year, walking back from the current year.
func (c *Client) LatestAvailableYear(ctx context.Context) (int, error) {
	if c == nil || c.client == nil {
		return 0, errors.New("nil bls client")
	}

	now := time.Now().UTC().Year()
	for year := now; year >= now-3; year-- {
		name, err := bulkFileName(AreaNational, year)
		if err != nil {
			return 0, err
		}
		url := strings.TrimRight(c.cfg.BulkDownloadBaseURL, "/") + "/" + name

		if err := c.limiter.Wait(ctx); err != nil {
			return 0, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return 0, err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return 0, err
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return year, nil
		}
		if resp.StatusCode != http.StatusNotFound {
			return 0, fmt.Errorf("bulk probe failed: status=%d url=%s", resp.StatusCode, url)
		}
	}
	return 0, ErrNoDataForYear
}

func parseBulkZip(b []byte) ([]Record, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}

	var sheet *zip.File
	for _, f := range zr.File {
		lower := strings.ToLower(f.Name)
		if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
			sheet = f
			break
		}
	}
	if sheet == nil {
		return nil, errors.New("no spreadsheet found in bulk archive")
	}

	rc, err := sheet.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return parseWorkbook(data)
}

func parseWorkbook(data []byte) ([]Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("workbook has no data rows")
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	if _, ok := col["OCC_CODE"]; !ok {
		return nil, errors.New("workbook missing OCC_CODE column")
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		occ := cell(row, "OCC_CODE")
		if occ == "" {
			continue
		}
		out = append(out, Record{
			AreaCode:  cell(row, "AREA"),
			AreaTitle: cell(row, "AREA_TITLE"),
			OccCode:   occ,
			OccTitle:  cell(row, "OCC_TITLE"),
			Group:     cell(row, "O_GROUP"),

			TotalEmployment:  parseCount(cell(row, "TOT_EMP")),
			JobsPer1000:      parseEstimate(cell(row, "JOBS_1000")),
			LocationQuotient: parseEstimate(cell(row, "LOC_QUOTIENT")),

			HourlyMean:   parseEstimate(cell(row, "H_MEAN")),
			HourlyMedian: parseEstimate(cell(row, "H_MEDIAN")),
			HourlyPct10:  parseEstimate(cell(row, "H_PCT10")),
			HourlyPct25:  parseEstimate(cell(row, "H_PCT25")),
			HourlyPct75:  parseEstimate(cell(row, "H_PCT75")),
			HourlyPct90:  parseEstimate(cell(row, "H_PCT90")),

			AnnualMean:   parseEstimate(cell(row, "A_MEAN")),
			AnnualMedian: parseEstimate(cell(row, "A_MEDIAN")),
			AnnualPct10:  parseEstimate(cell(row, "A_PCT10")),
			AnnualPct25:  parseEstimate(cell(row, "A_PCT25")),
			AnnualPct75:  parseEstimate(cell(row, "A_PCT75")),
			AnnualPct90:  parseEstimate(cell(row, "A_PCT90")),
		})
	}
	return out, nil
}

// suppressed marks estimates BLS withholds: "*" too small, "**" wage
// above publication range, "#" employment above range.
func suppressed(s string) bool {
	switch s {
	case "", "*", "**", "#":
		return true
	}
	return false
}

func parseEstimate(s string) *float64 {
	if suppressed(s) {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseCount(s string) *int64 {
	f := parseEstimate(s)
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}
