package bls

import "strings"

// OEWS data type codes used in series IDs.
const (
	DataTypeEmployment   = "01"
	DataTypeHourlyMean   = "03"
	DataTypeAnnualMean   = "04"
	DataTypeHourlyMedian = "08"
	DataTypeAnnualMedian = "13"
)

// SeriesID builds OEWS series identifiers in the BLS format:
// OEUM + area(7) + industry(6) + occupation(6) + data type(2).
type SeriesID struct {
	AreaCode       string
	IndustryCode   string
	OccupationCode string
	DataType       string
}

func (s SeriesID) Build() string {
	area := s.AreaCode
	if area == "" {
		area = "0000000" // national
	}
	industry := s.IndustryCode
	if industry == "" {
		industry = "000000" // cross-industry
	}
	occ := s.OccupationCode
	if occ == "" {
		occ = "000000" // all occupations
	}
	dt := s.DataType
	if dt == "" {
		dt = DataTypeEmployment
	}
	return "OEUM" + area + industry + occ + dt
}

// NationalEmploymentSeries returns the national employment series ID
// for a SOC code.
func NationalEmploymentSeries(socCode string) string {
	return SeriesID{OccupationCode: occupationToken(socCode), DataType: DataTypeEmployment}.Build()
}

// NationalWageSeries returns the national wage series ID for a SOC
// code. wageType is one of annual_mean, annual_median, hourly_mean,
// hourly_median; anything else falls back to annual_median.
func NationalWageSeries(socCode string, wageType string) string {
	dt := DataTypeAnnualMedian
	switch wageType {
	case "annual_mean":
		dt = DataTypeAnnualMean
	case "annual_median":
		dt = DataTypeAnnualMedian
	case "hourly_mean":
		dt = DataTypeHourlyMean
	case "hourly_median":
		dt = DataTypeHourlyMedian
	}
	return SeriesID{OccupationCode: occupationToken(socCode), DataType: dt}.Build()
}

// SeriesValue parses one timeseries observation. Suppressed or
// non-numeric observations come back nil, same as the bulk files.
func SeriesValue(d SeriesData) *float64 {
	return parseEstimate(d.Value)
}

func occupationToken(socCode string) string {
	occ := strings.NewReplacer("-", "", ".", "").Replace(strings.TrimSpace(socCode))
	if len(occ) > 6 {
		occ = occ[:6]
	}
	for len(occ) < 6 {
		occ += "0"
	}
	return occ
}
