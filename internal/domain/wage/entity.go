package wage

const (
	AreaTypeNational = "national"
	AreaTypeState    = "state"
	AreaTypeMetro    = "metro"
)

// ByLocation is one wage observation for one occupation in one
// geography and one data year. The document id is soc_code + "_" +
// area_code. Nil wage fields mean BLS suppressed the estimate.
type ByLocation struct {
	ID              string `json:"id"`
	SOCCode         string `json:"soc_code"`
	OccupationTitle string `json:"occupation_title"`

	AreaType  string `json:"area_type"`
	AreaCode  string `json:"area_code"`
	AreaTitle string `json:"area_title"`
	StateCode string `json:"state_code,omitempty"`
	StateName string `json:"state_name,omitempty"`

	Employment        *int64   `json:"employment,omitempty"`
	EmploymentPer1000 *float64 `json:"employment_per_1000,omitempty"`
	LocationQuotient  *float64 `json:"location_quotient,omitempty"`

	HourlyMeanWage   *float64 `json:"hourly_mean_wage,omitempty"`
	HourlyMedianWage *float64 `json:"hourly_median_wage,omitempty"`
	HourlyPct10      *float64 `json:"hourly_pct_10,omitempty"`
	HourlyPct25      *float64 `json:"hourly_pct_25,omitempty"`
	HourlyPct75      *float64 `json:"hourly_pct_75,omitempty"`
	HourlyPct90      *float64 `json:"hourly_pct_90,omitempty"`

	AnnualMeanWage   *float64 `json:"annual_mean_wage,omitempty"`
	AnnualMedianWage *float64 `json:"annual_median_wage,omitempty"`
	AnnualPct10      *float64 `json:"annual_pct_10,omitempty"`
	AnnualPct25      *float64 `json:"annual_pct_25,omitempty"`
	AnnualPct75      *float64 `json:"annual_pct_75,omitempty"`
	AnnualPct90      *float64 `json:"annual_pct_90,omitempty"`

	DataYear    int   `json:"data_year"`
	LastUpdated int64 `json:"last_updated"`
}
