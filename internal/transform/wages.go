package transform

import (
	"time"

	"jobtracker/internal/bls"
	"jobtracker/internal/domain/wage"
)

// WageDocument shapes one state or metro bulk row into a wage-by-
// location document. The id is the SOC + area composite so re-runs
// upsert in place.
func WageDocument(rec bls.Record, areaType string, dataYear int, now time.Time) wage.ByLocation {
	socCode := NormalizeSOC(rec.OccCode)

	doc := wage.ByLocation{
		ID:              socCode + "_" + rec.AreaCode,
		SOCCode:         socCode,
		OccupationTitle: rec.OccTitle,

		AreaType:  areaType,
		AreaCode:  rec.AreaCode,
		AreaTitle: rec.AreaTitle,

		Employment:        rec.TotalEmployment,
		EmploymentPer1000: rec.JobsPer1000,
		LocationQuotient:  rec.LocationQuotient,

		HourlyMeanWage:   rec.HourlyMean,
		HourlyMedianWage: rec.HourlyMedian,
		HourlyPct10:      rec.HourlyPct10,
		HourlyPct25:      rec.HourlyPct25,
		HourlyPct75:      rec.HourlyPct75,
		HourlyPct90:      rec.HourlyPct90,

		AnnualMeanWage:   rec.AnnualMean,
		AnnualMedianWage: rec.AnnualMedian,
		AnnualPct10:      rec.AnnualPct10,
		AnnualPct25:      rec.AnnualPct25,
		AnnualPct75:      rec.AnnualPct75,
		AnnualPct90:      rec.AnnualPct90,

		DataYear:    dataYear,
		LastUpdated: now.UTC().Unix(),
	}

	if areaType == wage.AreaTypeState {
		doc.StateName = rec.AreaTitle
		if len(rec.AreaCode) >= 2 {
			doc.StateCode = rec.AreaCode[:2]
		}
	}
	return doc
}
