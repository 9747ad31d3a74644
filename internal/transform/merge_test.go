package transform

import (
	"testing"
	"time"

	"jobtracker/internal/bls"
	"jobtracker/internal/onet"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestNormalizeSOC(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15-1252", "15-1252"},
		{"151252", "15-1252"},
		{"15-1252.00", "15-1252"},
		{" 29-1141.03 ", "29-1141"},
		{"15-12", "15-12"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeSOC(c.in); got != c.want {
			t.Fatalf("NormalizeSOC(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestONetCode(t *testing.T) {
	if got := ONetCode("15-1252"); got != "15-1252.00" {
		t.Fatalf("unexpected code: %q", got)
	}
}

func TestMerge_BothSources(t *testing.T) {
	rec := bls.Record{
		OccCode:         "15-1252",
		OccTitle:        "Software Developers",
		Group:           "detailed",
		TotalEmployment: i64(1656880),
		AnnualMean:      f64(138110),
		AnnualMedian:    f64(132270),
	}
	details := &onet.OccupationDetails{
		Code:           "15-1252.00",
		Title:          "Software Developers",
		Description:    "Research, design, and develop computer software.",
		JobZone:        4,
		BrightOutlook:  true,
		EducationLevel: "Bachelor's degree",
		Skills: []onet.ElementRating{
			{ID: "2.A.2.b", Name: "Programming", Importance: 4.5, Level: 5.2},
			{ID: "2.A.2.a", Name: "Critical Thinking", Importance: 4.1, Level: 4.9},
		},
		TechnologySkills: []onet.TechnologySkill{
			{Name: "Go", HotTechnology: true},
			{Name: "Subversion", HotTechnology: false},
		},
	}

	doc := Merge(&rec, details, time.Unix(1700000000, 0))

	if doc.ID != "15-1252" || doc.SOCCode != "15-1252" {
		t.Fatalf("unexpected id/soc: %q/%q", doc.ID, doc.SOCCode)
	}
	if doc.ONetCode != "15-1252.00" {
		t.Fatalf("unexpected onet code: %q", doc.ONetCode)
	}
	if doc.NationalEmployment == nil || *doc.NationalEmployment != 1656880 {
		t.Fatalf("unexpected employment: %v", doc.NationalEmployment)
	}
	if doc.NationalMedianWage == nil || *doc.NationalMedianWage != 132270 {
		t.Fatalf("unexpected median wage: %v", doc.NationalMedianWage)
	}
	if doc.JobZone == nil || *doc.JobZone != 4 {
		t.Fatalf("unexpected job zone: %v", doc.JobZone)
	}
	if doc.BrightOutlook == nil || !*doc.BrightOutlook {
		t.Fatalf("expected bright outlook")
	}
	if doc.ExperienceRequired != "Considerable work experience" {
		t.Fatalf("unexpected experience: %q", doc.ExperienceRequired)
	}
	if len(doc.SkillNames) != 2 || doc.SkillNames[0] != "Programming" {
		t.Fatalf("unexpected skill names: %v", doc.SkillNames)
	}
	if len(doc.HotTechnologies) != 1 || doc.HotTechnologies[0] != "Go" {
		t.Fatalf("unexpected hot technologies: %v", doc.HotTechnologies)
	}
	if doc.LastUpdated != 1700000000 {
		t.Fatalf("unexpected last_updated: %d", doc.LastUpdated)
	}
}

func TestMerge_BLSOnly(t *testing.T) {
	rec := bls.Record{
		OccCode:      "53-3032",
		OccTitle:     "Heavy and Tractor-Trailer Truck Drivers",
		AnnualMedian: f64(54320),
	}

	doc := Merge(&rec, nil, time.Now())

	if doc.SOCCode != "53-3032" {
		t.Fatalf("unexpected soc: %q", doc.SOCCode)
	}
	if doc.Title != "Heavy and Tractor-Trailer Truck Drivers" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if doc.JobZone != nil || doc.BrightOutlook != nil {
		t.Fatalf("expected nil job zone and outlook on a BLS-only record")
	}
	if len(doc.Skills) != 0 || doc.EducationLevel != "" {
		t.Fatalf("expected empty skill fields on a BLS-only record")
	}
}

func TestMerge_ONetOnly(t *testing.T) {
	details := &onet.OccupationDetails{
		Code:    "15-1252.00",
		Title:   "Software Developers",
		JobZone: 4,
	}

	doc := Merge(nil, details, time.Now())

	if doc.SOCCode != "15-1252" {
		t.Fatalf("unexpected soc: %q", doc.SOCCode)
	}
	if doc.NationalEmployment != nil || doc.NationalMedianWage != nil {
		t.Fatalf("expected nil wage fields on an O*NET-only record")
	}
}

// A BLS pass over a merged document must not clobber the O*NET side,
// and vice versa.
func TestApply_Ownership(t *testing.T) {
	details := &onet.OccupationDetails{
		Code:    "15-1252.00",
		Title:   "Software Developers",
		JobZone: 4,
		Skills:  []onet.ElementRating{{ID: "2.A.2.b", Name: "Programming", Importance: 4.5, Level: 5.2}},
	}
	rec := bls.Record{OccCode: "15-1252", OccTitle: "Software Developers", AnnualMedian: f64(132270)}

	doc := Merge(nil, details, time.Now())
	ApplyBLS(&doc, rec)

	if len(doc.Skills) != 1 || doc.JobZone == nil || *doc.JobZone != 4 {
		t.Fatalf("BLS refresh clobbered O*NET fields: %+v", doc)
	}
	if doc.NationalMedianWage == nil || *doc.NationalMedianWage != 132270 {
		t.Fatalf("BLS fields not applied")
	}

	ApplyONet(&doc, details)
	if doc.NationalMedianWage == nil || *doc.NationalMedianWage != 132270 {
		t.Fatalf("O*NET refresh clobbered BLS fields")
	}
}

// A degraded job-zone lookup leaves details.JobZone at 0, which is not
// a valid zone; the document must carry nil, not a pointer to zero.
func TestApplyONet_MissingJobZone(t *testing.T) {
	details := &onet.OccupationDetails{
		Code:   "15-1252.00",
		Title:  "Software Developers",
		Skills: []onet.ElementRating{{ID: "2.A.2.b", Name: "Programming", Importance: 4.5, Level: 5.2}},
	}

	doc := Merge(nil, details, time.Now())

	if doc.JobZone != nil {
		t.Fatalf("job zone = %d, want nil", *doc.JobZone)
	}
	if doc.ExperienceRequired != "" {
		t.Fatalf("experience = %q, want empty", doc.ExperienceRequired)
	}
	if len(doc.Skills) != 1 {
		t.Fatalf("skills lost: %+v", doc.Skills)
	}
}

func TestMerge_TitlePrefersONet(t *testing.T) {
	rec := bls.Record{OccCode: "15-1252", OccTitle: "Software Developers, Applications"}
	details := &onet.OccupationDetails{Code: "15-1252.00", Title: "Software Developers"}

	doc := Merge(&rec, details, time.Now())
	if doc.Title != "Software Developers" {
		t.Fatalf("expected O*NET title to win, got %q", doc.Title)
	}
}

func TestExperienceForJobZone(t *testing.T) {
	if got := experienceForJobZone(1); got != "None required" {
		t.Fatalf("zone 1: %q", got)
	}
	if got := experienceForJobZone(5); got != "Extensive work experience required" {
		t.Fatalf("zone 5: %q", got)
	}
	if got := experienceForJobZone(0); got != "" {
		t.Fatalf("zone 0: %q", got)
	}
}
