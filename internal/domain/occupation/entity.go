package occupation

// Occupation is one merged record keyed by SOC code. BLS owns the
// employment and wage fields, O*NET owns the skills, job zone and
// education fields. A nil pointer means the owning source had no value;
// callers must never read nil as zero.
type Occupation struct {
	ID              string `json:"id"`
	SOCCode         string `json:"soc_code"`
	ONetCode        string `json:"onet_code,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	OccupationGroup string `json:"occupation_group,omitempty"`

	NationalEmployment *int64   `json:"national_employment,omitempty"`
	NationalMeanWage   *float64 `json:"national_mean_wage,omitempty"`
	NationalMedianWage *float64 `json:"national_median_wage,omitempty"`
	HourlyMeanWage     *float64 `json:"hourly_mean_wage,omitempty"`
	HourlyMedianWage   *float64 `json:"hourly_median_wage,omitempty"`

	WagePct10 *float64 `json:"wage_pct_10,omitempty"`
	WagePct25 *float64 `json:"wage_pct_25,omitempty"`
	WagePct75 *float64 `json:"wage_pct_75,omitempty"`
	WagePct90 *float64 `json:"wage_pct_90,omitempty"`

	HourlyPct10 *float64 `json:"hourly_pct_10,omitempty"`
	HourlyPct25 *float64 `json:"hourly_pct_25,omitempty"`
	HourlyPct75 *float64 `json:"hourly_pct_75,omitempty"`
	HourlyPct90 *float64 `json:"hourly_pct_90,omitempty"`

	JobZone            *int     `json:"job_zone,omitempty"`
	BrightOutlook      *bool    `json:"bright_outlook,omitempty"`
	EducationLevel     string   `json:"education_level,omitempty"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
	Skills             []Rating `json:"skills,omitempty"`
	KnowledgeAreas     []Rating `json:"knowledge_areas,omitempty"`
	Abilities          []Rating `json:"abilities,omitempty"`
	TechnologySkills   []string `json:"technology_skills,omitempty"`
	HotTechnologies    []string `json:"hot_technologies,omitempty"`
	Tasks              []string `json:"tasks,omitempty"`

	SkillNames     []string `json:"skill_names,omitempty"`
	KnowledgeNames []string `json:"knowledge_names,omitempty"`
	AbilityNames   []string `json:"ability_names,omitempty"`

	LastUpdated int64 `json:"last_updated"`
}

// Rating is one skill, knowledge area or ability attached to an
// occupation. Importance uses O*NET's IM scale (0-5), Level the LV
// scale (0-7).
type Rating struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Importance  float64 `json:"importance"`
	Level       float64 `json:"level"`
	Category    string  `json:"category"`
}

// HasBLSData reports whether any BLS-owned field is set.
func (o Occupation) HasBLSData() bool {
	return o.NationalEmployment != nil ||
		o.NationalMeanWage != nil ||
		o.NationalMedianWage != nil ||
		o.HourlyMeanWage != nil ||
		o.HourlyMedianWage != nil
}

// HasONetData reports whether any O*NET-owned field is set.
func (o Occupation) HasONetData() bool {
	return o.JobZone != nil ||
		len(o.Skills) > 0 ||
		len(o.KnowledgeAreas) > 0 ||
		len(o.Abilities) > 0 ||
		len(o.TechnologySkills) > 0
}
