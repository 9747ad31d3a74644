package skill

const (
	TypeSkill      = "skill"
	TypeKnowledge  = "knowledge"
	TypeAbility    = "ability"
	TypeTechnology = "technology"
)

// Aggregate is one O*NET element (skill, knowledge area or ability)
// aggregated across all occupations that require it.
type Aggregate struct {
	ID          string `json:"id"`
	SkillID     string `json:"skill_id"`
	SkillName   string `json:"skill_name"`
	SkillType   string `json:"skill_type"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`

	RelatedOccupations []OccupationRef `json:"related_occupations"`
	OccupationCount    int             `json:"occupation_count"`
	AvgImportance      float64         `json:"avg_importance"`
	AvgLevel           float64         `json:"avg_level"`

	LastUpdated int64 `json:"last_updated"`
}

// OccupationRef links an aggregate back to one occupation with the
// importance and level that occupation assigns to the element.
type OccupationRef struct {
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Importance float64 `json:"importance"`
	Level      float64 `json:"level"`
}
