package transform

import (
	"strings"
	"time"

	"jobtracker/internal/bls"
	"jobtracker/internal/domain/occupation"
	"jobtracker/internal/domain/skill"
	"jobtracker/internal/onet"
)

// NormalizeSOC collapses any SOC or O*NET code variant to the NN-NNNN
// form ("151252" and "15-1252.00" both become "15-1252"). Inputs that
// do not carry six digits come back unchanged.
func NormalizeSOC(code string) string {
	digits := strings.NewReplacer("-", "", ".", "").Replace(strings.TrimSpace(code))
	if len(digits) < 6 {
		return strings.TrimSpace(code)
	}
	return digits[:2] + "-" + digits[2:6]
}

// ONetCode extends a SOC code with the default ".00" suffix used by
// O*NET for the base occupation variant.
func ONetCode(socCode string) string {
	return NormalizeSOC(socCode) + ".00"
}

// Merge combines one BLS record and one O*NET detail set into a single
// occupation keyed by SOC code. Either side may be nil; the missing
// side's fields stay unset, never zero. BLS owns employment and wages,
// O*NET owns skills, job zone and education; the title prefers O*NET.
func Merge(blsRec *bls.Record, details *onet.OccupationDetails, now time.Time) occupation.Occupation {
	var doc occupation.Occupation
	if blsRec != nil {
		doc.SOCCode = NormalizeSOC(blsRec.OccCode)
	} else if details != nil {
		doc.SOCCode = NormalizeSOC(details.Code)
	}
	doc.ID = doc.SOCCode
	doc.LastUpdated = now.UTC().Unix()

	if blsRec != nil {
		ApplyBLS(&doc, *blsRec)
	}
	if details != nil {
		ApplyONet(&doc, details)
	}
	return doc
}

// ApplyBLS overwrites the BLS-owned fields of a document, leaving
// O*NET-owned fields alone so a BLS-only refresh cannot clobber them.
func ApplyBLS(doc *occupation.Occupation, rec bls.Record) {
	if doc.SOCCode == "" {
		doc.SOCCode = NormalizeSOC(rec.OccCode)
		doc.ID = doc.SOCCode
	}
	if doc.Title == "" {
		doc.Title = rec.OccTitle
	}
	doc.OccupationGroup = rec.Group
	if doc.OccupationGroup == "" {
		doc.OccupationGroup = "detailed"
	}

	doc.NationalEmployment = rec.TotalEmployment
	doc.NationalMeanWage = rec.AnnualMean
	doc.NationalMedianWage = rec.AnnualMedian
	doc.HourlyMeanWage = rec.HourlyMean
	doc.HourlyMedianWage = rec.HourlyMedian

	doc.WagePct10 = rec.AnnualPct10
	doc.WagePct25 = rec.AnnualPct25
	doc.WagePct75 = rec.AnnualPct75
	doc.WagePct90 = rec.AnnualPct90

	doc.HourlyPct10 = rec.HourlyPct10
	doc.HourlyPct25 = rec.HourlyPct25
	doc.HourlyPct75 = rec.HourlyPct75
	doc.HourlyPct90 = rec.HourlyPct90
}

// ApplyONet overwrites the O*NET-owned fields of a document, leaving
// BLS-owned fields alone so an O*NET-only refresh cannot clobber them.
func ApplyONet(doc *occupation.Occupation, details *onet.OccupationDetails) {
	if details == nil {
		return
	}
	if doc.SOCCode == "" {
		doc.SOCCode = NormalizeSOC(details.Code)
		doc.ID = doc.SOCCode
	}
	doc.ONetCode = details.Code
	if doc.ONetCode == "" {
		doc.ONetCode = ONetCode(doc.SOCCode)
	}
	if details.Title != "" {
		doc.Title = details.Title
	}
	doc.Description = details.Description

	// job zones are 1-5; a degraded lookup leaves 0, which must stay
	// nil rather than read as a valid zone
	doc.JobZone = nil
	if details.JobZone >= 1 {
		zone := details.JobZone
		doc.JobZone = &zone
	}
	outlook := details.BrightOutlook
	doc.BrightOutlook = &outlook
	doc.EducationLevel = details.EducationLevel
	doc.ExperienceRequired = experienceForJobZone(details.JobZone)

	doc.Skills = ratings(details.Skills, skill.TypeSkill)
	doc.KnowledgeAreas = ratings(details.Knowledge, skill.TypeKnowledge)
	doc.Abilities = ratings(details.Abilities, skill.TypeAbility)

	doc.SkillNames = ratingNames(doc.Skills)
	doc.KnowledgeNames = ratingNames(doc.KnowledgeAreas)
	doc.AbilityNames = ratingNames(doc.Abilities)

	doc.TechnologySkills = doc.TechnologySkills[:0]
	doc.HotTechnologies = doc.HotTechnologies[:0]
	for _, t := range details.TechnologySkills {
		doc.TechnologySkills = append(doc.TechnologySkills, t.Name)
		if t.HotTechnology {
			doc.HotTechnologies = append(doc.HotTechnologies, t.Name)
		}
	}

	doc.Tasks = doc.Tasks[:0]
	for i, t := range details.Tasks {
		if i == maxTasksPerOccupation {
			break
		}
		doc.Tasks = append(doc.Tasks, t.Description)
	}
}

// maxTasksPerOccupation caps the task list at the top entries O*NET
// returns; full task statements add bulk without search value.
const maxTasksPerOccupation = 20

func ratings(elements []onet.ElementRating, category string) []occupation.Rating {
	out := make([]occupation.Rating, 0, len(elements))
	for _, el := range elements {
		out = append(out, occupation.Rating{
			ID:          el.ID,
			Name:        el.Name,
			Description: el.Description,
			Importance:  el.Importance,
			Level:       el.Level,
			Category:    category,
		})
	}
	return out
}

func ratingNames(rs []occupation.Rating) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func experienceForJobZone(zone int) string {
	switch zone {
	case 1:
		return "None required"
	case 2:
		return "Some prior experience helpful"
	case 3:
		return "Previous work experience required"
	case 4:
		return "Considerable work experience"
	case 5:
		return "Extensive work experience required"
	}
	return ""
}
