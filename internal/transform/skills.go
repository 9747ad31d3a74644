package transform

import (
	"math"
	"sort"
	"strings"
	"time"

	"jobtracker/internal/domain/skill"
	"jobtracker/internal/onet"
)

// maxRelatedOccupations bounds the related-occupations list stored on
// each aggregate; common elements like Active Listening appear on
// nearly every occupation.
const maxRelatedOccupations = 50

// AggregateSkills folds per-occupation O*NET details into one document
// per element id, counting how many occupations reference the element
// and averaging importance and level across them.
func AggregateSkills(details map[string]*onet.OccupationDetails, now time.Time) []skill.Aggregate {
	type entry struct {
		name        string
		description string
		skillType   string
		refs        []skill.OccupationRef
	}
	byID := map[string]*entry{}

	add := func(id, name, description, skillType string, ref skill.OccupationRef) {
		e, ok := byID[id]
		if !ok {
			e = &entry{}
			byID[id] = e
		}
		e.name = name
		e.description = description
		e.skillType = skillType
		e.refs = append(e.refs, ref)
	}

	for code, det := range details {
		if det == nil {
			continue
		}
		groups := []struct {
			skillType string
			elements  []onet.ElementRating
		}{
			{skill.TypeSkill, det.Skills},
			{skill.TypeKnowledge, det.Knowledge},
			{skill.TypeAbility, det.Abilities},
		}
		for _, g := range groups {
			for _, el := range g.elements {
				add(el.ID, el.Name, el.Description, g.skillType, skill.OccupationRef{
					Code:       code,
					Title:      det.Title,
					Importance: el.Importance,
					Level:      el.Level,
				})
			}
		}
	}

	ts := now.UTC().Unix()
	out := make([]skill.Aggregate, 0, len(byID))
	for id, e := range byID {
		sort.Slice(e.refs, func(i, j int) bool { return e.refs[i].Importance > e.refs[j].Importance })

		var sumImportance, sumLevel float64
		for _, r := range e.refs {
			sumImportance += r.Importance
			sumLevel += r.Level
		}
		n := float64(len(e.refs))

		refs := e.refs
		if len(refs) > maxRelatedOccupations {
			refs = refs[:maxRelatedOccupations]
		}

		out = append(out, skill.Aggregate{
			ID:                 id,
			SkillID:            id,
			SkillName:          e.name,
			SkillType:          e.skillType,
			Description:        e.description,
			Category:           CategorizeElement(id),
			RelatedOccupations: refs,
			OccupationCount:    len(e.refs),
			AvgImportance:      round2(sumImportance / n),
			AvgLevel:           round2(sumLevel / n),
			LastUpdated:        ts,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CategorizeElement maps an O*NET element id (like "2.A.1.a") to its
// content-model domain by the leading digit.
func CategorizeElement(elementID string) string {
	first, _, found := strings.Cut(elementID, ".")
	if !found {
		return "General"
	}
	switch first {
	case "1":
		return "Worker Characteristics"
	case "2":
		return "Worker Requirements"
	case "3":
		return "Experience Requirements"
	case "4":
		return "Occupational Requirements"
	}
	return "General"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
