package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"sort"
	"strings"

	"jobtracker/internal/domain/occupation"
	"jobtracker/internal/index"
	"jobtracker/internal/transform"
)

var socCodeRe = regexp.MustCompile(`^\d{2}-\d{4}$`)

// OccupationIndex is the slice of the index the occupation reads need.
type OccupationIndex interface {
	SearchOccupations(ctx context.Context, q index.OccupationQuery) (index.Page[occupation.Occupation], error)
	GetDocument(ctx context.Context, collection, id string) (map[string]any, error)
}

type OccupationUsecase interface {
	Search(ctx context.Context, q index.OccupationQuery) (index.Page[occupation.Occupation], error)
	GetBySOC(ctx context.Context, code string) (occupation.Occupation, error)
	SkillProfile(ctx context.Context, code string, f SkillProfileFilter) (SkillProfile, error)
	Technologies(ctx context.Context, code string) (TechnologyProfile, error)
	Compare(ctx context.Context, codes []string) (Comparison, error)
	SkillGap(ctx context.Context, fromCode, toCode string) (SkillGap, error)
}

type Occupation struct {
	idx   OccupationIndex
	cache SearchCache
	log   *log.Logger
}

func NewOccupationUsecase(idx OccupationIndex, cache SearchCache, logger *log.Logger) *Occupation {
	if logger == nil {
		logger = log.Default()
	}
	return &Occupation{idx: idx, cache: cache, log: logger}
}

func (u *Occupation) Search(ctx context.Context, q index.OccupationQuery) (index.Page[occupation.Occupation], error) {
	key := OccupationsSearchCacheKey(q)

	var cached index.Page[occupation.Occupation]
	if u.cache != nil {
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	page, err := u.idx.SearchOccupations(ctx, q)
	if err != nil {
		u.log.Printf("usecase=occupation op=search status=error err=%v", err)
		return index.Page[occupation.Occupation]{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, page, 0)
	}
	return page, nil
}

func (u *Occupation) GetBySOC(ctx context.Context, code string) (occupation.Occupation, error) {
	soc, err := validSOC(code)
	if err != nil {
		return occupation.Occupation{}, err
	}

	key := OccupationDetailCacheKey(soc)
	var cached occupation.Occupation
	if u.cache != nil {
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	doc, err := u.fetch(ctx, soc)
	if err != nil {
		return occupation.Occupation{}, err
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, doc, 0)
	}
	return doc, nil
}

// SkillProfile groups an occupation's rated elements by type.
type SkillProfile struct {
	SOCCode        string              `json:"soc_code"`
	Title          string              `json:"title"`
	Skills         []occupation.Rating `json:"skills"`
	KnowledgeAreas []occupation.Rating `json:"knowledge_areas"`
	Abilities      []occupation.Rating `json:"abilities"`
}

// SkillProfileFilter narrows a profile to one element type and a
// minimum importance. The zero value keeps everything.
type SkillProfileFilter struct {
	Type          string
	MinImportance float64
}

func (u *Occupation) SkillProfile(ctx context.Context, code string, f SkillProfileFilter) (SkillProfile, error) {
	doc, err := u.GetBySOC(ctx, code)
	if err != nil {
		return SkillProfile{}, err
	}

	profile := SkillProfile{SOCCode: doc.SOCCode, Title: doc.Title}
	switch f.Type {
	case "":
		profile.Skills = doc.Skills
		profile.KnowledgeAreas = doc.KnowledgeAreas
		profile.Abilities = doc.Abilities
	case "skill":
		profile.Skills = doc.Skills
	case "knowledge":
		profile.KnowledgeAreas = doc.KnowledgeAreas
	case "ability":
		profile.Abilities = doc.Abilities
	default:
		return SkillProfile{}, ErrInvalidInput
	}

	if f.MinImportance > 0 {
		profile.Skills = minImportance(profile.Skills, f.MinImportance)
		profile.KnowledgeAreas = minImportance(profile.KnowledgeAreas, f.MinImportance)
		profile.Abilities = minImportance(profile.Abilities, f.MinImportance)
	}
	return profile, nil
}

func minImportance(ratings []occupation.Rating, min float64) []occupation.Rating {
	var out []occupation.Rating
	for _, r := range ratings {
		if r.Importance >= min {
			out = append(out, r)
		}
	}
	return out
}

// TechnologyProfile lists an occupation's technology skills, with the
// hot technologies called out separately.
type TechnologyProfile struct {
	SOCCode          string   `json:"soc_code"`
	Title            string   `json:"title"`
	TechnologySkills []string `json:"technology_skills"`
	HotTechnologies  []string `json:"hot_technologies"`
}

func (u *Occupation) Technologies(ctx context.Context, code string) (TechnologyProfile, error) {
	doc, err := u.GetBySOC(ctx, code)
	if err != nil {
		return TechnologyProfile{}, err
	}
	return TechnologyProfile{
		SOCCode:          doc.SOCCode,
		Title:            doc.Title,
		TechnologySkills: doc.TechnologySkills,
		HotTechnologies:  doc.HotTechnologies,
	}, nil
}

// ComparisonEntry is one occupation's summary inside a comparison.
type ComparisonEntry struct {
	SOCCode            string   `json:"soc_code"`
	Title              string   `json:"title"`
	NationalMedianWage *float64 `json:"national_median_wage,omitempty"`
	NationalEmployment *int64   `json:"national_employment,omitempty"`
	JobZone            *int     `json:"job_zone,omitempty"`
	EducationLevel     string   `json:"education_level,omitempty"`
	TopSkills          []string `json:"top_skills,omitempty"`
	UniqueSkills       []string `json:"unique_skills,omitempty"`
}

// Comparison puts two to five occupations side by side.
type Comparison struct {
	Occupations  []ComparisonEntry `json:"occupations"`
	SharedSkills []string          `json:"shared_skills"`
}

const (
	minCompareCodes = 2
	maxCompareCodes = 5
	topSkillCount   = 10
)

func (u *Occupation) Compare(ctx context.Context, codes []string) (Comparison, error) {
	if len(codes) < minCompareCodes || len(codes) > maxCompareCodes {
		return Comparison{}, ErrInvalidInput
	}

	key := OccupationsCompareCacheKey(codes)
	var cached Comparison
	if u.cache != nil {
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	docs := make([]occupation.Occupation, 0, len(codes))
	for _, code := range codes {
		doc, err := u.GetBySOC(ctx, code)
		if err != nil {
			return Comparison{}, err
		}
		docs = append(docs, doc)
	}

	skillSets := make([]map[string]bool, len(docs))
	for i, doc := range docs {
		set := make(map[string]bool, len(doc.SkillNames))
		for _, name := range doc.SkillNames {
			set[name] = true
		}
		skillSets[i] = set
	}

	cmp := Comparison{
		Occupations:  make([]ComparisonEntry, 0, len(docs)),
		SharedSkills: sharedNames(skillSets, docs),
	}
	for i, doc := range docs {
		entry := ComparisonEntry{
			SOCCode:            doc.SOCCode,
			Title:              doc.Title,
			NationalMedianWage: doc.NationalMedianWage,
			NationalEmployment: doc.NationalEmployment,
			JobZone:            doc.JobZone,
			EducationLevel:     doc.EducationLevel,
			TopSkills:          topN(doc.SkillNames, topSkillCount),
			UniqueSkills:       uniqueNames(doc.SkillNames, skillSets, i),
		}
		cmp.Occupations = append(cmp.Occupations, entry)
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, cmp, 0)
	}
	return cmp, nil
}

// SkillGapItem is one skill the target occupation rates but the source
// occupation lacks.
type SkillGapItem struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
	Level      float64 `json:"level"`
	Category   string  `json:"category"`
}

type SkillGap struct {
	FromCode      string         `json:"from_code"`
	FromTitle     string         `json:"from_title"`
	ToCode        string         `json:"to_code"`
	ToTitle       string         `json:"to_title"`
	MissingSkills []SkillGapItem `json:"missing_skills"`
	SharedSkills  []string       `json:"shared_skills"`
}

// SkillGap lists, by descending importance, what the target occupation
// requires that the source occupation does not.
func (u *Occupation) SkillGap(ctx context.Context, fromCode, toCode string) (SkillGap, error) {
	from, err := u.GetBySOC(ctx, fromCode)
	if err != nil {
		return SkillGap{}, err
	}
	to, err := u.GetBySOC(ctx, toCode)
	if err != nil {
		return SkillGap{}, err
	}

	have := make(map[string]bool, len(from.Skills)+len(from.KnowledgeAreas))
	for _, r := range from.Skills {
		have[r.Name] = true
	}
	for _, r := range from.KnowledgeAreas {
		have[r.Name] = true
	}

	gap := SkillGap{
		FromCode:  from.SOCCode,
		FromTitle: from.Title,
		ToCode:    to.SOCCode,
		ToTitle:   to.Title,
	}
	for _, r := range append(append([]occupation.Rating{}, to.Skills...), to.KnowledgeAreas...) {
		if have[r.Name] {
			gap.SharedSkills = append(gap.SharedSkills, r.Name)
			continue
		}
		gap.MissingSkills = append(gap.MissingSkills, SkillGapItem{
			Name:       r.Name,
			Importance: r.Importance,
			Level:      r.Level,
			Category:   r.Category,
		})
	}
	sort.SliceStable(gap.MissingSkills, func(i, j int) bool {
		return gap.MissingSkills[i].Importance > gap.MissingSkills[j].Importance
	})
	sort.Strings(gap.SharedSkills)
	return gap, nil
}

func (u *Occupation) fetch(ctx context.Context, soc string) (occupation.Occupation, error) {
	raw, err := u.idx.GetDocument(ctx, index.CollectionOccupations, soc)
	if err != nil {
		if errors.Is(err, index.ErrDocumentNotFound) {
			return occupation.Occupation{}, ErrNotFound
		}
		u.log.Printf("usecase=occupation op=get soc=%s status=error err=%v", soc, err)
		return occupation.Occupation{}, ErrInternal
	}

	var doc occupation.Occupation
	b, err := json.Marshal(raw)
	if err != nil {
		return occupation.Occupation{}, ErrInternal
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return occupation.Occupation{}, ErrInternal
	}
	return doc, nil
}

// validSOC normalizes user input to the NN-NNNN form, accepting O*NET
// style codes like "15-1252.00" as well.
func validSOC(code string) (string, error) {
	soc := transform.NormalizeSOC(strings.TrimSpace(code))
	if !socCodeRe.MatchString(soc) {
		return "", ErrInvalidInput
	}
	return soc, nil
}

func topN(names []string, n int) []string {
	if len(names) <= n {
		return names
	}
	return names[:n]
}

func sharedNames(sets []map[string]bool, docs []occupation.Occupation) []string {
	if len(docs) == 0 {
		return nil
	}
	var shared []string
	for _, name := range docs[0].SkillNames {
		inAll := true
		for _, set := range sets[1:] {
			if !set[name] {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, name)
		}
	}
	return shared
}

func uniqueNames(names []string, sets []map[string]bool, self int) []string {
	var unique []string
	for _, name := range names {
		found := false
		for i, set := range sets {
			if i == self {
				continue
			}
			if set[name] {
				found = true
				break
			}
		}
		if !found {
			unique = append(unique, name)
		}
	}
	return unique
}
