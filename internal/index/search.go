package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"jobtracker/internal/domain/occupation"
	"jobtracker/internal/domain/skill"
	"jobtracker/internal/domain/wage"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

// FacetCount is one value bucket from a faceted field.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Page is a typed slice of one search result page.
type Page[T any] struct {
	Found  int                     `json:"found"`
	Hits   []T                     `json:"hits"`
	Facets map[string][]FacetCount `json:"facets,omitempty"`
}

// OccupationQuery carries the supported occupation search filters. The
// zero value searches everything.
type OccupationQuery struct {
	Query          string
	JobZone        *int
	EducationLevel string
	BrightOutlook  *bool
	MinMedianWage  *float64
	MaxMedianWage  *float64
	Technology     string
	SkillName      string
	SortBy         string
	PerPage        int
	Page           int
}

// FilterBy assembles the Typesense filter expression for the query.
func (q OccupationQuery) FilterBy() string {
	var filters []string
	if q.JobZone != nil {
		filters = append(filters, fmt.Sprintf("job_zone:=%d", *q.JobZone))
	}
	if q.EducationLevel != "" {
		filters = append(filters, "education_level:="+quoteFilterValue(q.EducationLevel))
	}
	if q.BrightOutlook != nil {
		filters = append(filters, fmt.Sprintf("bright_outlook:=%t", *q.BrightOutlook))
	}
	if q.MinMedianWage != nil {
		filters = append(filters, fmt.Sprintf("national_median_wage:>=%g", *q.MinMedianWage))
	}
	if q.MaxMedianWage != nil {
		filters = append(filters, fmt.Sprintf("national_median_wage:<=%g", *q.MaxMedianWage))
	}
	if q.Technology != "" {
		filters = append(filters, "technology_skills:="+quoteFilterValue(q.Technology))
	}
	if q.SkillName != "" {
		filters = append(filters, "skill_names:="+quoteFilterValue(q.SkillName))
	}
	return strings.Join(filters, " && ")
}

// SearchOccupations searches titles, descriptions and skill names with
// the query's filters, faceting on the career-exploration fields.
func (l *Loader) SearchOccupations(ctx context.Context, q OccupationQuery) (Page[occupation.Occupation], error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(orStar(q.Query)),
		QueryBy: pointer.String("title,description,skill_names,technology_skills"),
		FacetBy: pointer.String("job_zone,education_level,bright_outlook"),
		SortBy:  pointer.String(orDefault(q.SortBy, "_text_match:desc,last_updated:desc")),
		Page:    pointer.Int(orMin(q.Page, 1)),
		PerPage: pointer.Int(orMin(q.PerPage, 20)),
	}
	if fb := q.FilterBy(); fb != "" {
		params.FilterBy = pointer.String(fb)
	}
	return search[occupation.Occupation](ctx, l, CollectionOccupations, params)
}

// WageQuery filters the wages-by-location collection.
type WageQuery struct {
	Query     string
	SOCCode   string
	AreaType  string
	StateCode string
	SortBy    string
	PerPage   int
	Page      int
}

func (q WageQuery) FilterBy() string {
	var filters []string
	if q.SOCCode != "" {
		filters = append(filters, "soc_code:="+quoteFilterValue(q.SOCCode))
	}
	if q.AreaType != "" {
		filters = append(filters, "area_type:="+quoteFilterValue(q.AreaType))
	}
	if q.StateCode != "" {
		filters = append(filters, "state_code:="+quoteFilterValue(q.StateCode))
	}
	return strings.Join(filters, " && ")
}

func (l *Loader) SearchWages(ctx context.Context, q WageQuery) (Page[wage.ByLocation], error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(orStar(q.Query)),
		QueryBy: pointer.String("occupation_title,area_title"),
		FacetBy: pointer.String("area_type,state_code"),
		SortBy:  pointer.String(orDefault(q.SortBy, "_text_match:desc,last_updated:desc")),
		Page:    pointer.Int(orMin(q.Page, 1)),
		PerPage: pointer.Int(orMin(q.PerPage, 50)),
	}
	if fb := q.FilterBy(); fb != "" {
		params.FilterBy = pointer.String(fb)
	}
	return search[wage.ByLocation](ctx, l, CollectionWagesByLocation, params)
}

// SkillQuery filters the aggregated skills collection.
type SkillQuery struct {
	Query     string
	SkillType string
	Category  string
	PerPage   int
	Page      int
}

func (q SkillQuery) FilterBy() string {
	var filters []string
	if q.SkillType != "" {
		filters = append(filters, "skill_type:="+quoteFilterValue(q.SkillType))
	}
	if q.Category != "" {
		filters = append(filters, "category:="+quoteFilterValue(q.Category))
	}
	return strings.Join(filters, " && ")
}

func (l *Loader) SearchSkills(ctx context.Context, q SkillQuery) (Page[skill.Aggregate], error) {
	params := &api.SearchCollectionParams{
		Q:       pointer.String(orStar(q.Query)),
		QueryBy: pointer.String("skill_name,description"),
		FacetBy: pointer.String("skill_type,category"),
		SortBy:  pointer.String("occupation_count:desc"),
		Page:    pointer.Int(orMin(q.Page, 1)),
		PerPage: pointer.Int(orMin(q.PerPage, 20)),
	}
	if fb := q.FilterBy(); fb != "" {
		params.FilterBy = pointer.String(fb)
	}
	return search[skill.Aggregate](ctx, l, CollectionSkills, params)
}

func search[T any](ctx context.Context, l *Loader, collection string, params *api.SearchCollectionParams) (Page[T], error) {
	var page Page[T]
	if l == nil || l.client == nil {
		return page, errors.New("nil index loader")
	}

	result, err := l.client.Collection(collection).Documents().Search(ctx, params)
	if err != nil {
		return page, err
	}

	if result.Found != nil {
		page.Found = *result.Found
	}
	if result.Hits != nil {
		page.Hits = make([]T, 0, len(*result.Hits))
		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			var doc T
			if err := remarshal(*hit.Document, &doc); err != nil {
				return page, err
			}
			page.Hits = append(page.Hits, doc)
		}
	}
	page.Facets = facetCounts(result.FacetCounts)
	return page, nil
}

func facetCounts(raw *[]api.FacetCounts) map[string][]FacetCount {
	if raw == nil || len(*raw) == 0 {
		return nil
	}
	out := make(map[string][]FacetCount, len(*raw))
	for _, fc := range *raw {
		if fc.FieldName == nil || fc.Counts == nil {
			continue
		}
		counts := make([]FacetCount, 0, len(*fc.Counts))
		for _, c := range *fc.Counts {
			item := FacetCount{}
			if c.Value != nil {
				item.Value = *c.Value
			}
			if c.Count != nil {
				item.Count = *c.Count
			}
			counts = append(counts, item)
		}
		out[*fc.FieldName] = counts
	}
	return out
}

// remarshal converts a raw document map into a typed struct through its
// JSON tags.
func remarshal(in map[string]any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// quoteFilterValue wraps a user-supplied value in backticks so tokens
// like && or : inside it cannot alter the filter expression. Backticks
// themselves have no escape in the filter syntax and are stripped.
func quoteFilterValue(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "") + "`"
}

func orStar(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return "*"
	}
	return q
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func orMin(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
