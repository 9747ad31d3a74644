package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"jobtracker/internal/domain/skill"
	"jobtracker/internal/index"
)

type fakeSkillIndex struct {
	docs        map[string]skill.Aggregate
	page        index.Page[skill.Aggregate]
	err         error
	searchCalls int
}

func (f *fakeSkillIndex) SearchSkills(ctx context.Context, q index.SkillQuery) (index.Page[skill.Aggregate], error) {
	f.searchCalls++
	return f.page, f.err
}

func (f *fakeSkillIndex) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, index.ErrDocumentNotFound
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func programming() skill.Aggregate {
	return skill.Aggregate{
		ID:              "2.B.3.e",
		SkillID:         "2.B.3.e",
		SkillName:       "Programming",
		SkillType:       skill.TypeSkill,
		Category:        "Worker Requirements",
		OccupationCount: 42,
		AvgImportance:   3.9,
		AvgLevel:        4.1,
		RelatedOccupations: []skill.OccupationRef{
			{Code: "15-1252", Title: "Software Developers", Importance: 4.5, Level: 4.62},
		},
	}
}

func TestSkillGetByID(t *testing.T) {
	idx := &fakeSkillIndex{docs: map[string]skill.Aggregate{"2.B.3.e": programming()}}
	u := NewSkillUsecase(idx, nil, nil)

	agg, err := u.GetByID(context.Background(), " 2.B.3.e ")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if agg.SkillName != "Programming" || agg.OccupationCount != 42 {
		t.Fatalf("unexpected aggregate: %+v", agg)
	}
	if len(agg.RelatedOccupations) != 1 || agg.RelatedOccupations[0].Code != "15-1252" {
		t.Fatalf("related occupations = %+v", agg.RelatedOccupations)
	}
}

func TestSkillGetByID_Invalid(t *testing.T) {
	u := NewSkillUsecase(&fakeSkillIndex{}, nil, nil)
	if _, err := u.GetByID(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSkillGetByID_NotFound(t *testing.T) {
	u := NewSkillUsecase(&fakeSkillIndex{}, nil, nil)
	if _, err := u.GetByID(context.Background(), "9.Z.9.z"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSkillSearch_Cached(t *testing.T) {
	idx := &fakeSkillIndex{page: index.Page[skill.Aggregate]{Found: 1, Hits: []skill.Aggregate{programming()}}}
	cache := newMemoryCache()
	u := NewSkillUsecase(idx, cache, nil)

	q := index.SkillQuery{Query: "programming", SkillType: skill.TypeSkill, PerPage: 10, Page: 1}
	if _, err := u.Search(context.Background(), q); err != nil {
		t.Fatalf("first search: %v", err)
	}
	page, err := u.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("second search: %v", err)
	}

	if idx.searchCalls != 1 {
		t.Fatalf("index searches = %d, want 1", idx.searchCalls)
	}
	if page.Found != 1 || page.Hits[0].SkillName != "Programming" {
		t.Fatalf("unexpected cached page: %+v", page)
	}
}
