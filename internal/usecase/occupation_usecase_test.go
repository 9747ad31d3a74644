package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"jobtracker/internal/domain/occupation"
	"jobtracker/internal/index"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func intPtr(v int) *int      { return &v }

type fakeOccupationIndex struct {
	docs        map[string]occupation.Occupation
	searchPage  index.Page[occupation.Occupation]
	searchErr   error
	getCalls    int
	searchCalls int
}

func (f *fakeOccupationIndex) SearchOccupations(ctx context.Context, q index.OccupationQuery) (index.Page[occupation.Occupation], error) {
	f.searchCalls++
	return f.searchPage, f.searchErr
}

func (f *fakeOccupationIndex) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	f.getCalls++
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

type memoryCache struct {
	entries map[string][]byte
	hits    int
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	b, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(b, out)
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.sets++
	m.entries[key] = b
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func developer() occupation.Occupation {
	return occupation.Occupation{
		ID:                 "15-1252",
		SOCCode:            "15-1252",
		Title:              "Software Developers",
		NationalEmployment: i64(1656880),
		NationalMedianWage: f64(132270),
		JobZone:            intPtr(4),
		EducationLevel:     "Bachelor's degree",
		Skills: []occupation.Rating{
			{ID: "2.B.3.e", Name: "Programming", Importance: 4.5, Level: 4.62, Category: "Worker Requirements"},
			{ID: "2.A.1.a", Name: "Reading Comprehension", Importance: 4.0, Level: 4.25, Category: "Worker Requirements"},
		},
		SkillNames: []string{"Programming", "Reading Comprehension"},
	}
}

func nurse() occupation.Occupation {
	return occupation.Occupation{
		ID:                 "29-1141",
		SOCCode:            "29-1141",
		Title:              "Registered Nurses",
		NationalMedianWage: f64(86070),
		JobZone:            intPtr(3),
		Skills: []occupation.Rating{
			{ID: "2.A.1.a", Name: "Reading Comprehension", Importance: 4.12, Level: 4.38, Category: "Worker Requirements"},
			{ID: "2.B.1.a", Name: "Social Perceptiveness", Importance: 4.25, Level: 4.1, Category: "Worker Requirements"},
		},
		KnowledgeAreas: []occupation.Rating{
			{ID: "2.C.5.a", Name: "Medicine and Dentistry", Importance: 4.6, Level: 5.0, Category: "Worker Requirements"},
		},
		SkillNames: []string{"Reading Comprehension", "Social Perceptiveness"},
	}
}

func TestGetBySOC_NormalizesCode(t *testing.T) {
	idx := &fakeOccupationIndex{docs: map[string]occupation.Occupation{"15-1252": developer()}}
	u := NewOccupationUsecase(idx, nil, nil)

	for _, input := range []string{"15-1252", "15-1252.00", " 151252 "} {
		doc, err := u.GetBySOC(context.Background(), input)
		if err != nil {
			t.Fatalf("GetBySOC(%q): %v", input, err)
		}
		if doc.SOCCode != "15-1252" {
			t.Fatalf("GetBySOC(%q) soc = %q", input, doc.SOCCode)
		}
	}
}

func TestGetBySOC_InvalidCode(t *testing.T) {
	u := NewOccupationUsecase(&fakeOccupationIndex{}, nil, nil)

	for _, input := range []string{"", "soc", "1-52", "15-12AB"} {
		if _, err := u.GetBySOC(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("GetBySOC(%q): expected ErrInvalidInput, got %v", input, err)
		}
	}
}

func TestGetBySOC_NotFound(t *testing.T) {
	u := NewOccupationUsecase(&fakeOccupationIndex{}, nil, nil)
	if _, err := u.GetBySOC(context.Background(), "99-9999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetBySOC_CacheHitSkipsIndex(t *testing.T) {
	idx := &fakeOccupationIndex{docs: map[string]occupation.Occupation{"15-1252": developer()}}
	cache := newMemoryCache()
	u := NewOccupationUsecase(idx, cache, nil)

	if _, err := u.GetBySOC(context.Background(), "15-1252"); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := u.GetBySOC(context.Background(), "15-1252"); err != nil {
		t.Fatalf("second read: %v", err)
	}

	if idx.getCalls != 1 {
		t.Fatalf("index reads = %d, want 1", idx.getCalls)
	}
	if cache.hits != 1 || cache.sets != 1 {
		t.Fatalf("cache hits=%d sets=%d", cache.hits, cache.sets)
	}
}

func TestSearch_IndexErrorMapsToInternal(t *testing.T) {
	idx := &fakeOccupationIndex{searchErr: errors.New("typesense unavailable")}
	u := NewOccupationUsecase(idx, nil, nil)

	if _, err := u.Search(context.Background(), index.OccupationQuery{Query: "developer"}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	idx := &fakeOccupationIndex{docs: map[string]occupation.Occupation{
		"15-1252": developer(),
		"29-1141": nurse(),
	}}
	u := NewOccupationUsecase(idx, nil, nil)

	cmp, err := u.Compare(context.Background(), []string{"15-1252.00", "29-1141"})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(cmp.Occupations) != 2 {
		t.Fatalf("got %d entries", len(cmp.Occupations))
	}
	if len(cmp.SharedSkills) != 1 || cmp.SharedSkills[0] != "Reading Comprehension" {
		t.Fatalf("shared skills = %v", cmp.SharedSkills)
	}

	dev := cmp.Occupations[0]
	if dev.SOCCode != "15-1252" {
		t.Fatalf("first entry soc = %q", dev.SOCCode)
	}
	if len(dev.UniqueSkills) != 1 || dev.UniqueSkills[0] != "Programming" {
		t.Fatalf("developer unique skills = %v", dev.UniqueSkills)
	}
	rn := cmp.Occupations[1]
	if len(rn.UniqueSkills) != 1 || rn.UniqueSkills[0] != "Social Perceptiveness" {
		t.Fatalf("nurse unique skills = %v", rn.UniqueSkills)
	}
	if dev.NationalMedianWage == nil || *dev.NationalMedianWage != 132270 {
		t.Fatalf("developer median = %v", dev.NationalMedianWage)
	}
}

func TestCompare_CodeCountBounds(t *testing.T) {
	u := NewOccupationUsecase(&fakeOccupationIndex{}, nil, nil)

	if _, err := u.Compare(context.Background(), []string{"15-1252"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("one code: expected ErrInvalidInput, got %v", err)
	}
	six := []string{"11-1011", "11-1021", "11-2011", "11-2021", "11-2022", "11-3012"}
	if _, err := u.Compare(context.Background(), six); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("six codes: expected ErrInvalidInput, got %v", err)
	}
}

func TestSkillGap(t *testing.T) {
	idx := &fakeOccupationIndex{docs: map[string]occupation.Occupation{
		"15-1252": developer(),
		"29-1141": nurse(),
	}}
	u := NewOccupationUsecase(idx, nil, nil)

	gap, err := u.SkillGap(context.Background(), "15-1252", "29-1141")
	if err != nil {
		t.Fatalf("SkillGap: %v", err)
	}
	if gap.FromCode != "15-1252" || gap.ToCode != "29-1141" {
		t.Fatalf("codes = %s -> %s", gap.FromCode, gap.ToCode)
	}

	// missing skills ordered by descending importance: Medicine and
	// Dentistry (4.6) then Social Perceptiveness (4.25)
	if len(gap.MissingSkills) != 2 {
		t.Fatalf("missing skills = %+v", gap.MissingSkills)
	}
	if gap.MissingSkills[0].Name != "Medicine and Dentistry" || gap.MissingSkills[1].Name != "Social Perceptiveness" {
		t.Fatalf("missing skill order = %q, %q", gap.MissingSkills[0].Name, gap.MissingSkills[1].Name)
	}
	if len(gap.SharedSkills) != 1 || gap.SharedSkills[0] != "Reading Comprehension" {
		t.Fatalf("shared skills = %v", gap.SharedSkills)
	}
}

func TestSkillGap_UnknownTarget(t *testing.T) {
	idx := &fakeOccupationIndex{docs: map[string]occupation.Occupation{"15-1252": developer()}}
	u := NewOccupationUsecase(idx, nil, nil)

	if _, err := u.SkillGap(context.Background(), "15-1252", "99-9999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSkillProfileAndTechnologies(t *testing.T) {
	dev := developer()
	dev.TechnologySkills = []string{"Go", "Git", "PostgreSQL"}
	dev.HotTechnologies = []string{"Go"}
	idx := &fakeOccupationIndex{docs: map[string]occupation.Occupation{"15-1252": dev}}
	u := NewOccupationUsecase(idx, nil, nil)

	profile, err := u.SkillProfile(context.Background(), "15-1252", SkillProfileFilter{})
	if err != nil {
		t.Fatalf("SkillProfile: %v", err)
	}
	if profile.Title != "Software Developers" || len(profile.Skills) != 2 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	filtered, err := u.SkillProfile(context.Background(), "15-1252", SkillProfileFilter{Type: "skill", MinImportance: 4.3})
	if err != nil {
		t.Fatalf("filtered SkillProfile: %v", err)
	}
	if len(filtered.Skills) != 1 || filtered.Skills[0].Name != "Programming" {
		t.Fatalf("filtered skills = %+v", filtered.Skills)
	}
	if len(filtered.KnowledgeAreas) != 0 || len(filtered.Abilities) != 0 {
		t.Fatalf("type filter leaked other groups: %+v", filtered)
	}

	if _, err := u.SkillProfile(context.Background(), "15-1252", SkillProfileFilter{Type: "tools"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown type, got %v", err)
	}

	tech, err := u.Technologies(context.Background(), "15-1252")
	if err != nil {
		t.Fatalf("Technologies: %v", err)
	}
	if len(tech.TechnologySkills) != 3 || len(tech.HotTechnologies) != 1 || tech.HotTechnologies[0] != "Go" {
		t.Fatalf("unexpected technologies: %+v", tech)
	}
}
