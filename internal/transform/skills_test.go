package transform

import (
	"testing"
	"time"

	"jobtracker/internal/domain/skill"
	"jobtracker/internal/onet"
)

func TestAggregateSkills(t *testing.T) {
	details := map[string]*onet.OccupationDetails{
		"15-1252": {
			Title: "Software Developers",
			Skills: []onet.ElementRating{
				{ID: "2.A.2.b", Name: "Programming", Description: "Writing computer programs.", Importance: 4.5, Level: 5.0},
				{ID: "2.A.2.a", Name: "Critical Thinking", Importance: 4.0, Level: 4.5},
			},
		},
		"15-1211": {
			Title: "Computer Systems Analysts",
			Skills: []onet.ElementRating{
				{ID: "2.A.2.b", Name: "Programming", Description: "Writing computer programs.", Importance: 3.5, Level: 4.0},
			},
			Knowledge: []onet.ElementRating{
				{ID: "2.C.3.a", Name: "Computers and Electronics", Importance: 4.8, Level: 5.5},
			},
		},
	}

	out := AggregateSkills(details, time.Unix(1700000000, 0))

	if len(out) != 3 {
		t.Fatalf("expected 3 aggregates, got %d", len(out))
	}

	// Sorted by element id.
	if out[0].ID != "2.A.2.a" || out[1].ID != "2.A.2.b" || out[2].ID != "2.C.3.a" {
		t.Fatalf("unexpected order: %s, %s, %s", out[0].ID, out[1].ID, out[2].ID)
	}

	prog := out[1]
	if prog.SkillName != "Programming" || prog.SkillType != skill.TypeSkill {
		t.Fatalf("unexpected aggregate: %+v", prog)
	}
	if prog.OccupationCount != 2 {
		t.Fatalf("expected 2 occupations, got %d", prog.OccupationCount)
	}
	if prog.AvgImportance != 4.0 || prog.AvgLevel != 4.5 {
		t.Fatalf("unexpected averages: %v / %v", prog.AvgImportance, prog.AvgLevel)
	}
	if prog.Category != "Worker Requirements" {
		t.Fatalf("unexpected category: %q", prog.Category)
	}

	// Related occupations sorted by importance descending.
	if len(prog.RelatedOccupations) != 2 || prog.RelatedOccupations[0].Code != "15-1252" {
		t.Fatalf("unexpected related occupations: %+v", prog.RelatedOccupations)
	}

	know := out[2]
	if know.SkillType != skill.TypeKnowledge || know.OccupationCount != 1 {
		t.Fatalf("unexpected knowledge aggregate: %+v", know)
	}
}

func TestAggregateSkills_Empty(t *testing.T) {
	out := AggregateSkills(nil, time.Now())
	if len(out) != 0 {
		t.Fatalf("expected no aggregates, got %d", len(out))
	}
}

func TestCategorizeElement(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"1.A.1.a", "Worker Characteristics"},
		{"2.A.2.b", "Worker Requirements"},
		{"3.A.1", "Experience Requirements"},
		{"4.A.1.a", "Occupational Requirements"},
		{"9.Z.9", "General"},
		{"nodots", "General"},
	}
	for _, c := range cases {
		if got := CategorizeElement(c.id); got != c.want {
			t.Fatalf("CategorizeElement(%q) = %q, want %q", c.id, got, c.want)
		}
	}
}
