package index

import (
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	CollectionOccupations     = "occupations"
	CollectionWagesByLocation = "occupation_wages_by_location"
	CollectionSkills          = "skills"
)

func occupationsSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: CollectionOccupations,
		Fields: []api.Field{
			{Name: "soc_code", Type: "string", Facet: pointer.True()},
			{Name: "onet_code", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "title", Type: "string"},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "occupation_group", Type: "string", Facet: pointer.True(), Optional: pointer.True()},

			{Name: "national_employment", Type: "int64", Optional: pointer.True()},
			{Name: "national_mean_wage", Type: "float", Optional: pointer.True()},
			{Name: "national_median_wage", Type: "float", Optional: pointer.True()},
			{Name: "hourly_mean_wage", Type: "float", Optional: pointer.True()},
			{Name: "hourly_median_wage", Type: "float", Optional: pointer.True()},

			{Name: "wage_pct_10", Type: "float", Optional: pointer.True()},
			{Name: "wage_pct_25", Type: "float", Optional: pointer.True()},
			{Name: "wage_pct_75", Type: "float", Optional: pointer.True()},
			{Name: "wage_pct_90", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_10", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_25", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_75", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_90", Type: "float", Optional: pointer.True()},

			{Name: "job_zone", Type: "int32", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "education_level", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "experience_required", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "bright_outlook", Type: "bool", Facet: pointer.True(), Optional: pointer.True()},

			{Name: "skills", Type: "object[]", Optional: pointer.True()},
			{Name: "knowledge_areas", Type: "object[]", Optional: pointer.True()},
			{Name: "abilities", Type: "object[]", Optional: pointer.True()},

			{Name: "technology_skills", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "hot_technologies", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "tasks", Type: "string[]", Optional: pointer.True()},
			{Name: "skill_names", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "knowledge_names", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "ability_names", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},

			{Name: "last_updated", Type: "int64"},
		},
		DefaultSortingField: pointer.String("last_updated"),
		TokenSeparators:     &[]string{"-", "."},
		EnableNestedFields:  pointer.True(),
	}
}

func wagesByLocationSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: CollectionWagesByLocation,
		Fields: []api.Field{
			{Name: "soc_code", Type: "string", Facet: pointer.True()},
			{Name: "occupation_title", Type: "string"},

			{Name: "area_type", Type: "string", Facet: pointer.True()},
			{Name: "area_code", Type: "string", Facet: pointer.True()},
			{Name: "area_title", Type: "string"},
			{Name: "state_code", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "state_name", Type: "string", Optional: pointer.True()},

			{Name: "employment", Type: "int64", Optional: pointer.True()},
			{Name: "employment_per_1000", Type: "float", Optional: pointer.True()},
			{Name: "location_quotient", Type: "float", Optional: pointer.True()},

			{Name: "hourly_mean_wage", Type: "float", Optional: pointer.True()},
			{Name: "hourly_median_wage", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_10", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_25", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_75", Type: "float", Optional: pointer.True()},
			{Name: "hourly_pct_90", Type: "float", Optional: pointer.True()},

			{Name: "annual_mean_wage", Type: "float", Optional: pointer.True()},
			{Name: "annual_median_wage", Type: "float", Optional: pointer.True()},
			{Name: "annual_pct_10", Type: "float", Optional: pointer.True()},
			{Name: "annual_pct_25", Type: "float", Optional: pointer.True()},
			{Name: "annual_pct_75", Type: "float", Optional: pointer.True()},
			{Name: "annual_pct_90", Type: "float", Optional: pointer.True()},

			{Name: "data_year", Type: "int32", Facet: pointer.True()},
			{Name: "last_updated", Type: "int64"},
		},
		DefaultSortingField: pointer.String("last_updated"),
	}
}

func skillsSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: CollectionSkills,
		Fields: []api.Field{
			{Name: "skill_id", Type: "string"},
			{Name: "skill_name", Type: "string"},
			{Name: "skill_type", Type: "string", Facet: pointer.True()},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "category", Type: "string", Facet: pointer.True()},

			{Name: "related_occupations", Type: "object[]", Optional: pointer.True()},
			{Name: "occupation_count", Type: "int32"},
			{Name: "avg_importance", Type: "float"},
			{Name: "avg_level", Type: "float"},

			{Name: "last_updated", Type: "int64"},
		},
		DefaultSortingField: pointer.String("occupation_count"),
		EnableNestedFields:  pointer.True(),
	}
}

func allSchemas() []*api.CollectionSchema {
	return []*api.CollectionSchema{
		occupationsSchema(),
		wagesByLocationSchema(),
		skillsSchema(),
	}
}
