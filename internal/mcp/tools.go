package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"jobtracker/internal/index"
	"jobtracker/internal/usecase"

	"github.com/mark3labs/mcp-go/mcp"
)

// SearchOccupationsTool exposes occupation search to MCP clients.
type SearchOccupationsTool struct {
	uc usecase.OccupationUsecase
}

func NewSearchOccupationsTool(uc usecase.OccupationUsecase) *SearchOccupationsTool {
	return &SearchOccupationsTool{uc: uc}
}

func (t *SearchOccupationsTool) Definition() mcp.Tool {
	return mcp.NewTool("search_occupations",
		mcp.WithDescription("Search US occupations by title, description, skill or technology. Returns employment, wages, job zone and education level per match."),
		mcp.WithString("query", mcp.Description("Free-text search, e.g. 'software developer' or 'welding'")),
		mcp.WithNumber("job_zone", mcp.Description("Filter by O*NET job zone 1-5 (5 needs the most preparation)")),
		mcp.WithString("education", mcp.Description("Filter by typical education level, e.g. \"Bachelor's degree\"")),
		mcp.WithBoolean("bright_outlook", mcp.Description("Only occupations flagged as bright outlook")),
		mcp.WithNumber("min_wage", mcp.Description("Minimum annual median wage in USD")),
		mcp.WithNumber("max_wage", mcp.Description("Maximum annual median wage in USD")),
		mcp.WithNumber("limit", mcp.Description("Max results, default 10")),
	)
}

func (t *SearchOccupationsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := index.OccupationQuery{
		Query:          request.GetString("query", ""),
		EducationLevel: request.GetString("education", ""),
		PerPage:        request.GetInt("limit", 10),
		Page:           1,
	}
	if v := request.GetInt("job_zone", 0); v > 0 {
		q.JobZone = &v
	}
	if v := request.GetFloat("min_wage", 0); v > 0 {
		q.MinMedianWage = &v
	}
	if v := request.GetFloat("max_wage", 0); v > 0 {
		q.MaxMedianWage = &v
	}
	if request.GetBool("bright_outlook", false) {
		v := true
		q.BrightOutlook = &v
	}

	page, err := t.uc.Search(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(page)
}

// OccupationDetailsTool returns the full merged record for one SOC code.
type OccupationDetailsTool struct {
	uc usecase.OccupationUsecase
}

func NewOccupationDetailsTool(uc usecase.OccupationUsecase) *OccupationDetailsTool {
	return &OccupationDetailsTool{uc: uc}
}

func (t *OccupationDetailsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_occupation_details",
		mcp.WithDescription("Get the full record for one occupation: national employment and wages, skills, knowledge areas, abilities, technologies, tasks, job zone and education."),
		mcp.WithString("code", mcp.Required(), mcp.Description("SOC code like '15-1252' or O*NET code like '15-1252.00'")),
	)
}

func (t *OccupationDetailsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := t.uc.GetBySOC(ctx, code)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(doc)
}

// WagesByLocationTool answers geographic wage questions.
type WagesByLocationTool struct {
	uc usecase.WageUsecase
}

func NewWagesByLocationTool(uc usecase.WageUsecase) *WagesByLocationTool {
	return &WagesByLocationTool{uc: uc}
}

func (t *WagesByLocationTool) Definition() mcp.Tool {
	return mcp.NewTool("get_wages_by_location",
		mcp.WithDescription("Get wages for one occupation by geography. Without filters returns a summary with the national figure and the best-paying states and metro areas."),
		mcp.WithString("soc_code", mcp.Required(), mcp.Description("SOC code like '29-1141'")),
		mcp.WithString("area_type", mcp.Description("Restrict to 'national', 'state' or 'metro' rows")),
		mcp.WithString("state", mcp.Description("Two-digit state FIPS code, e.g. '06' for California")),
	)
}

func (t *WagesByLocationTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	soc, err := request.RequireString("soc_code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	areaType := request.GetString("area_type", "")
	state := request.GetString("state", "")

	if areaType == "" && state == "" {
		summary, err := t.uc.Summary(ctx, soc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(summary)
	}

	page, err := t.uc.Search(ctx, index.WageQuery{
		SOCCode:   soc,
		AreaType:  areaType,
		StateCode: state,
		SortBy:    "annual_median_wage:desc",
		PerPage:   20,
		Page:      1,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(page)
}

// SearchSkillsTool searches the aggregated skills collection.
type SearchSkillsTool struct {
	uc usecase.SkillUsecase
}

func NewSearchSkillsTool(uc usecase.SkillUsecase) *SearchSkillsTool {
	return &SearchSkillsTool{uc: uc}
}

func (t *SearchSkillsTool) Definition() mcp.Tool {
	return mcp.NewTool("search_skills",
		mcp.WithDescription("Search skills, knowledge areas and abilities aggregated across occupations. Each result lists the occupations that rate the element highest."),
		mcp.WithString("query", mcp.Description("Free-text search, e.g. 'critical thinking'")),
		mcp.WithString("skill_type", mcp.Description("Filter: 'skill', 'knowledge' or 'ability'")),
		mcp.WithString("category", mcp.Description("Filter by O*NET content category, e.g. 'Worker Requirements'")),
		mcp.WithNumber("limit", mcp.Description("Max results, default 10")),
	)
}

func (t *SearchSkillsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := t.uc.Search(ctx, index.SkillQuery{
		Query:     request.GetString("query", ""),
		SkillType: request.GetString("skill_type", ""),
		Category:  request.GetString("category", ""),
		PerPage:   request.GetInt("limit", 10),
		Page:      1,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(page)
}

// CompareOccupationsTool puts occupations side by side.
type CompareOccupationsTool struct {
	uc usecase.OccupationUsecase
}

func NewCompareOccupationsTool(uc usecase.OccupationUsecase) *CompareOccupationsTool {
	return &CompareOccupationsTool{uc: uc}
}

func (t *CompareOccupationsTool) Definition() mcp.Tool {
	return mcp.NewTool("compare_occupations",
		mcp.WithDescription("Compare two to five occupations: wages, employment, education, shared skills and what is unique to each."),
		mcp.WithString("codes", mcp.Required(), mcp.Description("Comma-separated SOC codes, e.g. '15-1252,15-1211'")),
	)
}

func (t *CompareOccupationsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("codes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}

	cmp, err := t.uc.Compare(ctx, codes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(cmp)
}

// SkillGapTool reports what a career move would require learning.
type SkillGapTool struct {
	uc usecase.OccupationUsecase
}

func NewSkillGapTool(uc usecase.OccupationUsecase) *SkillGapTool {
	return &SkillGapTool{uc: uc}
}

func (t *SkillGapTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_skill_gap",
		mcp.WithDescription("List the skills and knowledge areas a target occupation requires that a source occupation does not, ordered by importance."),
		mcp.WithString("from_code", mcp.Required(), mcp.Description("SOC code of the current occupation")),
		mcp.WithString("to_code", mcp.Required(), mcp.Description("SOC code of the target occupation")),
	)
}

func (t *SkillGapTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := request.RequireString("from_code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := request.RequireString("to_code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	gap, err := t.uc.SkillGap(ctx, from, to)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(gap)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
