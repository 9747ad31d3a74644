// Package mcp wires the occupation, wage and skill usecases into an
// MCP server so AI assistants can query the index over stdio.
package mcp

import (
	"jobtracker/internal/usecase"

	"github.com/mark3labs/mcp-go/server"
)

var Version = "dev"

func New(occupations usecase.OccupationUsecase, wages usecase.WageUsecase, skills usecase.SkillUsecase) *server.MCPServer {
	s := server.NewMCPServer(
		"jobtracker",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Occupational data for US occupations: employment and wages from BLS OEWS, skills and requirements from O*NET, merged by SOC code. Codes look like '15-1252'."),
	)

	searchTool := NewSearchOccupationsTool(occupations)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	detailsTool := NewOccupationDetailsTool(occupations)
	s.AddTool(detailsTool.Definition(), detailsTool.Handle)

	wagesTool := NewWagesByLocationTool(wages)
	s.AddTool(wagesTool.Definition(), wagesTool.Handle)

	skillsTool := NewSearchSkillsTool(skills)
	s.AddTool(skillsTool.Definition(), skillsTool.Handle)

	compareTool := NewCompareOccupationsTool(occupations)
	s.AddTool(compareTool.Definition(), compareTool.Handle)

	gapTool := NewSkillGapTool(occupations)
	s.AddTool(gapTool.Definition(), gapTool.Handle)

	return s
}
