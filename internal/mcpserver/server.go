// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Macrolog tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nvoss/macrolog/internal/mealservice"
	"github.com/nvoss/macrolog/internal/models"
)

// Server wraps the MCP server with Macrolog tools.
type Server struct {
	mcp *server.MCPServer
	svc *mealservice.Service
	now func() time.Time
}

// New creates a new MCP server with all Macrolog tools registered.
func New(svc *mealservice.Service) *Server {
	s := &Server{svc: svc, now: time.Now}

	s.mcp = server.NewMCPServer(
		"Macrolog",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("log_meal",
		mcp.WithDescription("Log a consumed quantity of a catalog food. The quantity is "+
			"expressed in the food's own base unit (g, ml, or unit); nutrients are scaled "+
			"from the food's per-base-amount values and stored as a snapshot."),
		mcp.WithString("food", mcp.Required(), mcp.Description("Exact food name from the catalog")),
		mcp.WithNumber("quantity", mcp.Required(), mcp.Description("Consumed amount in the food's base unit (must be positive)")),
		mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD (defaults to today)")),
	), s.logMeal)

	s.mcp.AddTool(mcp.NewTool("daily_summary",
		mcp.WithDescription("Totals and goal progress for one day."),
		mcp.WithString("date", mcp.Description("Calendar date YYYY-MM-DD (defaults to today)")),
	), s.dailySummary)

	s.mcp.AddTool(mcp.NewTool("weekly_report",
		mcp.WithDescription("Per-day rollup for the 7 days ending at the given date. "+
			"Only days with at least one logged entry appear."),
		mcp.WithString("end", mcp.Description("Last day of the window YYYY-MM-DD (defaults to today)")),
	), s.weeklyReport)

	s.mcp.AddTool(mcp.NewTool("search_foods",
		mcp.WithDescription("Search the food catalog by name."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchFoods)

	s.mcp.AddTool(mcp.NewTool("list_foods",
		mcp.WithDescription("List every food definition in the catalog."),
	), s.listFoods)

	s.mcp.AddTool(mcp.NewTool("add_food",
		mcp.WithDescription("Add a food definition. Nutrient values correspond to base_amount "+
			"of the given unit (e.g. per 100 g). Names must be unique."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Unique food name")),
		mcp.WithNumber("base_amount", mcp.Required(), mcp.Description("Reference serving size (positive)")),
		mcp.WithString("unit", mcp.Required(), mcp.Description("One of g, ml, unit")),
		mcp.WithNumber("calories", mcp.Required(), mcp.Description("Calories per base amount")),
		mcp.WithNumber("protein_g", mcp.Required(), mcp.Description("Protein grams per base amount")),
		mcp.WithNumber("fat_g", mcp.Required(), mcp.Description("Fat grams per base amount")),
		mcp.WithNumber("sat_fat_g", mcp.Required(), mcp.Description("Saturated fat grams per base amount")),
	), s.addFood)

	s.mcp.AddTool(mcp.NewTool("get_goals",
		mcp.WithDescription("Current daily goal targets."),
	), s.getGoals)

	s.mcp.AddTool(mcp.NewTool("set_goals",
		mcp.WithDescription("Replace the daily goal targets. All values must be positive."),
		mcp.WithNumber("calories", mcp.Required(), mcp.Description("Daily calories goal")),
		mcp.WithNumber("protein_g", mcp.Required(), mcp.Description("Daily protein goal (g)")),
		mcp.WithNumber("sat_fat_g", mcp.Required(), mcp.Description("Daily saturated fat limit (g)")),
	), s.setGoals)

	// Resource: CSV import/export contract.
	s.mcp.AddResource(
		mcp.NewResource("macrolog://csv-format", "CSV Store Format",
			mcp.WithResourceDescription("Column contract for the foods and log CSV stores."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCSVFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// dayArg reads an optional date argument, defaulting to today.
func (s *Server) dayArg(req mcp.CallToolRequest, key string) (time.Time, error) {
	if raw, err := req.RequireString(key); err == nil && raw != "" {
		return models.ParseDay(raw)
	}
	return models.Day(s.now()), nil
}

func (s *Server) logMeal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	food, err := req.RequireString("food")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	quantity, err := req.RequireFloat("quantity")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := s.dayArg(req, "date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entry, err := s.svc.LogMeal(ctx, day, food, quantity)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("logged %v%s of %s on %s (%.1f kcal)",
		entry.Quantity, entry.Unit, entry.Food, entry.Date.Format(models.DateFormat), entry.Calories)), nil
}

func (s *Server) dailySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := s.dayArg(req, "date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary, err := s.svc.DailySummary(ctx, day)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) weeklyReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	end, err := s.dayArg(req, "end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(s.svc.WeeklyReport(ctx, end), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchFoods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	foods, err := s.svc.SearchFoods(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(foods, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listFoods(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Foods(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addFood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unit, err := req.RequireString("unit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	food := models.Food{Name: name, Unit: unit}
	for key, dst := range map[string]*float64{
		"base_amount": &food.BaseAmount,
		"calories":    &food.Calories,
		"protein_g":   &food.ProteinG,
		"fat_g":       &food.FatG,
		"sat_fat_g":   &food.SatFatG,
	} {
		v, err := req.RequireFloat(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		*dst = v
	}

	if err := s.svc.AddFood(ctx, food); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %s", food.Name)), nil
}

func (s *Server) getGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Goals(ctx), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) setGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var g models.Goals
	for key, dst := range map[string]*float64{
		"calories":  &g.Calories,
		"protein_g": &g.ProteinG,
		"sat_fat_g": &g.SatFatG,
	} {
		v, err := req.RequireFloat(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		*dst = v
	}
	if err := s.svc.SetGoals(ctx, g); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("goals updated"), nil
}

func (s *Server) readCSVFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "macrolog://csv-format",
			MIMEType: "text/markdown",
			Text:     CSVFormatContract,
		},
	}, nil
}
