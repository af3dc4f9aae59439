// Package mcp implements the Model Context Protocol server for tripplanner.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/tripplanner/internal/knowledge"
	"github.com/ajitpratap0/tripplanner/internal/metrics"
	"github.com/ajitpratap0/tripplanner/internal/models"
	"github.com/ajitpratap0/tripplanner/internal/narrator"
	"github.com/ajitpratap0/tripplanner/internal/planner"
)

// Server wraps an MCPServer with tripplanner dependencies.
type Server struct {
	mcp      *mcpserver.MCPServer
	narrator narrator.Narrator
	opts     []planner.Option
	logger   *slog.Logger
}

// NewServer creates a new MCP server. nar may be nil, in which case the
// narrate argument of plan_trip is ignored.
func NewServer(nar narrator.Narrator, logger *slog.Logger, opts ...planner.Option) *Server {
	s := &Server{
		narrator: nar,
		opts:     opts,
		logger:   logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"tripplanner",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildPlanTripTool(), s.handlePlanTrip)
	mcpSrv.AddTool(buildListRegionsTool(), s.handleListRegions)
	mcpSrv.AddTool(buildRegionInfoTool(), s.handleRegionInfo)
	mcpSrv.AddTool(buildRandomQuoteTool(), s.handleRandomQuote)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// stringSlice reads an array-of-strings argument, tolerating a single
// comma-separated string from clients that cannot send arrays.
func stringSlice(req mcpgo.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case []string:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return []string{fmt.Sprint(v)}
	}
}

// budgetArg reads the budget as text whether it was sent as a number or string.
func budgetArg(req mcpgo.CallToolRequest) string {
	raw, ok := req.GetArguments()["budget"]
	if !ok || raw == nil {
		return ""
	}
	if f, isNum := raw.(float64); isNum {
		return fmt.Sprintf("%g", f)
	}
	return fmt.Sprint(raw)
}

// --- tool definitions ---

func buildPlanTripTool() mcpgo.Tool {
	return mcpgo.NewTool("plan_trip",
		mcpgo.WithDescription("Plan a trip to a supported South Indian region and return the trip summary: name, duration, budget-tier suggestions, places, a fun fact and a quote."),
		mcpgo.WithString("destination",
			mcpgo.Required(),
			mcpgo.Description("One of: "+strings.Join(knowledge.Names(), ", ")+" (case-insensitive)"),
		),
		mcpgo.WithString("start_date",
			mcpgo.Required(),
			mcpgo.Description("Start date, YYYY-MM-DD"),
		),
		mcpgo.WithString("end_date",
			mcpgo.Required(),
			mcpgo.Description("End date, YYYY-MM-DD, not before start_date"),
		),
		mcpgo.WithNumber("budget",
			mcpgo.Required(),
			mcpgo.Description("Total budget in rupees, >= 0"),
		),
		mcpgo.WithArray("activities",
			mcpgo.Description("Planned activities, in order"),
			mcpgo.WithStringItems(),
		),
		mcpgo.WithBoolean("narrate",
			mcpgo.Description("Also write a short travel blurb (needs a Claude API key on the server)"),
		),
	)
}

func buildListRegionsTool() mcpgo.Tool {
	return mcpgo.NewTool("list_regions",
		mcpgo.WithDescription("List the supported destinations with their places to visit."),
	)
}

func buildRegionInfoTool() mcpgo.Tool {
	return mcpgo.NewTool("region_info",
		mcpgo.WithDescription("Get the places to visit and a random fun fact for one destination."),
		mcpgo.WithString("destination",
			mcpgo.Required(),
			mcpgo.Description("Destination name (case-insensitive)"),
		),
	)
}

func buildRandomQuoteTool() mcpgo.Tool {
	return mcpgo.NewTool("random_quote",
		mcpgo.WithDescription("Get a random inspirational travel quote."),
	)
}

// --- tool handlers ---

// planTripResult is the plan_trip payload.
type planTripResult struct {
	models.Summary
	Blurb string `json:"blurb,omitempty"`
}

// handlePlanTrip runs the full planning flow for one request.
func (s *Server) handlePlanTrip(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	in := planner.Input{
		Destination: req.GetString("destination", ""),
		StartDate:   req.GetString("start_date", ""),
		EndDate:     req.GetString("end_date", ""),
		Budget:      budgetArg(req),
		Activities:  stringSlice(req, "activities"),
	}

	summary, err := planner.Plan(in, s.opts...)
	if err != nil {
		metrics.Inc(metrics.ValidationFailures)
		return mcpgo.NewToolResultError(validationMessage(err)), nil
	}
	metrics.Inc(metrics.PlansTotal)

	result := planTripResult{Summary: summary}
	if req.GetBool("narrate", false) && s.narrator != nil {
		blurb, narrateErr := s.narrator.Narrate(ctx, summary)
		if narrateErr != nil {
			s.logger.Warn("mcp: plan_trip: narration failed", "error", narrateErr)
		}
		result.Blurb = blurb
	}

	s.logger.Info("mcp: plan_trip", "destination", summary.Destination, "tier", summary.Tier)
	return toolResultJSON(result)
}

// handleListRegions returns every region with its places.
func (s *Server) handleListRegions(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	regions := knowledge.Regions()
	out := make([]models.RegionInfo, len(regions))
	for i, r := range regions {
		out[i] = models.RegionInfo{Name: r.Name, Places: r.Places}
	}
	return toolResultJSON(map[string]any{"regions": out})
}

// handleRegionInfo returns places and one fact for a region.
func (s *Server) handleRegionInfo(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	dest := req.GetString("destination", "")
	e := planner.New(s.opts...)
	if !e.SetDestination(dest) {
		return mcpgo.NewToolResultError(validationMessage(planner.ErrInvalidDestination)), nil
	}
	region, _ := knowledge.Lookup(dest)
	return toolResultJSON(map[string]any{
		"name":   region.Name,
		"places": e.LookupPlaces(),
		"fact":   e.RandomFact(),
	})
}

// handleRandomQuote returns one quote.
func (s *Server) handleRandomQuote(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return toolResultJSON(map[string]string{"quote": planner.New(s.opts...).RandomQuote()})
}

// validationMessage names the offending argument so the calling model can
// correct it.
func validationMessage(err error) string {
	field, msg, ok := planner.Describe(err)
	if !ok {
		return err.Error()
	}
	return "invalid " + field + ": " + msg
}
