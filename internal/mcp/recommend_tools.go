// ABOUTME: MCP tool implementations for taste profiles and recommendations.
// ABOUTME: Registers recommend, build_target_vector, method_compatibility, and submit_profile tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/profiles"
	"github.com/2389-research/brewmatch/internal/recommend"
)

const answerProperties = `
				"chocolate_preference": {"type": "string", "enum": ["white", "milk", "dark_70", "dark_85"], "description": "Favorite chocolate."},
				"fruit_preference": {"type": "string", "enum": ["citrus", "berries", "yellow", "dried"], "description": "Favorite fruit."},
				"drink_preference": {"type": "string", "enum": ["wine_bold", "wine_light", "beer_ipa", "beer_stout"], "description": "Favorite drink."},
				"texture_preference": {"type": "string", "enum": ["tea_like", "creamy", "syrupy"], "description": "Preferred mouthfeel."},
				"adventure_level": {"type": "string", "enum": ["safe", "moderate", "wild"], "description": "Willingness to try unusual coffees."},
				"brewing_method": {"type": "string", "enum": ["espresso", "v60", "french_press", "moka", "capsule"], "description": "How the user brews at home."}`

func (s *Server) registerRecommendTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "recommend",
		Description: "Recommend coffees for a taste profile. Pass either an email with a saved profile or all six answers inline.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"email": {"type": "string", "description": "Email of a user who already submitted a profile."},
				"limit": {"type": "number", "description": "Maximum number of coffees to return (default 3)"},` + answerProperties + `
			}
		}`),
	}, s.handleRecommend)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "build_target_vector",
		Description: "Show the 8-dimensional target flavor vector a set of answers (or a saved profile) maps to.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"email": {"type": "string", "description": "Email of a user who already submitted a profile."},` + answerProperties + `
			}
		}`),
	}, s.handleBuildTargetVector)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "method_compatibility",
		Description: "Compute the brewing method multiplier for a catalog coffee.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"coffee_id": {"type": "string", "description": "ID of the coffee."},
				"method": {"type": "string", "enum": ["espresso", "v60", "french_press", "moka", "capsule"], "description": "Brewing method."}
			},
			"required": ["coffee_id", "method"]
		}`),
	}, s.handleMethodCompatibility)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "submit_profile",
		Description: "Save a user's questionnaire answers, replacing any previous profile, and return their top recommendations.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"email": {"type": "string", "description": "The user's email address.", "minLength": 1},
				"has_grinder": {"type": "boolean", "description": "Whether the user owns a grinder."},` + answerProperties + `
			},
			"required": ["email", "chocolate_preference", "fruit_preference", "drink_preference", "texture_preference", "adventure_level", "brewing_method"]
		}`),
	}, s.handleSubmitProfile)
}

type profileArgs struct {
	Email string `json:"email"`
	Limit int    `json:"limit"`
	profiles.Answers
}

// resolveProfile prefers inline answers and falls back to the saved profile for email.
func (s *Server) resolveProfile(ctx context.Context, args profileArgs) (*models.TasteProfile, *gomcp.CallToolResult) {
	if !args.Answers.Empty() {
		p := args.Answers.Profile(&models.User{})
		if err := p.Validate(); err != nil {
			return nil, toolError("invalid profile: %v", err)
		}
		return p, nil
	}
	if args.Email == "" {
		return nil, toolError("either email or the six profile answers are required")
	}
	_, p, err := s.profiles.ForEmail(ctx, args.Email)
	if err != nil {
		return nil, toolError("failed to load profile: %v", err)
	}
	return p, nil
}

func (s *Server) handleRecommend(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args profileArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	p, errResult := s.resolveProfile(ctx, args)
	if errResult != nil {
		return errResult, nil
	}

	results, err := s.engine.Recommend(ctx, p, args.Limit)
	if err != nil {
		return recommendError(err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: formatRecommendations(results)}},
	}, nil
}

func (s *Server) handleBuildTargetVector(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args profileArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	p, errResult := s.resolveProfile(ctx, args)
	if errResult != nil {
		return errResult, nil
	}

	target, err := s.engine.BuildTargetVector(p)
	if err != nil {
		return toolError("invalid profile: %v", err), nil
	}

	data, err := json.Marshal(target)
	if err != nil {
		return toolError("failed to encode vector: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Target vector [acidity, body, sweetness, bitterness, fruity, chocolatey, nutty, floral]:\n%s", data),
		}},
	}, nil
}

func (s *Server) handleMethodCompatibility(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		CoffeeID string `json:"coffee_id"`
		Method   string `json:"method"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Method == "" {
		return toolError("method is required"), nil
	}
	method := models.BrewingMethod(args.Method)
	if !method.Valid() {
		return toolError("unknown method %q (want one of: %s)", args.Method,
			strings.Join(models.Strings(models.BrewingMethods), ", ")), nil
	}

	id, err := uuid.Parse(args.CoffeeID)
	if err != nil {
		return toolError("invalid coffee_id %q: %v", args.CoffeeID, err), nil
	}

	c, err := s.catalog.Get(ctx, id)
	if err != nil {
		return toolError("failed to get coffee: %v", err), nil
	}

	score := s.engine.MethodCompatibility(c, method)

	var rules []string
	for _, rule := range recommend.MethodRules(method) {
		if rule.Applies(c) {
			rules = append(rules, rule.Name)
		}
	}

	text := fmt.Sprintf("%s with %s: x%.2f", c.Name, method, score)
	if len(rules) > 0 {
		text += fmt.Sprintf(" (bonus: %s)", strings.Join(rules, ", "))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}, nil
}

func (s *Server) handleSubmitProfile(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args profileArgs
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Email == "" {
		return toolError("email is required"), nil
	}

	user, p, err := s.profiles.Submit(ctx, args.Email, args.Answers)
	if err != nil {
		return toolError("failed to save profile: %v", err), nil
	}

	results, err := s.engine.Recommend(ctx, p, 0)
	if err != nil {
		return recommendError(err), nil
	}

	s.logger.Debug().Str("email", user.Email).Int("returned", len(results)).Msg("profile submitted")

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Profile saved for %s.\n%s", user.Email, formatRecommendations(results)),
		}},
	}, nil
}

func recommendError(err error) *gomcp.CallToolResult {
	var verr *models.ValidationError
	var merr *models.MissingEmbeddingError
	switch {
	case errors.As(err, &verr):
		return toolError("invalid profile: %v", err)
	case errors.As(err, &merr):
		return toolError("%v (run generate_embedding with coffee_id %s)", err, merr.CoffeeID)
	default:
		return toolError("failed to recommend: %v", err)
	}
}

func formatRecommendations(results []recommend.ScoredCoffee) string {
	if len(results) == 0 {
		return "No coffees matched. Is the catalog empty?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d coffees:\n", len(results))
	for i, r := range results {
		c := r.Coffee
		fmt.Fprintf(&b, "%d. %s", i+1, c.Name)
		if c.RoastLevel != "" {
			fmt.Fprintf(&b, " (%s roast)", c.RoastLevel)
		}
		fmt.Fprintf(&b, " score %.3f [similarity %.3f, method x%.2f, adventure x%.2f]",
			r.Score, r.Similarity, r.MethodMultiplier, r.AdventureMultiplier)
		if price := c.FormattedPrice(); price != "" {
			fmt.Fprintf(&b, " %s", price)
		}
		fmt.Fprintf(&b, "\n   id: %s\n", c.ID)
	}
	return b.String()
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
