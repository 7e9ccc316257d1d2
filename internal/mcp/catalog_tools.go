// ABOUTME: MCP tool implementations for the coffee catalog.
// ABOUTME: Registers list_coffees, add_coffee, and generate_embedding tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/brewmatch/internal/models"
)

func (s *Server) registerCatalogTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_coffees",
		Description: "List every coffee in the catalog with its flavor attributes.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"roast_level": {"type": "string", "enum": ["light", "medium", "dark"], "description": "Only list coffees with this roast"}
			}
		}`),
	}, s.handleListCoffees)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_coffee",
		Description: "Add a coffee to the catalog. Its flavor embedding is generated immediately.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Coffee name.", "minLength": 1},
				"description": {"type": "string", "description": "Tasting notes."},
				"roast_level": {"type": "string", "enum": ["light", "medium", "dark"]},
				"acidity": {"type": "integer", "minimum": 0, "maximum": 10},
				"body": {"type": "integer", "minimum": 0, "maximum": 10},
				"sweetness": {"type": "integer", "minimum": 0, "maximum": 10},
				"bitterness": {"type": "integer", "minimum": 0, "maximum": 10},
				"price_cents": {"type": "integer", "minimum": 1},
				"currency": {"type": "string", "enum": ["BRL", "USD", "EUR"]},
				"url": {"type": "string", "description": "Product page URL."},
				"sku": {"type": "string"},
				"grind_type": {"type": "string", "enum": ["whole_bean", "ground"]}
			},
			"required": ["name"]
		}`),
	}, s.handleAddCoffee)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "generate_embedding",
		Description: "Recompute and store a coffee's flavor embedding from its current attributes.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"coffee_id": {"type": "string", "description": "ID of the coffee."}
			},
			"required": ["coffee_id"]
		}`),
	}, s.handleGenerateEmbedding)
}

func (s *Server) handleListCoffees(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		RoastLevel string `json:"roast_level"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return toolError("invalid arguments: %v", err), nil
		}
	}

	coffees, err := s.catalog.List(ctx)
	if err != nil {
		return toolError("failed to list coffees: %v", err), nil
	}

	var lines []string
	for _, c := range coffees {
		if args.RoastLevel != "" && string(c.RoastLevel) != args.RoastLevel {
			continue
		}
		lines = append(lines, formatCoffee(c))
	}

	if len(lines) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No coffees found."}},
		}, nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("%d coffees:\n%s", len(lines), strings.Join(lines, "\n")),
		}},
	}, nil
}

func (s *Server) handleAddCoffee(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		RoastLevel  string `json:"roast_level"`
		Acidity     *int   `json:"acidity"`
		Body        *int   `json:"body"`
		Sweetness   *int   `json:"sweetness"`
		Bitterness  *int   `json:"bitterness"`
		PriceCents  *int   `json:"price_cents"`
		Currency    string `json:"currency"`
		URL         string `json:"url"`
		SKU         string `json:"sku"`
		GrindType   string `json:"grind_type"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.Name) == "" {
		return toolError("name is required"), nil
	}

	c := models.NewCoffee(strings.TrimSpace(args.Name))
	c.Description = args.Description
	c.RoastLevel = models.RoastLevel(args.RoastLevel)
	c.Acidity = args.Acidity
	c.Body = args.Body
	c.Sweetness = args.Sweetness
	c.Bitterness = args.Bitterness
	c.PriceCents = args.PriceCents
	if args.Currency != "" {
		c.Currency = strings.ToUpper(args.Currency)
	}
	c.URL = args.URL
	c.SKU = args.SKU
	c.GrindType = models.GrindType(args.GrindType)

	created, err := s.catalog.Create(ctx, c)
	if err != nil {
		return toolError("failed to add coffee: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Coffee added:\n%s", formatCoffee(created)),
		}},
	}, nil
}

func (s *Server) handleGenerateEmbedding(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		CoffeeID string `json:"coffee_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	id, err := uuid.Parse(args.CoffeeID)
	if err != nil {
		return toolError("invalid coffee_id %q: %v", args.CoffeeID, err), nil
	}

	c, err := s.catalog.Regenerate(ctx, id)
	if err != nil {
		return toolError("failed to generate embedding: %v", err), nil
	}

	data, err := json.Marshal(c.FlavorEmbedding)
	if err != nil {
		return toolError("failed to encode embedding: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Embedding stored for %s:\n%s", c.Name, data),
		}},
	}, nil
}

func formatCoffee(c *models.Coffee) string {
	roast := string(c.RoastLevel)
	if roast == "" {
		roast = "unset"
	}
	embedded := "no"
	if c.HasEmbedding() {
		embedded = "yes"
	}
	line := fmt.Sprintf("- %s [%s] roast=%s acidity=%s body=%s sweetness=%s bitterness=%s embedded=%s",
		c.Name, c.ID, roast,
		attr(c.Acidity), attr(c.Body), attr(c.Sweetness), attr(c.Bitterness), embedded)
	if price := c.FormattedPrice(); price != "" {
		line += " price=" + price
	}
	return line
}

func attr(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
