// ABOUTME: CLI commands for catalog administration.
// ABOUTME: Provides list, show, add, update, delete, seed, reindex, import, regenerate, and compat.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/2389-research/brewmatch/internal/embeddings"
	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/recommend"
	"github.com/2389-research/brewmatch/internal/storage"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the coffee catalog",
	Long:  "Add, edit and inspect coffees and keep their flavor embeddings current.",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List coffees",
	RunE:  runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a coffee",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a coffee",
	Long:  "Add a coffee to the catalog. Its flavor embedding is generated right away.",
	RunE:  runCatalogAdd,
}

var catalogUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a coffee",
	Long:  "Change the given fields of a coffee. The flavor embedding is regenerated afterwards.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogUpdate,
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a coffee",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogDelete,
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter catalog",
	Long:  "Insert the ten starter coffees that are missing (by name) and refresh their embeddings.",
	RunE:  runCatalogSeed,
}

var catalogReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Regenerate every flavor embedding",
	RunE:  runCatalogReindex,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import coffees from the configured feed",
	Long:  "Fetch feed.url/coffees and upsert each coffee by SKU, then by name.",
	RunE:  runCatalogImport,
}

var catalogRegenerateCmd = &cobra.Command{
	Use:   "regenerate <id>",
	Short: "Regenerate one coffee's flavor embedding",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRegenerate,
}

var catalogCompatCmd = &cobra.Command{
	Use:   "compat <id>",
	Short: "Show the brewing method multiplier for a coffee",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogCompat,
}

// Flags
var (
	coffeeName        string
	coffeeDescription string
	coffeeRoast       string
	coffeeAcidity     int
	coffeeBody        int
	coffeeSweetness   int
	coffeeBitterness  int
	coffeePriceCents  int
	coffeeCurrency    string
	coffeeURL         string
	coffeeSKU         string
	coffeeGrind       string
	compatMethod      string
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogUpdateCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
	catalogCmd.AddCommand(catalogReindexCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogRegenerateCmd)
	catalogCmd.AddCommand(catalogCompatCmd)

	for _, c := range []*cobra.Command{catalogAddCmd, catalogUpdateCmd} {
		c.Flags().StringVar(&coffeeName, "name", "", "Coffee name")
		c.Flags().StringVar(&coffeeDescription, "description", "", "Tasting notes")
		c.Flags().StringVar(&coffeeRoast, "roast", "", "Roast level: light, medium, or dark")
		c.Flags().IntVar(&coffeeAcidity, "acidity", 0, "Acidity, 0-10")
		c.Flags().IntVar(&coffeeBody, "body", 0, "Body, 0-10")
		c.Flags().IntVar(&coffeeSweetness, "sweetness", 0, "Sweetness, 0-10")
		c.Flags().IntVar(&coffeeBitterness, "bitterness", 0, "Bitterness, 0-10")
		c.Flags().IntVar(&coffeePriceCents, "price-cents", 0, "Price in cents")
		c.Flags().StringVar(&coffeeCurrency, "currency", "", "Currency: BRL, USD, or EUR")
		c.Flags().StringVar(&coffeeURL, "url", "", "Product page URL")
		c.Flags().StringVar(&coffeeSKU, "sku", "", "Stock keeping unit")
		c.Flags().StringVar(&coffeeGrind, "grind", "", "Grind: whole_bean or ground")
	}
	_ = catalogAddCmd.MarkFlagRequired("name")

	catalogCompatCmd.Flags().StringVar(&compatMethod, "method", "", "Brewing method: "+strings.Join(models.Strings(models.BrewingMethods), ", "))
	_ = catalogCompatCmd.MarkFlagRequired("method")
}

// applyCoffeeFlags copies every flag the user actually set onto c.
func applyCoffeeFlags(flags *pflag.FlagSet, c *models.Coffee) {
	if flags.Changed("name") {
		c.Name = strings.TrimSpace(coffeeName)
	}
	if flags.Changed("description") {
		c.Description = coffeeDescription
	}
	if flags.Changed("roast") {
		c.RoastLevel = models.RoastLevel(coffeeRoast)
	}
	if flags.Changed("acidity") {
		c.Acidity = models.Int(coffeeAcidity)
	}
	if flags.Changed("body") {
		c.Body = models.Int(coffeeBody)
	}
	if flags.Changed("sweetness") {
		c.Sweetness = models.Int(coffeeSweetness)
	}
	if flags.Changed("bitterness") {
		c.Bitterness = models.Int(coffeeBitterness)
	}
	if flags.Changed("price-cents") {
		c.PriceCents = models.Int(coffeePriceCents)
	}
	if flags.Changed("currency") {
		c.Currency = strings.ToUpper(coffeeCurrency)
	}
	if flags.Changed("url") {
		c.URL = coffeeURL
	}
	if flags.Changed("sku") {
		c.SKU = coffeeSKU
	}
	if flags.Changed("grind") {
		c.GrindType = models.GrindType(coffeeGrind)
	}
}

func parseCoffeeID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid coffee id %q: %w", arg, err)
	}
	return id, nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	coffees, err := globalCatalog.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list coffees: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(coffees) == 0 {
		_, _ = fmt.Fprintln(out, "No coffees found. Run 'brewmatch catalog seed' to load the starter catalog.")
		return nil
	}

	for _, c := range coffees {
		marker := " "
		if !c.HasEmbedding() {
			marker = "!"
		}
		_, _ = fmt.Fprintf(out, "%s %s  %-28s %-6s A%s B%s S%s Bi%s  %s\n",
			marker, c.ID, truncate(c.Name, 28), roastLabel(c.RoastLevel),
			attrLabel(c.Acidity), attrLabel(c.Body), attrLabel(c.Sweetness), attrLabel(c.Bitterness),
			c.FormattedPrice())
	}
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	id, err := parseCoffeeID(args[0])
	if err != nil {
		return err
	}
	c, err := globalCatalog.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get coffee: %w", err)
	}
	printCoffee(cmd.OutOrStdout(), c)
	return nil
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	c := models.NewCoffee("")
	applyCoffeeFlags(cmd.Flags(), c)

	created, err := globalCatalog.Create(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("failed to add coffee: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Coffee added:")
	printCoffee(cmd.OutOrStdout(), created)
	return nil
}

func runCatalogUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseCoffeeID(args[0])
	if err != nil {
		return err
	}
	c, err := globalCatalog.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get coffee: %w", err)
	}

	applyCoffeeFlags(cmd.Flags(), c)
	updated, err := globalCatalog.Update(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("failed to update coffee: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Coffee updated:")
	printCoffee(cmd.OutOrStdout(), updated)
	return nil
}

func runCatalogDelete(cmd *cobra.Command, args []string) error {
	id, err := parseCoffeeID(args[0])
	if err != nil {
		return err
	}
	if err := globalCatalog.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete coffee: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}

func runCatalogSeed(cmd *cobra.Command, args []string) error {
	result, err := globalCatalog.Seed(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded catalog: %d created, %d already present\n", result.Created, result.Existing)
	return nil
}

func runCatalogReindex(cmd *cobra.Command, args []string) error {
	n, err := globalCatalog.Reindex(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reindex: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Regenerated %d embeddings\n", n)
	return nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	if !globalConfig.HasFeed() {
		return fmt.Errorf("no feed configured (set feed.url in config or run 'brewmatch setup')")
	}
	feed := storage.NewFeedClient(globalConfig.Feed.URL, globalConfig.Feed.APIKey)

	result, err := globalCatalog.Import(cmd.Context(), feed)
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported feed: %d created, %d updated, %d skipped\n",
		result.Created, result.Updated, result.Skipped)
	return nil
}

func runCatalogRegenerate(cmd *cobra.Command, args []string) error {
	id, err := parseCoffeeID(args[0])
	if err != nil {
		return err
	}
	c, err := globalCatalog.Regenerate(cmd.Context(), id)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Embedding regenerated for %s\n", c.Name)
	printVector(cmd.OutOrStdout(), embeddings.Vector(c.FlavorEmbedding))
	return nil
}

func runCatalogCompat(cmd *cobra.Command, args []string) error {
	method := models.BrewingMethod(compatMethod)
	if !method.Valid() {
		return fmt.Errorf("unknown method %q (want one of: %s)", compatMethod, strings.Join(models.Strings(models.BrewingMethods), ", "))
	}
	id, err := parseCoffeeID(args[0])
	if err != nil {
		return err
	}
	c, err := globalCatalog.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get coffee: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s with %s: x%.2f\n", c.Name, method, globalEngine.MethodCompatibility(c, method))
	for _, rule := range recommend.MethodRules(method) {
		if rule.Applies(c) {
			_, _ = fmt.Fprintf(out, "  bonus %s x%.2f\n", rule.Name, rule.Multiplier)
		}
	}
	return nil
}

func printCoffee(w io.Writer, c *models.Coffee) {
	_, _ = fmt.Fprintf(w, "ID:          %s\n", c.ID)
	_, _ = fmt.Fprintf(w, "Name:        %s\n", c.Name)
	if c.Description != "" {
		_, _ = fmt.Fprintf(w, "Description: %s\n", c.Description)
	}
	_, _ = fmt.Fprintf(w, "Roast:       %s\n", roastLabel(c.RoastLevel))
	_, _ = fmt.Fprintf(w, "Acidity:     %s\n", attrLabel(c.Acidity))
	_, _ = fmt.Fprintf(w, "Body:        %s\n", attrLabel(c.Body))
	_, _ = fmt.Fprintf(w, "Sweetness:   %s\n", attrLabel(c.Sweetness))
	_, _ = fmt.Fprintf(w, "Bitterness:  %s\n", attrLabel(c.Bitterness))
	if price := c.FormattedPrice(); price != "" {
		_, _ = fmt.Fprintf(w, "Price:       %s\n", price)
	}
	if c.SKU != "" {
		_, _ = fmt.Fprintf(w, "SKU:         %s\n", c.SKU)
	}
	if c.GrindType != "" {
		_, _ = fmt.Fprintf(w, "Grind:       %s\n", c.GrindType)
	}
	if c.URL != "" {
		_, _ = fmt.Fprintf(w, "URL:         %s\n", c.URL)
	}
	if c.HasEmbedding() {
		printVector(w, embeddings.Vector(c.FlavorEmbedding))
	} else {
		_, _ = fmt.Fprintln(w, "Embedding:   missing (run 'brewmatch catalog regenerate')")
	}
}

func printVector(w io.Writer, v embeddings.Vector) {
	parts := make([]string, 0, len(v))
	for i, x := range v {
		name := fmt.Sprintf("%d", i)
		if i < embeddings.Dimensions {
			name = embeddings.ComponentNames[i]
		}
		parts = append(parts, fmt.Sprintf("%s=%.2f", name, x))
	}
	_, _ = fmt.Fprintf(w, "Embedding:   %s\n", strings.Join(parts, " "))
}

func roastLabel(r models.RoastLevel) string {
	if r == "" {
		return "-"
	}
	return string(r)
}

func attrLabel(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
