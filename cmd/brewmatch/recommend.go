// ABOUTME: CLI commands for recommendations.
// ABOUTME: recommend shows a user's top coffees; matches is the admin view across users.
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend coffees for a user",
	Long:  "Rank the catalog against the user's saved taste profile.",
	RunE:  runRecommend,
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Admin view of recommendations",
	Long:  "Show recommendations with score breakdowns for one user, or for every user with a profile.",
	RunE:  runMatches,
}

// Flags
var (
	recommendEmail string
	recommendLimit int
	matchesEmail   string
)

func init() {
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(matchesCmd)

	recommendCmd.Flags().StringVar(&recommendEmail, "email", "", "User email")
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", 0, "Maximum number of coffees (default engine.default_limit)")
	_ = recommendCmd.MarkFlagRequired("email")

	matchesCmd.Flags().StringVar(&matchesEmail, "email", "", "Only show this user")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	_, p, err := globalProfiles.ForEmail(cmd.Context(), recommendEmail)
	if err != nil {
		return err
	}

	results, err := globalEngine.Recommend(cmd.Context(), p, recommendLimit)
	if err != nil {
		return explainRecommendError(err)
	}
	printRecommendations(cmd.OutOrStdout(), results, false)
	return nil
}

func runMatches(cmd *cobra.Command, args []string) error {
	limit := globalEngine.Config().AdminLimit
	out := cmd.OutOrStdout()

	if matchesEmail != "" {
		user, p, err := globalProfiles.ForEmail(cmd.Context(), matchesEmail)
		if err != nil {
			return err
		}
		results, err := globalEngine.Recommend(cmd.Context(), p, limit)
		if err != nil {
			return explainRecommendError(err)
		}
		printMatchHeader(out, user, p)
		printRecommendations(out, results, true)
		return nil
	}

	all, err := globalProfiles.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(all) == 0 {
		_, _ = fmt.Fprintln(out, "No users have taken the quiz yet.")
		return nil
	}

	for _, up := range all {
		results, err := globalEngine.Recommend(cmd.Context(), up.Profile, limit)
		if err != nil {
			return explainRecommendError(err)
		}
		printMatchHeader(out, up.User, up.Profile)
		printRecommendations(out, results, true)
		_, _ = fmt.Fprintln(out)
	}
	return nil
}

func explainRecommendError(err error) error {
	var merr *models.MissingEmbeddingError
	if errors.As(err, &merr) {
		return fmt.Errorf("%w\nrun 'brewmatch catalog regenerate %s' or 'brewmatch catalog reindex'", err, merr.CoffeeID)
	}
	return err
}

func printMatchHeader(w io.Writer, user *models.User, p *models.TasteProfile) {
	_, _ = fmt.Fprintf(w, "=== %s (%s, %s, %s/%s/%s/%s)\n", user.Email,
		p.BrewingMethod, p.AdventureLevel,
		p.ChocolatePreference, p.FruitPreference, p.DrinkPreference, p.TexturePreference)
}

func printRecommendations(w io.Writer, results []recommend.ScoredCoffee, detailed bool) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "No coffees matched. Run 'brewmatch catalog seed' to load the starter catalog.")
		return
	}

	for i, r := range results {
		c := r.Coffee
		_, _ = fmt.Fprintf(w, "%d. %s (%s)", i+1, c.Name, roastLabel(c.RoastLevel))
		if price := c.FormattedPrice(); price != "" {
			_, _ = fmt.Fprintf(w, "  %s", price)
		}
		_, _ = fmt.Fprintf(w, "  score %.3f\n", r.Score)
		if detailed {
			_, _ = fmt.Fprintf(w, "   similarity %.3f  method x%.2f  adventure x%.2f  id %s\n",
				r.Similarity, r.MethodMultiplier, r.AdventureMultiplier, c.ID)
		} else if c.Description != "" {
			_, _ = fmt.Fprintf(w, "   %s\n", truncate(c.Description, 100))
		}
	}
}
