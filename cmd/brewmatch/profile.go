// ABOUTME: CLI commands for taste profiles.
// ABOUTME: Provides set, show, and target subcommands keyed by email.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/brewmatch/internal/embeddings"
	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/profiles"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage taste profiles",
	Long:  "Record questionnaire answers without the TUI and inspect what they map to.",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save a user's answers",
	Long:  "Save all six answers for a user, replacing any previous profile.",
	RunE:  runProfileSet,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a user's answers",
	RunE:  runProfileShow,
}

var profileTargetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show the target flavor vector for a user's answers",
	RunE:  runProfileTarget,
}

// Flags
var (
	profileEmail      string
	profileChocolate  string
	profileFruit      string
	profileDrink      string
	profileTexture    string
	profileAdventure  string
	profileMethod     string
	profileHasGrinder bool
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileTargetCmd)

	for _, c := range []*cobra.Command{profileSetCmd, profileShowCmd, profileTargetCmd} {
		c.Flags().StringVar(&profileEmail, "email", "", "User email")
		_ = c.MarkFlagRequired("email")
	}

	f := profileSetCmd.Flags()
	f.StringVar(&profileChocolate, "chocolate", "", "Chocolate: "+strings.Join(models.Strings(models.ChocolatePreferences), ", "))
	f.StringVar(&profileFruit, "fruit", "", "Fruit: "+strings.Join(models.Strings(models.FruitPreferences), ", "))
	f.StringVar(&profileDrink, "drink", "", "Drink: "+strings.Join(models.Strings(models.DrinkPreferences), ", "))
	f.StringVar(&profileTexture, "texture", "", "Texture: "+strings.Join(models.Strings(models.TexturePreferences), ", "))
	f.StringVar(&profileAdventure, "adventure", "", "Adventure: "+strings.Join(models.Strings(models.AdventureLevels), ", "))
	f.StringVar(&profileMethod, "method", "", "Brewing method: "+strings.Join(models.Strings(models.BrewingMethods), ", "))
	f.BoolVar(&profileHasGrinder, "grinder", false, "The user owns a grinder")
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	answers := profiles.Answers{
		Chocolate:  models.ChocolatePreference(profileChocolate),
		Fruit:      models.FruitPreference(profileFruit),
		Drink:      models.DrinkPreference(profileDrink),
		Texture:    models.TexturePreference(profileTexture),
		Adventure:  models.AdventureLevel(profileAdventure),
		Method:     models.BrewingMethod(profileMethod),
		HasGrinder: profileHasGrinder,
	}

	user, p, err := globalProfiles.Submit(cmd.Context(), profileEmail, answers)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Profile saved for %s\n", user.Email)
	printProfile(cmd, p)
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	user, p, err := globalProfiles.ForEmail(cmd.Context(), profileEmail)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "User: %s\n", user.Email)
	printProfile(cmd, p)
	return nil
}

func runProfileTarget(cmd *cobra.Command, args []string) error {
	_, p, err := globalProfiles.ForEmail(cmd.Context(), profileEmail)
	if err != nil {
		return err
	}
	target, err := globalEngine.BuildTargetVector(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, x := range target {
		_, _ = fmt.Fprintf(out, "%-11s %.2f\n", embeddings.ComponentNames[i], x)
	}
	return nil
}

func printProfile(cmd *cobra.Command, p *models.TasteProfile) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "  chocolate: %s\n", p.ChocolatePreference)
	_, _ = fmt.Fprintf(out, "  fruit:     %s\n", p.FruitPreference)
	_, _ = fmt.Fprintf(out, "  drink:     %s\n", p.DrinkPreference)
	_, _ = fmt.Fprintf(out, "  texture:   %s\n", p.TexturePreference)
	_, _ = fmt.Fprintf(out, "  adventure: %s\n", p.AdventureLevel)
	_, _ = fmt.Fprintf(out, "  method:    %s\n", p.BrewingMethod)
	_, _ = fmt.Fprintf(out, "  grinder:   %t\n", p.HasGrinder)
}
