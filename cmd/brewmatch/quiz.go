// ABOUTME: Cobra command for the interactive taste questionnaire.
// ABOUTME: Runs the bubbletea quiz, saves the profile, and prints the top recommendations.
package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/brewmatch/internal/profiles"
	"github.com/2389-research/brewmatch/internal/recommend"
	"github.com/2389-research/brewmatch/internal/tui"
)

var quizEmail string

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the taste quiz",
	Long:  "Answer six questions about what you like to eat and drink and get matched with coffees.",
	RunE:  runQuiz,
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.Flags().StringVar(&quizEmail, "email", "", "Pre-fill the email question")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	submit := func(ctx context.Context, email string, a profiles.Answers) ([]recommend.ScoredCoffee, error) {
		_, p, err := globalProfiles.Submit(ctx, email, a)
		if err != nil {
			return nil, err
		}
		results, err := globalEngine.Recommend(ctx, p, 0)
		if err != nil {
			return nil, explainRecommendError(err)
		}
		return results, nil
	}

	p := tea.NewProgram(tui.NewQuizModel(quizEmail, submit))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.QuizModel)
	if !final.Completed() {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Quiz cancelled.")
		return nil
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Your matches, %s:\n", final.Email())
	printRecommendations(cmd.OutOrStdout(), final.Results(), false)
	return nil
}
