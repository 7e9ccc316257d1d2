// ABOUTME: Unit tests for the storage setup TUI wizard bubbletea model.
// ABOUTME: Uses synthetic tea.Msg values to test state machine transitions.
package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefaultPath = "/tmp/brewmatch/brewmatch.db"

func enter(t *testing.T, m SetupModel) (SetupModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(SetupModel), cmd
}

func TestNewSetupModel_DefaultValues(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	assert.Equal(t, StepDriver, m.step)
	assert.Empty(t, m.inputs[inputDriver].Value())
}

func TestNewSetupModel_ExistingConfig(t *testing.T) {
	current := Settings{
		Driver:     "postgres",
		Location:   "postgres://localhost/brew",
		FeedURL:    "https://feed.example.com",
		FeedAPIKey: "secret",
	}
	m := NewSetupModel(current, testDefaultPath)
	assert.Equal(t, current, m.Result())
}

func TestSetupModel_DefaultSQLiteFlow(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)

	m, _ = enter(t, m)
	require.Equal(t, StepLocation, m.step)
	assert.Equal(t, "sqlite", m.inputs[inputDriver].Value())

	m, _ = enter(t, m)
	require.Equal(t, StepFeedURL, m.step)
	assert.Equal(t, testDefaultPath, m.inputs[inputLocation].Value())

	// Empty feed URL skips the key step.
	m, cmd := enter(t, m)
	require.Equal(t, StepValidating, m.step)
	assert.NotNil(t, cmd, "validation + spinner tick")
}

func TestSetupModel_FeedAsksForKey(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	m.step = StepFeedURL
	m.inputs[inputFeedURL].SetValue("https://feed.example.com/")

	m, _ = enter(t, m)
	require.Equal(t, StepFeedKey, m.step)
	assert.Equal(t, "https://feed.example.com", m.inputs[inputFeedURL].Value())

	m, _ = enter(t, m)
	assert.Equal(t, StepValidating, m.step)
}

func TestSetupModel_UnknownDriverBlocked(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	m.inputs[inputDriver].SetValue("mysql")

	m, _ = enter(t, m)
	assert.Equal(t, StepDriver, m.step)
	assert.Contains(t, m.View(), "unknown driver")
}

func TestSetupModel_DriverNormalized(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	m.inputs[inputDriver].SetValue("  Postgres ")

	m, _ = enter(t, m)
	assert.Equal(t, "postgres", m.inputs[inputDriver].Value())
}

func TestSetupModel_PostgresRequiresDSN(t *testing.T) {
	m := NewSetupModel(Settings{Driver: "postgres"}, testDefaultPath)

	m, _ = enter(t, m)
	require.Equal(t, StepLocation, m.step)

	m, _ = enter(t, m)
	assert.Equal(t, StepLocation, m.step, "empty DSN is blocked")
	assert.Contains(t, m.View(), "DSN is required")

	m.inputs[inputLocation].SetValue("postgres://localhost/brew")
	m, _ = enter(t, m)
	assert.Equal(t, StepFeedURL, m.step)
}

func TestSetupModel_ValidationSuccess(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	m.step = StepValidating

	updated, _ := m.Update(validationResultMsg{err: nil})
	assert.Equal(t, StepDone, updated.(SetupModel).step)
}

func TestSetupModel_ValidationFailure(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	m.step = StepValidating

	updated, _ := m.Update(validationResultMsg{err: fmt.Errorf("connection refused")})
	m = updated.(SetupModel)
	assert.Equal(t, StepFailed, m.step)
	assert.Error(t, m.validationErr)
}

func TestSetupModel_FailedKeys(t *testing.T) {
	tests := []struct {
		key      rune
		wantStep Step
		wantQuit bool
		wantSave bool
	}{
		{'r', StepValidating, false, false},
		{'s', StepDone, false, true},
		{'q', StepFailed, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := NewSetupModel(Settings{}, testDefaultPath)
			m.step = StepFailed
			m.validationErr = fmt.Errorf("some error")

			updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{tt.key}})
			m = updated.(SetupModel)
			assert.Equal(t, tt.wantStep, m.step)
			assert.Equal(t, tt.wantQuit, m.quitting)
			assert.Equal(t, tt.wantSave, m.ShouldSave())
			assert.NotNil(t, cmd)
		})
	}
}

func TestSetupModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEscape} {
		m := NewSetupModel(Settings{}, testDefaultPath)
		updated, cmd := m.Update(tea.KeyMsg{Type: key})
		m = updated.(SetupModel)
		assert.True(t, m.quitting, "quitting after %v", key)
		assert.NotNil(t, cmd, "quit cmd after %v", key)
		assert.False(t, m.ShouldSave(), "ShouldSave after %v", key)
	}
}

func TestSetupModel_TypingForwardsToInput(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("postgres")})
	assert.Equal(t, "postgres", updated.(SetupModel).inputs[inputDriver].Value())
}

func TestSetupModel_Views(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	assert.Contains(t, m.View(), "BREWMATCH")
	assert.Contains(t, m.View(), "Step 1 of 4")

	m, _ = enter(t, m)
	assert.Contains(t, m.View(), "Step 2 of 4: Database file")

	m.step = StepValidating
	assert.Contains(t, m.View(), "Checking storage")

	m.step = StepDone
	assert.Contains(t, m.View(), "Ready to brew")

	m.step = StepFailed
	m.validationErr = fmt.Errorf("disk full")
	assert.Contains(t, m.View(), "disk full")
	assert.Contains(t, m.View(), "[r]etry")
}

func TestSetupModel_ViewFailedNilError(t *testing.T) {
	m := NewSetupModel(Settings{}, testDefaultPath)
	m.step = StepFailed
	view := m.View()
	assert.NotContains(t, view, "<nil>")
	assert.Contains(t, view, "unknown error")
}

func TestSetupModel_CtrlCDuringValidation(t *testing.T) {
	cancelled := false
	m := NewSetupModel(Settings{Driver: "sqlite", Location: testDefaultPath}, testDefaultPath)
	m.validateFn = func(ctx context.Context, _ Settings) error {
		<-ctx.Done()
		cancelled = true
		return ctx.Err()
	}
	m.step = StepFeedURL

	m, batchCmd := enter(t, m)
	require.Equal(t, StepValidating, m.step)

	// batchMsg[0] is the validation cmd, batchMsg[1] is the spinner tick.
	batchMsg := batchCmd().(tea.BatchMsg)
	done := make(chan tea.Msg)
	go func() {
		done <- batchMsg[0]()
	}()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, updated.(SetupModel).quitting)

	<-done
	assert.True(t, cancelled, "validation context should be cancelled")
}

func TestSetupModel_ValidationPassesSettings(t *testing.T) {
	var got Settings
	m := NewSetupModel(Settings{}, testDefaultPath)
	m.validateFn = func(_ context.Context, s Settings) error {
		got = s
		return nil
	}
	m.inputs[inputDriver].SetValue("postgres")
	m.inputs[inputLocation].SetValue("postgres://localhost/brew")
	m.inputs[inputFeedURL].SetValue("https://feed.example.com")
	m.inputs[inputFeedKey].SetValue("secret-abc")
	m.step = StepFeedKey

	_, batchCmd := enter(t, m)
	batchMsg := batchCmd().(tea.BatchMsg)
	batchMsg[0]()

	assert.Equal(t, Settings{
		Driver:     "postgres",
		Location:   "postgres://localhost/brew",
		FeedURL:    "https://feed.example.com",
		FeedAPIKey: "secret-abc",
	}, got)
}

func TestSetupModel_FullFlowWithTeaProgram(t *testing.T) {
	m := NewSetupModel(Settings{Driver: "sqlite"}, testDefaultPath)
	m.validateFn = func(_ context.Context, _ Settings) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}

	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithoutRenderer())

	go func() {
		p.Send(tea.KeyMsg{Type: tea.KeyEnter}) // driver
		p.Send(tea.KeyMsg{Type: tea.KeyEnter}) // path
		p.Send(tea.KeyMsg{Type: tea.KeyEnter}) // no feed -> validates -> done -> quit
	}()

	result, err := p.Run()
	require.NoError(t, err)

	final := result.(SetupModel)
	assert.True(t, final.ShouldSave(), "step=%d quitting=%v", final.step, final.quitting)
	assert.Equal(t, testDefaultPath, final.Result().Location)
}
