// ABOUTME: Interactive TUI taste questionnaire.
// ABOUTME: Collects email, six flavor answers and grinder ownership, then shows the top matches.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/brewmatch/internal/models"
	"github.com/2389-research/brewmatch/internal/profiles"
	"github.com/2389-research/brewmatch/internal/recommend"
)

// QuizStep represents the current questionnaire stage.
type QuizStep int

const (
	QuizEmail QuizStep = iota
	QuizQuestion
	QuizSubmitting
	QuizDone
	QuizFailed
)

// SubmitFn saves the answers and returns recommendations for them.
type SubmitFn func(ctx context.Context, email string, a profiles.Answers) ([]recommend.ScoredCoffee, error)

type option struct {
	value string
	label string
}

type question struct {
	title   string
	options []option
}

// Question order matches the answers array in QuizModel.
const (
	qChocolate = iota
	qFruit
	qDrink
	qTexture
	qAdventure
	qMethod
	qGrinder
	questionCount
)

var questions = [questionCount]question{
	qChocolate: {"Which chocolate do you reach for?", []option{
		{string(models.ChocolateWhite), "White chocolate"},
		{string(models.ChocolateMilk), "Milk chocolate"},
		{string(models.ChocolateDark70), "Dark chocolate (70%)"},
		{string(models.ChocolateDark85), "Very dark chocolate (85%)"},
	}},
	qFruit: {"Which fruit do you enjoy most?", []option{
		{string(models.FruitCitrus), "Citrus (orange, lemon)"},
		{string(models.FruitBerries), "Red berries"},
		{string(models.FruitYellow), "Yellow fruit (peach, mango)"},
		{string(models.FruitDried), "Dried fruit (raisins, dates)"},
	}},
	qDrink: {"What else do you like to drink?", []option{
		{string(models.DrinkWineBold), "Full-bodied red wine"},
		{string(models.DrinkWineLight), "Light white wine"},
		{string(models.DrinkBeerIPA), "IPA"},
		{string(models.DrinkBeerStout), "Stout"},
	}},
	qTexture: {"Which texture do you prefer?", []option{
		{string(models.TextureTeaLike), "Light, like tea"},
		{string(models.TextureCreamy), "Creamy"},
		{string(models.TextureSyrupy), "Thick and syrupy"},
	}},
	qAdventure: {"How adventurous are you with coffee?", []option{
		{string(models.AdventureSafe), "Keep it classic"},
		{string(models.AdventureModerate), "Open to something new"},
		{string(models.AdventureWild), "Surprise me"},
	}},
	qMethod: {"How do you brew at home?", []option{
		{string(models.MethodEspresso), "Espresso machine"},
		{string(models.MethodV60), "V60 / pour-over"},
		{string(models.MethodFrenchPress), "French press"},
		{string(models.MethodMoka), "Moka pot"},
		{string(models.MethodCapsule), "Capsules"},
	}},
	qGrinder: {"Do you own a grinder?", []option{
		{"yes", "Yes"},
		{"no", "No"},
	}},
}

// quizResultMsg carries the outcome of the async submission.
type quizResultMsg struct {
	results []recommend.ScoredCoffee
	err     error
}

// QuizModel is the bubbletea model for the taste questionnaire.
type QuizModel struct {
	step      QuizStep
	email     textinput.Model
	question  int
	cursor    int
	answers   [questionCount]string
	spinner   spinner.Model
	submitFn  SubmitFn
	cancelCtx *cancelHolder
	inputErr  string
	results   []recommend.ScoredCoffee
	err       error
	quitting  bool
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("130")).Bold(true)
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewQuizModel creates a questionnaire that hands the answers to submit.
func NewQuizModel(email string, submit SubmitFn) QuizModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.Focus()
	emailInput.Width = 50
	emailInput.SetValue(email)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return QuizModel{
		step:      QuizEmail,
		email:     emailInput,
		spinner:   s,
		submitFn:  submit,
		cancelCtx: &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m QuizModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case QuizEmail:
			return m.updateEmail(msg)
		case QuizQuestion:
			return m.updateQuestion(msg)
		case QuizFailed:
			return m.updateFailed(msg)
		case QuizDone:
			return m, tea.Quit
		}

	case quizResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err != nil {
			m.err = msg.err
			m.step = QuizFailed
			return m, nil
		}
		m.results = msg.results
		m.step = QuizDone
		return m, nil

	case spinner.TickMsg:
		if m.step == QuizSubmitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m QuizModel) updateEmail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}

	email := models.NormalizeEmail(m.email.Value())
	if err := models.NewUser(email).Validate(); err != nil {
		m.inputErr = "please enter a valid email address"
		return m, nil
	}
	m.inputErr = ""
	m.email.SetValue(email)
	m.email.Blur()
	m.step = QuizQuestion
	m.question = 0
	m.cursor = 0
	return m, nil
}

func (m QuizModel) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := questions[m.question].options

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(options)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.question > 0 {
			m.question--
			m.cursor = indexOf(questions[m.question].options, m.answers[m.question])
		}
	case "enter":
		m.answers[m.question] = options[m.cursor].value
		if m.question == questionCount-1 {
			m.step = QuizSubmitting
			return m, tea.Batch(m.startSubmit(), m.spinner.Tick)
		}
		m.question++
		m.cursor = indexOf(questions[m.question].options, m.answers[m.question])
	}
	return m, nil
}

func (m QuizModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		switch msg.Runes[0] {
		case 'r':
			m.step = QuizSubmitting
			m.err = nil
			return m, tea.Batch(m.startSubmit(), m.spinner.Tick)
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m QuizModel) startSubmit() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	email := m.email.Value()
	answers := m.Answers()
	fn := m.submitFn
	return func() tea.Msg {
		results, err := fn(ctx, email, answers)
		return quizResultMsg{results: results, err: err}
	}
}

func indexOf(options []option, value string) int {
	for i, o := range options {
		if o.value == value {
			return i
		}
	}
	return 0
}

// View implements tea.Model.
func (m QuizModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   BREWMATCH"))
	b.WriteString(titleStyle.Render(" - Taste Quiz"))
	b.WriteString("\n\n")

	switch m.step {
	case QuizEmail:
		b.WriteString(stepStyle.Render("Your email"))
		b.WriteString("\n")
		b.WriteString(m.email.View())
		b.WriteString("\n")

	case QuizQuestion:
		q := questions[m.question]
		b.WriteString(stepStyle.Render(fmt.Sprintf("Question %d of %d", m.question+1, questionCount)))
		b.WriteString("\n")
		b.WriteString(q.title)
		b.WriteString("\n\n")
		for i, o := range q.options {
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> " + o.label))
			} else {
				b.WriteString("  " + o.label)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("↑/↓ choose  enter select  ← back"))
		b.WriteString("\n")

	case QuizSubmitting:
		b.WriteString(m.spinner.View())
		b.WriteString(" Finding your coffees...")
		b.WriteString("\n")

	case QuizDone:
		b.WriteString(successStyle.Render(fmt.Sprintf("✓ Profile saved for %s", m.email.Value())))
		b.WriteString("\n\n")
		if len(m.results) == 0 {
			b.WriteString("No coffees in the catalog yet.\n")
		}
		for i, r := range m.results {
			b.WriteString(fmt.Sprintf("%d. %s", i+1, r.Coffee.Name))
			if price := r.Coffee.FormattedPrice(); price != "" {
				b.WriteString("  " + price)
			}
			b.WriteString(scoreStyle.Render(fmt.Sprintf("  (score %.2f)", r.Score)))
			b.WriteString("\n")
			if r.Coffee.Description != "" {
				b.WriteString(promptStyle.Render("   " + r.Coffee.Description))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("press any key to exit"))
		b.WriteString("\n")

	case QuizFailed:
		errMsg := "unknown error"
		if m.err != nil {
			errMsg = m.err.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Could not save your answers: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [q]uit"))
		b.WriteString("\n")
	}

	if m.inputErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.inputErr))
		b.WriteString("\n")
	}

	return b.String()
}

// Answers returns the answers chosen so far.
func (m QuizModel) Answers() profiles.Answers {
	return profiles.Answers{
		Chocolate:  models.ChocolatePreference(m.answers[qChocolate]),
		Fruit:      models.FruitPreference(m.answers[qFruit]),
		Drink:      models.DrinkPreference(m.answers[qDrink]),
		Texture:    models.TexturePreference(m.answers[qTexture]),
		Adventure:  models.AdventureLevel(m.answers[qAdventure]),
		Method:     models.BrewingMethod(m.answers[qMethod]),
		HasGrinder: m.answers[qGrinder] == "yes",
	}
}

// Email returns the normalized email entered.
func (m QuizModel) Email() string {
	return m.email.Value()
}

// Results returns the recommendations shown after a successful submission.
func (m QuizModel) Results() []recommend.ScoredCoffee {
	return m.results
}

// Completed reports whether the answers were saved. Quitting from the results
// screen still counts.
func (m QuizModel) Completed() bool {
	return m.step == QuizDone
}
