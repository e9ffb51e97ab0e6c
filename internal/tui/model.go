// Package tui implements the interactive calculator: the molar mass is
// recomputed on every keystroke.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/history"
)

// maxInputLength bounds the formula typed into the input.
const maxInputLength = 256

// Options configures the interactive calculator.
type Options struct {
	// Runner evaluates the typed formula. Its resolver, if any, names it.
	Runner *batch.Runner

	// History records formulas saved with enter. Nil disables saving.
	History *history.Store

	// Precision is the number of decimals shown for masses.
	Precision int

	// Color enables styled output.
	Color bool
}

// Model is the bubbletea model for the interactive calculator.
type Model struct {
	ctx     context.Context
	runner  *batch.Runner
	history *history.Store

	input     textinput.Model
	item      *batch.Item
	status    string
	statusErr bool

	styles    *pretty.Styles
	precision int
	keys      KeyMap
	help      help.Model
	width     int
}

// New creates a new calculator model.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	runner := opts.Runner
	if runner == nil {
		runner = batch.New(batch.Options{})
	}

	input := textinput.New()
	input.Prompt = promptText
	input.Placeholder = "Ca(OH)2"
	input.CharLimit = maxInputLength
	input.Focus()

	return Model{
		ctx:       ctx,
		runner:    runner,
		history:   opts.History,
		input:     input,
		styles:    pretty.NewStyles(opts.Color),
		precision: opts.Precision,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Item returns the evaluation of the current input, or nil when the input
// is blank.
func (m Model) Item() *batch.Item {
	return m.item
}

// savedMsg is the result of saving a formula to the history.
type savedMsg struct {
	entry history.Entry
	added bool
	err   error
}

// save records the current formula in the history.
func (m Model) save() tea.Cmd {
	if m.history == nil || m.item == nil || !m.item.Valid() {
		return nil
	}
	store, ctx := m.history, m.ctx
	clean, mass := m.item.Parse.Clean, m.item.Mass.TotalMass
	return func() tea.Msg {
		entry, added, err := store.Add(ctx, clean, mass)
		return savedMsg{entry: entry, added: added, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		switch {
		case msg.err != nil:
			m.setStatus(fmt.Sprintf("Could not save: %v", msg.err), true)
		case msg.added:
			m.setStatus("Saved "+msg.entry.Formula+" to history", false)
		default:
			m.setStatus(msg.entry.Formula+" is already in the history", false)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Save):
			if m.history == nil {
				m.setStatus("History is disabled", true)
				return m, nil
			}
			return m, m.save()

		case key.Matches(msg, m.keys.Clear):
			m.input.Reset()
			m.evaluate()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.status = ""
		m.evaluate()
	}
	return m, cmd
}

// evaluate recomputes the result for the current input.
func (m *Model) evaluate() {
	value := m.input.Value()
	if strings.TrimSpace(value) == "" {
		m.item = nil
		return
	}
	item := m.runner.Evaluate("", 0, value)
	m.item = &item
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View renders the calculator.
func (m Model) View() string {
	return m.renderView()
}

// Run starts the interactive calculator and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(New(ctx, opts), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
