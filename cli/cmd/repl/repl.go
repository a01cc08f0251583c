package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/jitcalc/calc"
	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
	"github.com/ardnew/jitcalc/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help            Print this cruft
  jit [on|off]    Show or select native code execution
  policy [name]   Show or select the overflow policy (checked, wrap, saturate)
  stats           Print interpretation metrics
  history         List evaluated expressions
  clear           Clear screen
  quit            Exit REPL

Usage:
  Type an expression to evaluate it, e.g. 2 + 3 * 4
  Operands are integers 0 to 255; operators are + - * /
  Type quit to exit
  Press Tab / Shift-Tab to cycle through command completions
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatCtrlCommand formats the control command echo line with prompt and input
// styled.
func formatCtrlCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// Config configures a REPL session.
type Config struct {
	Interpreter *calc.Interpreter
	Logger      log.Logger
	// HistoryPath is the history file. Empty keeps history in memory.
	HistoryPath string
	JIT         bool
}

func (c Config) interpreter() *calc.Interpreter {
	if c.Interpreter == nil {
		return calc.New(calc.WithLogger(c.Logger))
	}

	return c.Interpreter
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	interp       *calc.Interpreter
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	preTabCursor int           // cursor position before tab-cycling began
	preTabText   string        // input text before tab-cycling began
	evalText     string
	ctrlText     string
	evalCursor   int
	ctrlCursor   int
	width        int // terminal width for ellipsization
	mode         inputMode
	tabActive    bool // whether user is tab-cycling
	useJIT       bool
	quitting     bool
}

// Run starts the interactive terminal REPL.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("history", cfg.HistoryPath),
		slog.Bool("jit", cfg.JIT))

	history := NewHistory(cfg.HistoryPath)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", cfg.HistoryPath),
			slog.Any("error", err))
	}

	cfg.Logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()))

	p := tea.NewProgram(newModel(ctx, cfg, history), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		interp:     cfg.interpreter(),
		logger:     cfg.Logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
		useJIT:     cfg.JIT,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch input := m.input.Value(); {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render(m.hint()))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

// hint is shown below an empty input line.
func (m model) hint() string {
	if m.mode == modeCtrl {
		return "Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"
	}

	return fmt.Sprintf("Type an expression or press Esc for commands [%s, %s]",
		calc.ModeName(m.useJIT), m.interp.Policy())
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil

	case tea.KeyShiftUp:
		return m.historyPrevInMode(), nil

	case tea.KeyShiftDown:
		return m.historyNextInMode(), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode(), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space accepts the current candidate while tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step through the candidates. A single
// candidate is completed and confirmed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(m.wordStart + len(replacement))
	m.wordEnd = m.wordStart + len(replacement)
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals it.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	// Reset both mode inputs after submission
	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	return m.evaluate(input)
}

func (m model) evaluate(input string) (model, tea.Cmd) {
	echo := tea.Println(formatCommand(input))

	if input == "quit" {
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)
	}

	v, err := m.interp.Interpret(m.ctxFunc(), input, m.useJIT)
	if err != nil {
		return m, tea.Sequence(echo,
			tea.Println(errorStyle.Render(formatError(err, input))))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(strconv.Itoa(int(v)))))
}

// formatError renders err with a caret under the offending column when the
// position is known.
func formatError(err error, input string) string {
	return strings.TrimSuffix(lang.WrapError(err).Format(input), "\n")
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	name, args := parts[0], parts[1:]

	echo := tea.Println(formatCtrlCommand(input))

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", name),
		slog.Any("args", args))

	var (
		out string
		err error
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "c", "clear":
		return m, tea.ClearScreen

	case "h", "help":
		out = helpMessage()

	case "jit":
		m, out, err = m.setJIT(args)

	case "policy":
		m, out, err = m.setPolicy(args)

	case "stats":
		out, err = m.stats()

	case "history":
		out = m.listHistory()

	default:
		err = fmt.Errorf("%w: %s (try 'help')", ErrUnknownCommand, name)
	}

	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(out))
}

func (m model) setJIT(args []string) (model, string, error) {
	if len(args) > 0 {
		switch args[0] {
		case "on":
			if !jit.Supported {
				return m, "", jit.ErrUnsupportedPlatform
			}

			m.useJIT = true

		case "off":
			m.useJIT = false

		default:
			return m, "", fmt.Errorf("%w: jit %s (expected on or off)", ErrUsage, args[0])
		}
	}

	return m, "mode: " + calc.ModeName(m.useJIT), nil
}

func (m model) setPolicy(args []string) (model, string, error) {
	if len(args) > 0 {
		p, ok := lang.ParsePolicy(args[0])
		if !ok {
			return m, "", fmt.Errorf("%w: policy %s (expected one of %s)",
				ErrUsage, args[0], strings.Join(ctrlArgs("policy"), ", "))
		}

		m.interp = m.interp.With(calc.WithPolicy(p))
	}

	return m, "policy: " + m.interp.Policy().String(), nil
}

func (m model) stats() (string, error) {
	metrics := m.interp.Metrics()
	if metrics == nil {
		return hintStyle.Render("metrics disabled"), nil
	}

	var buf bytes.Buffer
	if err := metrics.Write(&buf); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (m model) listHistory() string {
	var b strings.Builder

	for i, e := range m.history.Entries() {
		if e.Mode == modeEval {
			fmt.Fprintf(&b, "%s %s\n", hintStyle.Render(fmt.Sprintf("%4d", i+1)), e.Line)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// recall replaces the input with history entry i, switching to its mode.
func (m model) recall(i int) model {
	entry, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	m.historyIdx = i

	if m.mode != entry.Mode {
		m = m.switchToMode(entry.Mode)
	}

	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// clearRecall leaves history navigation with an empty input.
func (m model) clearRecall() model {
	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(&m, false)

	return m
}

func (m model) historyPrev() model {
	if m.historyIdx > 0 {
		return m.recall(m.historyIdx - 1)
	}

	return m
}

func (m model) historyNext() model {
	if m.historyIdx < m.history.Len()-1 {
		return m.recall(m.historyIdx + 1)
	}

	return m.clearRecall()
}

func (m model) historyPrevInMode() model {
	for i := m.historyIdx - 1; i >= 0; i-- {
		if entry, err := m.history.Entry(i); err == nil && entry.Mode == m.mode {
			return m.recall(i)
		}
	}

	return m
}

func (m model) historyNextInMode() model {
	for i := m.historyIdx + 1; i < m.history.Len(); i++ {
		if entry, err := m.history.Entry(i); err == nil && entry.Mode == m.mode {
			return m.recall(i)
		}
	}

	if m.historyIdx < m.history.Len() {
		return m.clearRecall()
	}

	return m
}

// toggleMode switches between eval and control modes, preserving input state.
func (m model) toggleMode() model {
	if m.mode == modeEval {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeEval)
}

// switchToMode switches to the specified mode, preserving input state.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText, m.evalCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
