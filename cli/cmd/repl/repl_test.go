package repl

import (
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/jitcalc/calc"
	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
)

func testModel(t *testing.T, cfg Config) model {
	t.Helper()

	return newModel(t.Context(), cfg, NewHistory(""))
}

func typeText(m model, s string) model {
	for _, r := range s {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	return m.handleKey(tea.KeyMsg{Type: k})
}

// expectInput fails the test if the input line or mode differ from want.
func expectInput(t *testing.T, m model, value string, mode inputMode) {
	t.Helper()

	if got := m.input.Value(); got != value {
		t.Errorf("input = %q, want %q", got, value)
	}

	if m.mode != mode {
		t.Errorf("mode = %v, want %v", m.mode, mode)
	}
}

func TestModel_Evaluate(t *testing.T) {
	m := testModel(t, Config{})

	m = typeText(m, "2 + 3 * 4")
	expectInput(t, m, "2 + 3 * 4", modeEval)

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("Enter returned no command")
	}

	expectInput(t, m, "", modeEval)

	if m.quitting {
		t.Error("model quit after evaluating")
	}

	want := []HistoryEntry{{"2 + 3 * 4", modeEval}}
	if got := m.history.Entries(); !slices.Equal(got, want) {
		t.Errorf("history = %v, want %v", got, want)
	}
}

func TestModel_QuitInEvalMode(t *testing.T) {
	m := testModel(t, Config{})

	m = typeText(m, "quit")
	m, cmd := press(m, tea.KeyEnter)

	if cmd == nil || !m.quitting {
		t.Fatalf("quit: cmd = %v, quitting = %v", cmd, m.quitting)
	}

	if v := m.View(); v != "" {
		t.Errorf("View() after quit = %q, want empty", v)
	}
}

func TestModel_ToggleMode(t *testing.T) {
	m := testModel(t, Config{})

	m = typeText(m, "1 +")
	m, _ = press(m, tea.KeyEsc)
	expectInput(t, m, "", modeCtrl)

	m = typeText(m, "sta")
	m, _ = press(m, tea.KeyEsc)
	expectInput(t, m, "1 +", modeEval)

	m, _ = press(m, tea.KeyEsc)
	expectInput(t, m, "sta", modeCtrl)
}

func TestModel_Completion(t *testing.T) {
	m := testModel(t, Config{})
	m, _ = press(m, tea.KeyEsc)

	m = typeText(m, "pol")
	if len(m.matches) != 1 {
		t.Fatalf("matches for %q = %d, want 1", "pol", len(m.matches))
	}

	m, _ = press(m, tea.KeyTab)
	expectInput(t, m, "policy", modeCtrl)

	if len(m.matches) != 0 {
		t.Errorf("matches after completion = %d, want 0", len(m.matches))
	}

	m = typeText(m, " a")
	if len(m.matches) == 0 {
		t.Fatal("no matches for policy argument")
	}

	m, _ = press(m, tea.KeyTab)
	if !m.tabActive {
		t.Fatal("Tab did not start cycling")
	}

	first := m.input.Value()

	m, _ = press(m, tea.KeyTab)
	if m.input.Value() == first {
		t.Errorf("second Tab kept %q", first)
	}

	// Esc while cycling restores the typed text.
	m, _ = press(m, tea.KeyEsc)
	if m.tabActive {
		t.Error("Esc did not stop cycling")
	}

	expectInput(t, m, "policy a", modeCtrl)
}

func TestModel_NoCompletionInEvalMode(t *testing.T) {
	m := typeText(testModel(t, Config{}), "he")

	if len(m.matches) != 0 {
		t.Errorf("matches in eval mode = %d, want 0", len(m.matches))
	}
}

func TestModel_Commands(t *testing.T) {
	m := testModel(t, Config{Interpreter: calc.New(calc.WithMetrics(calc.NewMetrics()))})

	m, out, err := m.setPolicy([]string{"wrap"})
	if err != nil || out != "policy: wrap" || m.interp.Policy() != lang.PolicyWrap {
		t.Errorf("policy wrap = %q, %v (policy %v)", out, err, m.interp.Policy())
	}

	if _, _, err := m.setPolicy([]string{"clamp"}); !errors.Is(err, ErrUsage) {
		t.Errorf("policy clamp error = %v, want %v", err, ErrUsage)
	}

	m, out, err = m.setJIT([]string{"off"})
	if err != nil || out != "mode: tree" {
		t.Errorf("jit off = %q, %v", out, err)
	}

	if _, _, err := m.setJIT([]string{"maybe"}); !errors.Is(err, ErrUsage) {
		t.Errorf("jit maybe error = %v, want %v", err, ErrUsage)
	}

	if jit.Supported {
		m, out, err = m.setJIT([]string{"on"})
		if err != nil || out != "mode: jit" || !m.useJIT {
			t.Errorf("jit on = %q, %v (useJIT %v)", out, err, m.useJIT)
		}
	} else if _, _, err := m.setJIT([]string{"on"}); !errors.Is(err, jit.ErrUnsupportedPlatform) {
		t.Errorf("jit on error = %v, want %v", err, jit.ErrUnsupportedPlatform)
	}

	m.useJIT = false
	m, _ = m.evaluate("200 + 100")

	out, err = m.stats()
	if err != nil {
		t.Fatalf("stats() error = %v", err)
	}

	if want := `jitcalc_interpret_total{mode="tree",outcome="ok"} 1`; !strings.Contains(out, want) {
		t.Errorf("stats() = %q, missing %q", out, want)
	}
}

func TestModel_StatsDisabled(t *testing.T) {
	out, err := testModel(t, Config{}).stats()
	if err != nil {
		t.Fatalf("stats() error = %v", err)
	}

	if !strings.Contains(out, "metrics disabled") {
		t.Errorf("stats() = %q", out)
	}
}

func TestModel_History(t *testing.T) {
	m := testModel(t, Config{})

	for _, line := range []string{"1", "2"} {
		m = typeText(m, line)
		m, _ = press(m, tea.KeyEnter)
	}

	m, _ = press(m, tea.KeyEsc)
	m = typeText(m, "help")
	m, _ = press(m, tea.KeyEnter)

	m, _ = press(m, tea.KeyUp)
	expectInput(t, m, "help", modeCtrl)

	m, _ = press(m, tea.KeyUp)
	expectInput(t, m, "2", modeEval)

	m, _ = press(m, tea.KeyShiftUp)
	expectInput(t, m, "1", modeEval)

	m, _ = press(m, tea.KeyShiftDown)
	expectInput(t, m, "2", modeEval)

	m, _ = press(m, tea.KeyShiftDown)
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("past newest entry: input = %q, index = %d", m.input.Value(), m.historyIdx)
	}

	list := m.listHistory()
	if n := strings.Count(list, "\n") + 1; n != 2 || strings.Contains(list, "help") {
		t.Errorf("listHistory() = %q, want 2 eval entries", list)
	}
}

func TestModel_CtrlC(t *testing.T) {
	m := typeText(testModel(t, Config{}), "12")

	m, cmd := press(m, tea.KeyCtrlC)
	if cmd != nil || m.input.Value() != "" || m.quitting {
		t.Errorf("first Ctrl-C: cmd = %v, input = %q, quitting = %v",
			cmd, m.input.Value(), m.quitting)
	}

	m, _ = press(m, tea.KeyCtrlC)
	if !m.quitting {
		t.Error("second Ctrl-C did not quit")
	}
}

func TestFormatError(t *testing.T) {
	_, err := calc.Interpret("1 & 2", false)
	if err == nil {
		t.Fatal("Interpret(\"1 & 2\") succeeded")
	}

	want := "unexpected character (char=\"&\")\n  | 1 & 2\n  |   ^"
	if got := formatError(err, "1 & 2"); got != want {
		t.Errorf("formatError() = %q, want %q", got, want)
	}
}
