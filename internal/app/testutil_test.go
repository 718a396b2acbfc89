package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/backend"
	"github.com/cazelabs/cazechat/internal/config"
	"github.com/cazelabs/cazechat/internal/keys"
	"github.com/cazelabs/cazechat/internal/notification"
)

// testConfig creates a config that saves into the test's temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.New(filepath.Join(t.TempDir(), "config.json"))
}

// fakeSender records requests and answers with a fixed reply or error.
type fakeSender struct {
	mu       sync.Mutex
	reply    backend.Reply
	err      error
	requests []backend.Request
}

func (s *fakeSender) Send(_ context.Context, req backend.Request) (backend.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.reply, s.err
}

func (s *fakeSender) Requests() []backend.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]backend.Request(nil), s.requests...)
}

// testModel creates a Model backed by sender, sized 120x40. Notifications are
// captured instead of shown.
func testModel(t *testing.T, sender backend.Sender) *Model {
	t.Helper()
	notification.SetNotifier(func(string, string, any) error { return nil })
	t.Cleanup(notification.ResetNotifier)

	m := New(testConfig(t), "0.0.0-test", WithSender(sender), WithUserID("test-user"))
	return setSize(m, 120, 40)
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlL:
		return tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}
	case keys.CtrlN:
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	case keys.CtrlO:
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case keys.CtrlX:
		return tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// sendKeyCmd sends a key press and returns the model and the command.
func sendKeyCmd(m *Model, key string) (*Model, tea.Cmd) {
	result, cmd := m.Update(keyPress(key))
	return result.(*Model), cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// runSubmit types text, presses enter and resolves the request. It returns
// the model after the reply has been recorded.
func runSubmit(t *testing.T, m *Model, text string) *Model {
	t.Helper()
	m = typeText(m, text)
	m, cmd := sendKeyCmd(m, keys.Enter)
	if cmd == nil {
		t.Fatal("enter should start a request")
	}
	if !m.Loading() {
		t.Fatal("model should be loading after enter")
	}
	msg := findSubmissionResult(cmd)
	if msg == nil {
		t.Fatal("submit command did not produce a SubmissionResultMsg")
	}
	result, _ := m.Update(*msg)
	return result.(*Model)
}

// findSubmissionResult runs cmd and any batched commands until a
// SubmissionResultMsg appears. The send command comes first in the batch, so
// the tick commands after it are never run.
func findSubmissionResult(cmd tea.Cmd) *SubmissionResultMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case SubmissionResultMsg:
		return &msg
	case tea.BatchMsg:
		for _, c := range msg {
			if found := findSubmissionResult(c); found != nil {
				return found
			}
		}
	}
	return nil
}
