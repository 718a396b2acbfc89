package notification

import (
	"errors"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
		icon    any
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
		icon    any
	}{title, message, icon})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:        "successful notification",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:        "empty title",
			title:       "",
			message:     "Message with empty title",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "empty message",
			title:       "Title",
			message:     "",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "unicode content",
			title:       "通知",
			message:     "🎉 Notification with emoji",
			mockErr:     nil,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.title {
				t.Errorf("title = %q, want %q", call.title, tt.title)
			}
			if call.message != tt.message {
				t.Errorf("message = %q, want %q", call.message, tt.message)
			}
			// Verify icon is the embedded PNG bytes
			iconBytes, ok := call.icon.([]byte)
			if !ok {
				t.Errorf("icon type = %T, want []byte", call.icon)
			} else if len(iconBytes) == 0 {
				t.Error("icon is empty, expected embedded PNG bytes")
			}
		})
	}
}

func TestReplyReady(t *testing.T) {
	tests := []struct {
		name             string
		conversationName string
		expectedTitle    string
		expectedMessage  string
		mockErr          error
		expectError      bool
	}{
		{
			name:             "basic conversation",
			conversationName: "my-chat",
			expectedTitle:    "cazechat",
			expectedMessage:  "New reply in my-chat",
			mockErr:          nil,
			expectError:      false,
		},
		{
			name:             "empty conversation name",
			conversationName: "",
			expectedTitle:    "cazechat",
			expectedMessage:  "New reply in ",
			mockErr:          nil,
			expectError:      false,
		},
		{
			name:             "name with spaces",
			conversationName: "Weekend Plans",
			expectedTitle:    "cazechat",
			expectedMessage:  "New reply in Weekend Plans",
			mockErr:          nil,
			expectError:      false,
		},
		{
			name:             "unicode conversation name",
			conversationName: "会话-123",
			expectedTitle:    "cazechat",
			expectedMessage:  "New reply in 会话-123",
			mockErr:          nil,
			expectError:      false,
		},
		{
			name:             "notification failure",
			conversationName: "test-session",
			expectedTitle:    "cazechat",
			expectedMessage:  "New reply in test-session",
			mockErr:          errors.New("notification system unavailable"),
			expectError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := ReplyReady(tt.conversationName)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.expectedTitle {
				t.Errorf("title = %q, want %q", call.title, tt.expectedTitle)
			}
			if call.message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", call.message, tt.expectedMessage)
			}
		})
	}
}

func TestResetNotifier(t *testing.T) {
	mock := &mockNotification{}
	SetNotifier(mock.notify)
	ResetNotifier()

	if notifier == nil {
		t.Fatal("notifier should not be nil after reset")
	}
	if len(mock.calls) != 0 {
		t.Errorf("mock should not have been called, got %d calls", len(mock.calls))
	}
}
