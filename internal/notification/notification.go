// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	_ "embed"

	"github.com/gen2brain/beeep"

	"github.com/cazelabs/cazechat/internal/logger"
)

// AppName is the title used for every cazechat notification.
const AppName = "cazechat"

//go:embed icon.png
var icon []byte

// notifier is swapped out in tests so they don't pop real notifications.
var notifier = beeep.Notify

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep notifier.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	err := notifier(title, message, icon)
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// ReplyReady sends a notification that the assistant answered in the named
// conversation.
func ReplyReady(conversationName string) error {
	return Send(AppName, "New reply in "+conversationName)
}
