// Package events holds the messages exchanged between the dashboard
// components, and the commands that turn background channels into messages.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/warden/pkg/entitystore"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/store"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// StoreChangeMsg wraps a change announced by an entity store.
type StoreChangeMsg struct {
	entitystore.ChangeMsg
}

// LoadedMsg reports the end of a list request started by a panel.
type LoadedMsg struct {
	Component ComponentID
	Err       error
}

// Describe renders the message for the event log.
func (m LoadedMsg) Describe() string {
	return fmt.Sprintf(`component:%q err:%v`, m.Component, m.Err)
}

// DoneMsg reports the end of a mutation started by a panel. The outcome was
// already raised as a notification.
type DoneMsg struct {
	Component ComponentID
	Op        string
	Err       error
}

// Describe renders the message for the event log.
func (m DoneMsg) Describe() string {
	return fmt.Sprintf(`component:%q op:%q err:%v`, m.Component, m.Op, m.Err)
}

// NotificationMsg carries a notification to the toast stack.
type NotificationMsg struct {
	notify.Notification
}

// LocalChangeMsg announces a change of the settings or session saved on
// this machine.
type LocalChangeMsg struct {
	Event store.Event
}

// Describe renders the message for the event log.
func (m LocalChangeMsg) Describe() string {
	return fmt.Sprintf(`type:%q`, m.Event.Type)
}

// FormSubmitMsg is emitted when the user submits a form.
type FormSubmitMsg struct {
	Component ComponentID
	Values    map[string]string
}

// Describe renders the submission for logs, without the values.
func (m FormSubmitMsg) Describe() string {
	return fmt.Sprintf(`component:%q fields:%d`, m.Component, len(m.Values))
}

// FormCancelMsg is emitted when the user dismisses a form.
type FormCancelMsg struct {
	Component ComponentID
}

// Describe renders the message for the event log.
func (m FormCancelMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// LoginMsg reports the outcome of a login attempt.
type LoginMsg struct {
	Session store.Session
	Err     error
}

// Describe renders the message for the event log.
func (m LoginMsg) Describe() string {
	return fmt.Sprintf(`user:%q err:%v`, m.Session.User, m.Err)
}

// LogoutMsg asks the shell to return to the login view.
type LogoutMsg struct{}

// WaitForChange delivers the next store change.
func WaitForChange(ch <-chan entitystore.ChangeMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangeMsg{msg}
	}
}

// WaitForNotification delivers the next notification.
func WaitForNotification(ch <-chan notify.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{n}
	}
}

// WaitForLocalChange delivers the next local store change.
func WaitForLocalChange(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return LocalChangeMsg{Event: ev}
	}
}
