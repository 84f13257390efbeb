package service

import "github.com/gen2brain/beeep"

// DesktopNotifier shows notifications through the platform notification
// daemon.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// NoopNotifier drops every notification.
type NoopNotifier struct{}

func (NoopNotifier) Notify(string, string) error { return nil }
