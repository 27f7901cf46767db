package bus

import "time"

// Event kinds published by the dashboard controller.
const (
	KindLogsLoaded        = "logs.loaded"
	KindLogsFiltered      = "logs.filtered"
	KindNotifySuccess     = "notify.success"
	KindNotifyError       = "notify.error"
	KindModalStateChanged = "modal.state_changed"
	KindThemeChanged      = "theme.changed"
)

// Namespaces for Subscribe.
const (
	NamespaceLogs   = "logs."
	NamespaceNotify = "notify."
	NamespaceModal  = "modal."
	NamespaceTheme  = "theme."
	NamespaceAll    = ""
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
