package notify

import "strings"

// Permission mirrors the desktop notification grant. Default means the user has not
// answered yet.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(raw string) Permission {
	switch Permission(strings.ToLower(strings.TrimSpace(raw))) {
	case PermissionGranted:
		return PermissionGranted
	case PermissionDenied:
		return PermissionDenied
	default:
		return PermissionDefault
	}
}

// ShouldPrompt reports whether the enable-notifications prompt should be shown.
func (p Permission) ShouldPrompt() bool {
	return p == PermissionDefault
}

func (p Permission) Hint() string {
	switch p {
	case PermissionGranted:
		return "Desktop notifications are on."
	case PermissionDenied:
		return "Notifications are blocked. Completion uses sound only."
	default:
		return "Enable notifications to get alerted when a timer ends."
	}
}
