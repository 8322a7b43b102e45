package panel

import "math"

// MessagesPerAdmin returns round(total/admins), or 0 when there are no
// active admins.
func MessagesPerAdmin(totalMessages, activeAdmins int64) int64 {
	if activeAdmins <= 0 {
		return 0
	}
	return int64(math.Round(float64(totalMessages) / float64(activeAdmins)))
}

// ResolvedPerDay spreads resolved chats evenly over a fixed window of
// windowDays. Non-positive windows use DefaultWindowDays.
func ResolvedPerDay(resolvedChats int64, windowDays int) int64 {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return int64(math.Round(float64(resolvedChats) / float64(windowDays)))
}
