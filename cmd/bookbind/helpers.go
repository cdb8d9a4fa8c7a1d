package main

import "fmt"

// formatSeconds renders a whole-second duration as H:MM:SS.
func formatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// formatMillis renders a millisecond timestamp as H:MM:SS, truncating the
// sub-second remainder.
func formatMillis(millis int64) string {
	return formatSeconds(millis / 1000)
}

func enabledDisabled(value bool) string {
	if value {
		return "enabled"
	}
	return "disabled"
}
