package monitor

import (
	"fmt"
	"strings"
)

// PlainText renders r as uncolored lines for non-interactive output.
func (r RenderModel) PlainText() string {
	var b strings.Builder
	fmt.Fprintln(&b, r.Title)

	if r.Banner != "" {
		fmt.Fprintf(&b, "error: %s\n", r.Banner)
	}
	if r.ShowLoading {
		fmt.Fprintln(&b, r.LoadingText)
		return b.String()
	}

	if r.Warning != nil {
		fmt.Fprintf(&b, "%s: %s\n", r.Warning.Heading, r.Warning.Message)
		if r.Warning.BlockedNote != "" {
			fmt.Fprintf(&b, "  %s\n", r.Warning.BlockedNote)
		}
	}

	count := r.Count
	if r.BlockedBadge {
		count += " [" + BlockedBadge + "]"
	}
	fmt.Fprintf(&b, "%s: %s\n", r.CountCaption, count)
	fmt.Fprintf(&b, "Problem ID: %s\n", r.ProblemID)

	updated := r.LastUpdated
	if r.LastUpdatedAgo != "" {
		updated += " (" + r.LastUpdatedAgo + ")"
	}
	fmt.Fprintf(&b, "Last Updated: %s\n", updated)
	fmt.Fprintln(&b, r.AutoRefreshNote)
	return b.String()
}
