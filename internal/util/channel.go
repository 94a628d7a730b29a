package util

import "fmt"

// ChannelLabel renders a channel index as a fixed-width display label so
// per-channel rows line up in tables and HUD panels.
func ChannelLabel(channel int) string {
	return fmt.Sprintf("ch %03d", channel)
}

// ChannelRangeLabel renders an inclusive displayed channel range
func ChannelRangeLabel(first, last int) string {
	if first == last {
		return ChannelLabel(first)
	}
	return fmt.Sprintf("ch %03d-%03d", first, last)
}

// CategoryLabel renders a spike category id
func CategoryLabel(category int) string {
	return fmt.Sprintf("unit %d", category)
}
