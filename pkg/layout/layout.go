// Package layout computes vertical pixel spans for events on a time grid.
// It is a pure calculation: the same function serves the day view and each
// of the week view's seven day columns.
package layout

import (
	"github.com/daybook/daybook/internal/utils"
)

// MinEventHeightPx keeps degenerate or very short events clickable.
const MinEventHeightPx = 15.0

// Span is a vertical pixel range on the grid, measured from midnight.
type Span struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Position maps a start/end wall-clock time to a Span for the given hour
// height. It returns false for entries the grid cannot position: all-day
// entries, a missing start time, or an unparsable start time. Such entries
// belong in the caller's all-day band.
//
// A missing end time, an unparsable end time, or an end not strictly after
// the start all resolve to an effective end of start plus one hour.
func Position(startTime, endTime string, allDay bool, hourHeightPx float64) (Span, bool) {
	if allDay || startTime == "" {
		return Span{}, false
	}

	startMinutes, err := utils.ClockMinutes(startTime)
	if err != nil {
		return Span{}, false
	}

	endMinutes := 0
	endPresent := false
	if endTime != "" {
		if parsed, err := utils.ClockMinutes(endTime); err == nil {
			endMinutes = parsed
			endPresent = true
		}
	}
	endMinutes = utils.EffectiveEndMinutes(startMinutes, endMinutes, endPresent)

	top := float64(startMinutes) / 60 * hourHeightPx
	height := float64(endMinutes-startMinutes) / 60 * hourHeightPx
	if height < MinEventHeightPx {
		height = MinEventHeightPx
	}

	return Span{Top: top, Height: height}, true
}
