package classify

import (
	"fmt"
	"strings"
	"time"
)

// SlotSeparator joins the two halves of a stored time slot.
const SlotSeparator = " - "

// JoinSlot builds the stored "<start> - <end>" form of a window.
func JoinSlot(start, end time.Time) string {
	return start.Format(time.RFC3339) + SlotSeparator + end.Format(time.RFC3339)
}

// SplitSlot splits a stored slot into its raw halves. ok is false when the
// value does not have exactly two parts.
func SplitSlot(slot string) (start, end string, ok bool) {
	parts := strings.Split(slot, SlotSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// FormatTimeSlot renders a window label for display. Windows fully contained
// in yesterday, today or tomorrow (relative to now, in now's location) get
// that word; anything else gets a compact "M-D (h:mmAM) to M-D (h:mmPM)"
// range. Malformed input is returned unchanged rather than treated as an
// error.
func FormatTimeSlot(now time.Time, slot string) string {
	rawStart, rawEnd, ok := SplitSlot(slot)
	if !ok {
		return slot
	}

	start, err := ParseInstant(rawStart)
	if err != nil {
		return slot
	}
	end, err := ParseInstant(rawEnd)
	if err != nil {
		return slot
	}

	loc := now.Location()
	today := midnight(now, loc)
	startDay := midnight(start, loc)
	endDay := midnight(end, loc)

	switch {
	case startDay.Equal(today) && endDay.Equal(today):
		return "Today"
	case startDay.Equal(today.AddDate(0, 0, 1)) && endDay.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	case startDay.Equal(today.AddDate(0, 0, -1)) && endDay.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return fmt.Sprintf("%s to %s", compact(start, loc), compact(end, loc))
	}
}

// compact renders one end of a range as "M-D (h:mmAM)".
func compact(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	hour := t.Hour()
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d-%d (%d:%02d%s)", int(t.Month()), t.Day(), hour12, t.Minute(), meridiem)
}
