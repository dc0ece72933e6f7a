package model

import "time"

// Task categories recognized by the color table. Unrecognized values are
// stored as-is and rendered with the default color.
const (
	CategoryWork     = "work"
	CategoryHealth   = "health"
	CategoryLearning = "learning"
	CategoryPersonal = "personal"
	CategoryFinance  = "finance"
	CategoryTravel   = "travel"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// DefaultColor is assigned to tasks whose category is not in the color table.
const DefaultColor = "gray"

var categoryColors = map[string]string{
	CategoryWork:     "blue",
	CategoryHealth:   "purple",
	CategoryLearning: "teal",
	CategoryPersonal: "pink",
	CategoryFinance:  "green",
	CategoryTravel:   "yellow",
}

// ColorFor returns the display color for a category. It is consulted only at
// creation; editing the category of an existing task does not recolor it.
func ColorFor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return DefaultColor
}

// Task is a single time-boxed item on a user's board.
//
// StartTime and EndTime are stored as RFC 3339 strings rather than time.Time:
// the scheduling window arrives from clients as text, and a record with an
// unreadable window must survive storage so classification can skip it
// per-record instead of failing the whole batch. TimeSlot keeps the raw
// "<start> - <end>" form the clients exchange.
type Task struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index" json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	TimeSlot    string    `json:"timeSlot"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
