package domain

import "time"

// Status is a task workflow column (e.g. "À faire", "En cours").
type Status struct {
	ID        string
	Name      string
	Color     string
	Order     int
	CreatedAt time.Time
}
