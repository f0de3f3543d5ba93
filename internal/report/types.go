package report

import (
	"errors"
	"time"
)

// Status is the report lifecycle state. Pending reports may be started
// directly or go through assignment; Resolved is terminal.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusAssigned   Status = "Assigned"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Category names the department bucket a complaint belongs to.
type Category string

const (
	CategorySanitation  Category = "Sanitation"
	CategoryPolice      Category = "Police"
	CategoryElectricity Category = "Electricity"
	CategoryRoads       Category = "Roads"
	CategoryWater       Category = "Water"
	CategoryOther       Category = "Other"
)

// Priority is the citizen-chosen urgency.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Coordinates is an optional GPS fix captured at submission time.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Image references the evidence photo. The bytes live outside the store;
// only the reference is persisted.
type Image struct {
	URI      string `json:"uri"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Type     string `json:"type"`
	FileName string `json:"fileName"`
}

// Report is the complaint record. Coordinates and Image serialize as
// explicit nulls when absent, matching the stored layout the mobile shell
// produced.
type Report struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"userId"`
	UserName            string       `json:"userName"`
	UserEmail           string       `json:"userEmail"`
	Category            Category     `json:"category"`
	Priority            Priority     `json:"priority"`
	Location            string       `json:"location"`
	Description         string       `json:"description"`
	Status              Status       `json:"status"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
	Coordinates         *Coordinates `json:"coordinates"`
	Image               *Image       `json:"image"`
	AssignedTo          string       `json:"assignedTo,omitempty"`
	AssignedAt          *time.Time   `json:"assignedAt,omitempty"`
	UpdatedBy           string       `json:"updatedBy,omitempty"`
	UpdatedByDepartment string       `json:"updatedByDepartment,omitempty"`
}

// Draft is the citizen-provided part of a new report.
type Draft struct {
	Category    Category
	Priority    Priority
	Location    string
	Description string
	Coordinates *Coordinates
	Image       *Image
}

var (
	ErrNotFound      = errors.New("report: not found")
	ErrInvalidStatus = errors.New("report: invalid status")
	ErrResolved      = errors.New("report: resolved reports cannot change status")
)
