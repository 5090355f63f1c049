// internal/domain/exercise.go
package domain

import "time"

// LogType distinguishes the two kinds of weight-log entries.
type LogType string

const (
	LogTypeLoad LogType = "LOAD" // a superseded working load
	LogTypePR   LogType = "PR"   // a superseded personal record
)

// MaxHistoryEntries caps the per-exercise weight-log history. Only the three
// most recent entries are kept; older ones are pruned on update.
const MaxHistoryEntries = 3

// Exercise represents a tracked exercise on the performance dashboard.
// LastWeight/LastDate hold the most recent working load, PBWeight/PBDate the
// personal record. Dates are display strings ("12 Out" style), kept as the
// client renders them rather than as timestamps.
type Exercise struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id"`
	UserID     string      `gorm:"index;size:36;not null" json:"userId"`
	Name       string      `gorm:"not null" json:"name"`
	Category   string      `json:"category"` // free text, "Peito / Empurrar" convention
	LastWeight float64     `json:"lastWeight"`
	LastDate   string      `json:"lastDate"`
	PBWeight   float64     `json:"pbWeight"`
	PBDate     string      `json:"pbDate"`
	AvgVolume  float64     `json:"avgVolume"`
	Progress   int         `json:"progress"` // 0-100, assigned once at creation
	History    []WeightLog `gorm:"foreignKey:ExerciseID;constraint:OnDelete:CASCADE" json:"history,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// WeightLog is a single immutable history entry for an exercise. Entries are
// appended only when a working load or PR is superseded, newest first.
type WeightLog struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ExerciseID string    `gorm:"index;size:36;not null" json:"-"`
	Weight     float64   `json:"weight"`
	Date       string    `json:"date"`
	Type       LogType   `gorm:"size:8" json:"type"`
	CreatedAt  time.Time `json:"-"`
}

// ExercisePatch carries the updatable fields of an exercise. Progress and
// history are never patched directly; history moves only through the
// reconciliation rules in the exercise service.
type ExercisePatch struct {
	Name       string
	Category   string
	LastWeight float64
	LastDate   string
	PBWeight   float64
	PBDate     string
	AvgVolume  float64
}
