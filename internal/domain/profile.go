package domain

import "time"

// Athlete experience levels shown on the profile. Free-form strings on the
// wire; these are the values the client offers.
const (
	LevelBeginner     = "Iniciante"
	LevelIntermediate = "Intermediário"
	LevelAdvanced     = "Avançado"
	LevelElite        = "Elite"
)

// Defaults applied when no profile row exists yet for a user.
const (
	DefaultProfileWeight = 85.0
	DefaultProfileLevel  = LevelIntermediate
)

// UserProfile is the single per-user profile record. It is overwritten
// wholesale on save; there is no profile history. PhotoKey references the
// stored profile picture in object storage (nil when none was captured).
type UserProfile struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"userId"`
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	Level     string    `json:"level"`
	PhotoKey  *string   `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
