package domain

import "time"

type LocationType string

const (
	LocationFarm    LocationType = "farm"
	LocationHome    LocationType = "home"
	LocationStore   LocationType = "store"
	LocationDropoff LocationType = "dropoff"
	LocationOther   LocationType = "other"
)

type Coordinates struct {
	Lat float64 `json:"latitude" validate:"finite,lat"`
	Lng float64 `json:"longitude" validate:"finite,lng"`
}

type Location struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Type           LocationType `json:"type"`
	Description    *string      `json:"description"`
	Address        *string      `json:"address"`
	Country        *string      `json:"country"`
	Latitude       float64      `json:"latitude"`
	Longitude      float64      `json:"longitude"`
	Foods          []string     `json:"foods"`
	Tags           []string     `json:"tags"`
	SubmitterName  *string      `json:"submitterName"`
	SubmitterEmail *string      `json:"submitterEmail"`
	Status         Status       `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// NewLocation is a validated submission ready to be stored as pending.
type NewLocation struct {
	Name           string
	Type           LocationType
	Description    *string
	Address        *string
	Country        *string
	Latitude       float64
	Longitude      float64
	Foods          []string
	Tags           []string
	SubmitterName  *string
	SubmitterEmail *string
}

// LocationSubmissionRequest is the public POST body. Coordinates are never
// taken from the client: the address is geocoded server-side.
type LocationSubmissionRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=120"`
	Type           string   `json:"type" validate:"required,location_type"`
	Description    string   `json:"description" validate:"max=500"`
	Address        string   `json:"address" validate:"required,min=5,max=255"`
	Foods          []string `json:"foods" validate:"min=1,max=16,dive,max=80"`
	Tags           []string `json:"tags" validate:"max=16,dive,max=80"`
	SubmitterName  string   `json:"submitterName" validate:"max=120"`
	SubmitterEmail string   `json:"submitterEmail" validate:"required,max=255,email"`
	TurnstileToken string   `json:"turnstileToken" validate:"-"`
}

func (l *Location) Clone() *Location {
	if l == nil {
		return nil
	}
	out := *l
	out.Foods = append(make([]string, 0, len(l.Foods)), l.Foods...)
	out.Tags = append(make([]string, 0, len(l.Tags)), l.Tags...)
	return &out
}
