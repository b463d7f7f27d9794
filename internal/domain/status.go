package domain

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

// StatusUpdateRequest is the admin moderation form after coercion.
type StatusUpdateRequest struct {
	ID     int64  `json:"id" validate:"gt=0"`
	Status string `json:"status" validate:"required,status"`
}
