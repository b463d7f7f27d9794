package domain

type FeedbackRequest struct {
	Pathname string `json:"pathname" validate:"max=200"`
	PageURL  string `json:"pageUrl" validate:"max=500"`
	Email    string `json:"email" validate:"omitempty,max=255,email"`
	Message  string `json:"message" validate:"required,min=10,max=4000"`
}
