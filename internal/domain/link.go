package domain

import "time"

type Link struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Country        string    `json:"country"`
	Description    *string   `json:"description"`
	Products       []string  `json:"products"`
	Tags           []string  `json:"tags"`
	SubmitterName  *string   `json:"submitterName"`
	SubmitterEmail string    `json:"submitterEmail"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type NewLink struct {
	Title          string
	URL            string
	Country        string
	Description    *string
	Products       []string
	Tags           []string
	SubmitterName  *string
	SubmitterEmail string
}

type LinkSubmissionRequest struct {
	Title          string   `json:"title" validate:"required,min=2,max=160"`
	URL            string   `json:"url" validate:"required,max=2000,absurl"`
	Country        string   `json:"country" validate:"required,min=2,max=100"`
	Description    string   `json:"description" validate:"max=500"`
	Products       []string `json:"products" validate:"min=1,max=12,dive,link_product"`
	Tags           []string `json:"tags" validate:"max=12,dive,tag_option"`
	SubmitterName  string   `json:"submitterName" validate:"max=120"`
	SubmitterEmail string   `json:"submitterEmail" validate:"required,max=255,email"`
	TurnstileToken string   `json:"turnstileToken" validate:"-"`
}

func (l *Link) Clone() *Link {
	if l == nil {
		return nil
	}
	out := *l
	out.Products = append(make([]string, 0, len(l.Products)), l.Products...)
	out.Tags = append(make([]string, 0, len(l.Tags)), l.Tags...)
	return &out
}
