package service

import (
	"context"

	"github.com/earcherc/realfoodfinder/internal/captcha"
	"github.com/earcherc/realfoodfinder/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

type SubmissionService interface {
	SubmitLocation(ctx context.Context, req domain.LocationSubmissionRequest, meta domain.ClientMeta) (*domain.Location, error)
	SubmitLink(ctx context.Context, req domain.LinkSubmissionRequest, meta domain.ClientMeta) (*domain.Link, error)
}

// Public read side: approved rows only, newest first.
type CatalogService interface {
	ApprovedLocations(ctx context.Context) ([]*domain.Location, error)
	ApprovedLinks(ctx context.Context) ([]*domain.Link, error)
}

type ModerationService interface {
	Authorize(key string) error
	Dashboard(ctx context.Context, key string) (*domain.Dashboard, error)
	UpdateLocationStatus(ctx context.Context, key, rawID, rawStatus string) (*domain.Location, error)
	UpdateLinkStatus(ctx context.Context, key, rawID, rawStatus string) (*domain.Link, error)
}

type FeedbackService interface {
	Submit(ctx context.Context, req domain.FeedbackRequest) error
}

type LocationRepository interface {
	ListApproved(ctx context.Context) ([]*domain.Location, error)
	ListAll(ctx context.Context) ([]*domain.Location, error)
	Create(ctx context.Context, in domain.NewLocation) (*domain.Location, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Location, error)
}

type LinkRepository interface {
	ListApproved(ctx context.Context) ([]*domain.Link, error)
	ListAll(ctx context.Context) ([]*domain.Link, error)
	Create(ctx context.Context, in domain.NewLink) (*domain.Link, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Link, error)
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, req captcha.Request) captcha.Verdict
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

type FeedbackForwarder interface {
	Enabled() bool
	Send(ctx context.Context, fb domain.FeedbackRequest) error
}

type Service struct {
	SubmissionService SubmissionService
	CatalogService    CatalogService
	ModerationService ModerationService
	FeedbackService   FeedbackService
}

func NewService(
	submissionService SubmissionService,
	catalogService CatalogService,
	moderationService ModerationService,
	feedbackService FeedbackService,
) *Service {
	return &Service{
		SubmissionService: submissionService,
		CatalogService:    catalogService,
		ModerationService: moderationService,
		FeedbackService:   feedbackService,
	}
}
