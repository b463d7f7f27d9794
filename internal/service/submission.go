package service

import (
	"context"
	"log/slog"

	"github.com/earcherc/realfoodfinder/internal/captcha"
	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
	"github.com/earcherc/realfoodfinder/pkg/validator"
)

type submissionService struct {
	locations LocationRepository
	links     LinkRepository
	captcha   CaptchaVerifier
	geocoder  Geocoder
	logger    *slog.Logger
}

func NewSubmissionService(
	locations LocationRepository,
	links LinkRepository,
	captcha CaptchaVerifier,
	geocoder Geocoder,
	logger *slog.Logger,
) SubmissionService {
	return &submissionService{
		locations: locations,
		links:     links,
		captcha:   captcha,
		geocoder:  geocoder,
		logger:    logger,
	}
}

// SubmitLocation runs validate, captcha, geocode and create in that order and
// stops at the first failure. Nothing is stored unless every step passes.
func (s *submissionService) SubmitLocation(ctx context.Context, req domain.LocationSubmissionRequest, meta domain.ClientMeta) (*domain.Location, error) {
	if err := validator.LocationSubmission(&req); err != nil {
		s.logger.Debug("location submission rejected", slog.Any("error", err))
		return nil, err
	}

	if err := s.verify(ctx, req.TurnstileToken, meta, captcha.ActionSubmitLocation); err != nil {
		return nil, err
	}

	coords, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		s.logger.Info("address could not be geocoded", slog.String("address", req.Address), slog.Any("error", err))
		return nil, err
	}

	created, err := s.locations.Create(ctx, domain.NewLocation{
		Name:           req.Name,
		Type:           domain.LocationType(req.Type),
		Description:    validator.OptionalString(req.Description),
		Address:        validator.OptionalString(req.Address),
		Latitude:       coords.Lat,
		Longitude:      coords.Lng,
		Foods:          req.Foods,
		Tags:           req.Tags,
		SubmitterName:  validator.OptionalString(req.SubmitterName),
		SubmitterEmail: validator.OptionalString(req.SubmitterEmail),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("location submitted", slog.Int64("id", created.ID), slog.String("type", string(created.Type)))
	return created, nil
}

func (s *submissionService) SubmitLink(ctx context.Context, req domain.LinkSubmissionRequest, meta domain.ClientMeta) (*domain.Link, error) {
	if err := validator.LinkSubmission(&req); err != nil {
		s.logger.Debug("link submission rejected", slog.Any("error", err))
		return nil, err
	}

	if err := s.verify(ctx, req.TurnstileToken, meta, captcha.ActionSubmitLink); err != nil {
		return nil, err
	}

	created, err := s.links.Create(ctx, domain.NewLink{
		Title:          req.Title,
		URL:            req.URL,
		Country:        req.Country,
		Description:    validator.OptionalString(req.Description),
		Products:       req.Products,
		Tags:           req.Tags,
		SubmitterName:  validator.OptionalString(req.SubmitterName),
		SubmitterEmail: req.SubmitterEmail,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("link submitted", slog.Int64("id", created.ID))
	return created, nil
}

func (s *submissionService) verify(ctx context.Context, token string, meta domain.ClientMeta, action string) error {
	verdict := s.captcha.Verify(ctx, captcha.Request{
		Token:    token,
		RemoteIP: meta.RemoteIP,
		Action:   action,
	})
	if verdict.OK {
		return nil
	}

	msg := verdict.Message
	if msg == "" {
		msg = captcha.MsgFailed
	}
	s.logger.Info("captcha check failed", slog.String("action", action), slog.String("reason", msg))
	return &e.CaptchaError{Message: msg}
}
