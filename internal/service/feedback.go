package service

import (
	"context"
	"fmt"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
	"github.com/earcherc/realfoodfinder/pkg/validator"
)

type feedbackService struct {
	forwarder FeedbackForwarder
}

func NewFeedbackService(forwarder FeedbackForwarder) FeedbackService {
	return &feedbackService{forwarder: forwarder}
}

// Submit reports e.ErrNotConfigured before looking at the payload.
func (s *feedbackService) Submit(ctx context.Context, req domain.FeedbackRequest) error {
	if !s.forwarder.Enabled() {
		return fmt.Errorf("service.Feedback.Submit: %w", e.ErrNotConfigured)
	}
	if err := validator.Feedback(&req); err != nil {
		return err
	}
	return s.forwarder.Send(ctx, req)
}
