package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/earcherc/realfoodfinder/internal/captcha"
	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/internal/service"
	mock_service "github.com/earcherc/realfoodfinder/internal/service/mocks"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func strPtr(s string) *string { return &s }

type submissionDeps struct {
	locations *mock_service.MockLocationRepository
	links     *mock_service.MockLinkRepository
	captcha   *mock_service.MockCaptchaVerifier
	geocoder  *mock_service.MockGeocoder
	svc       service.SubmissionService
}

func newSubmissionDeps(t *testing.T) submissionDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := submissionDeps{
		locations: mock_service.NewMockLocationRepository(ctrl),
		links:     mock_service.NewMockLinkRepository(ctrl),
		captcha:   mock_service.NewMockCaptchaVerifier(ctrl),
		geocoder:  mock_service.NewMockGeocoder(ctrl),
	}
	d.svc = service.NewSubmissionService(d.locations, d.links, d.captcha, d.geocoder, newTestLogger())
	return d
}

func locationRequest() domain.LocationSubmissionRequest {
	return domain.LocationSubmissionRequest{
		Name:           "  Test Farm ",
		Type:           "farm",
		Description:    "   ",
		Address:        " 123 Main St, Springfield ",
		Foods:          []string{"Eggs", "eggs", " Raw Milk "},
		Tags:           nil,
		SubmitterEmail: "a@b.com",
		TurnstileToken: "tok",
	}
}

func TestSubmitLocation_OK(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)
	ctx := context.Background()
	meta := domain.ClientMeta{RemoteIP: "203.0.113.9"}

	d.captcha.EXPECT().
		Verify(gomock.Any(), captcha.Request{Token: "tok", RemoteIP: "203.0.113.9", Action: captcha.ActionSubmitLocation}).
		Return(captcha.Verdict{OK: true})
	d.geocoder.EXPECT().
		Geocode(gomock.Any(), "123 Main St, Springfield").
		Return(domain.Coordinates{Lat: 39.78, Lng: -89.65}, nil)

	wantIn := domain.NewLocation{
		Name:           "Test Farm",
		Type:           domain.LocationFarm,
		Address:        strPtr("123 Main St, Springfield"),
		Latitude:       39.78,
		Longitude:      -89.65,
		Foods:          []string{"Eggs", "Raw Milk"},
		Tags:           []string{},
		SubmitterEmail: strPtr("a@b.com"),
	}
	created := &domain.Location{ID: 1000, Name: "Test Farm", Status: domain.StatusPending, CreatedAt: time.Now()}
	d.locations.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in domain.NewLocation) (*domain.Location, error) {
			if !reflect.DeepEqual(in, wantIn) {
				t.Fatalf("unexpected create input:\n got=%+v\nwant=%+v", in, wantIn)
			}
			return created, nil
		})

	got, err := d.svc.SubmitLocation(ctx, locationRequest(), meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != created {
		t.Fatalf("expected the stored record to be returned")
	}
}

func TestSubmitLocation_ValidationStopsPipeline(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)

	req := locationRequest()
	req.Name = "A"

	_, err := d.svc.SubmitLocation(context.Background(), req, domain.ClientMeta{})
	var ve *e.ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected validation error on name, got %v", err)
	}
}

func TestSubmitLocation_CaptchaRejected(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)

	d.captcha.EXPECT().
		Verify(gomock.Any(), gomock.Any()).
		Return(captcha.Verdict{Message: captcha.MsgUnsuccessful})

	_, err := d.svc.SubmitLocation(context.Background(), locationRequest(), domain.ClientMeta{})
	if !errors.Is(err, e.ErrCaptchaRejected) {
		t.Fatalf("expected captcha rejection, got %v", err)
	}
	if msg, _ := e.PublicMessage(err); msg != captcha.MsgUnsuccessful {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestSubmitLocation_CaptchaWithoutMessage(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)

	d.captcha.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(captcha.Verdict{})

	_, err := d.svc.SubmitLocation(context.Background(), locationRequest(), domain.ClientMeta{})
	if msg, _ := e.PublicMessage(err); msg != captcha.MsgFailed {
		t.Fatalf("expected fallback captcha message, got %q", msg)
	}
}

func TestSubmitLocation_GeocodeNotFound(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)

	d.captcha.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(captcha.Verdict{OK: true})
	d.geocoder.EXPECT().
		Geocode(gomock.Any(), gomock.Any()).
		Return(domain.Coordinates{}, &e.GeocodeError{Message: "not found"})

	_, err := d.svc.SubmitLocation(context.Background(), locationRequest(), domain.ClientMeta{})
	if !errors.Is(err, e.ErrGeocodeNotFound) {
		t.Fatalf("expected geocode error, got %v", err)
	}
}

func TestSubmitLocation_StoreFailure(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)
	storeErr := errors.New("postgres.Location.Create: internal error")

	d.captcha.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(captcha.Verdict{OK: true})
	d.geocoder.EXPECT().Geocode(gomock.Any(), gomock.Any()).Return(domain.Coordinates{Lat: 1, Lng: 2}, nil)
	d.locations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	_, err := d.svc.SubmitLocation(context.Background(), locationRequest(), domain.ClientMeta{})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, ok := e.PublicMessage(err); ok {
		t.Fatalf("store errors must not carry a public message")
	}
}

func linkRequest() domain.LinkSubmissionRequest {
	return domain.LinkSubmissionRequest{
		Title:          "Raw Mountain Honey",
		URL:            "https://example.com/raw-honey",
		Country:        "United States",
		Products:       []string{"Honey", "Honey"},
		Tags:           []string{"Raw"},
		SubmitterName:  " ",
		SubmitterEmail: "seller@example.com",
		TurnstileToken: "tok",
	}
}

func TestSubmitLink_OK(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)

	d.captcha.EXPECT().
		Verify(gomock.Any(), captcha.Request{Token: "tok", Action: captcha.ActionSubmitLink}).
		Return(captcha.Verdict{OK: true})

	wantIn := domain.NewLink{
		Title:          "Raw Mountain Honey",
		URL:            "https://example.com/raw-honey",
		Country:        "United States",
		Products:       []string{"Honey"},
		Tags:           []string{"Raw"},
		SubmitterEmail: "seller@example.com",
	}
	d.links.EXPECT().
		Create(gomock.Any(), wantIn).
		Return(&domain.Link{ID: 1000, Status: domain.StatusPending}, nil)

	got, err := d.svc.SubmitLink(context.Background(), linkRequest(), domain.ClientMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1000 || got.Status != domain.StatusPending {
		t.Fatalf("unexpected link %+v", got)
	}
}

func TestSubmitLink_InvalidProduct(t *testing.T) {
	t.Parallel()
	d := newSubmissionDeps(t)

	req := linkRequest()
	req.Products = []string{"Milk"}

	_, err := d.svc.SubmitLink(context.Background(), req, domain.ClientMeta{})
	var ve *e.ValidationError
	if !errors.As(err, &ve) || ve.Field != "products" {
		t.Fatalf("expected validation error on products, got %v", err)
	}
}
