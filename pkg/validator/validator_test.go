package validator

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"
)

func validLocation() domain.LocationSubmissionRequest {
	return domain.LocationSubmissionRequest{
		Name:           "Test Farm",
		Type:           "farm",
		Address:        "123 Main St, Springfield",
		Foods:          []string{"Eggs"},
		Tags:           []string{},
		SubmitterEmail: "a@b.com",
	}
}

func validLink() domain.LinkSubmissionRequest {
	return domain.LinkSubmissionRequest{
		Title:          "Raw Mountain Honey",
		URL:            "https://example.com/raw-honey",
		Country:        "United States",
		Products:       []string{"Honey"},
		Tags:           []string{"Raw"},
		SubmitterEmail: "seller@example.com",
	}
}

func requireValidationError(t *testing.T, err error, field string) *e.ValidationError {
	t.Helper()
	require.Error(t, err)
	var ve *e.ValidationError
	require.True(t, errors.As(err, &ve), "expected *e.ValidationError, got %T: %v", err, err)
	assert.Equal(t, field, ve.Field)
	assert.NotEmpty(t, ve.Message)
	return ve
}

func TestLocationSubmission_Valid(t *testing.T) {
	req := validLocation()
	req.Name = "  Test Farm  "
	req.Description = "   "
	req.SubmitterName = ""

	require.NoError(t, LocationSubmission(&req))
	assert.Equal(t, "Test Farm", req.Name)
	assert.Equal(t, "", req.Description)
	assert.Nil(t, OptionalString(req.Description))
	assert.Equal(t, []string{}, req.Tags)
}

func TestLocationSubmission_FirstFailingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.LocationSubmissionRequest)
		field  string
	}{
		{"name too short", func(r *domain.LocationSubmissionRequest) { r.Name = " A " }, "name"},
		{"name too long", func(r *domain.LocationSubmissionRequest) { r.Name = strings.Repeat("x", 121) }, "name"},
		{"type case sensitive", func(r *domain.LocationSubmissionRequest) { r.Type = "Farm" }, "type"},
		{"type unknown", func(r *domain.LocationSubmissionRequest) { r.Type = "market" }, "type"},
		{"description too long", func(r *domain.LocationSubmissionRequest) { r.Description = strings.Repeat("d", 501) }, "description"},
		{"address missing", func(r *domain.LocationSubmissionRequest) { r.Address = "   " }, "address"},
		{"address trivial", func(r *domain.LocationSubmissionRequest) { r.Address = "US" }, "address"},
		{"no foods", func(r *domain.LocationSubmissionRequest) { r.Foods = []string{" ", ""} }, "foods"},
		{"email invalid", func(r *domain.LocationSubmissionRequest) { r.SubmitterEmail = "not-an-email" }, "submitterEmail"},
		{"email missing", func(r *domain.LocationSubmissionRequest) { r.SubmitterEmail = "" }, "submitterEmail"},
		{"name before email", func(r *domain.LocationSubmissionRequest) {
			r.Name = ""
			r.SubmitterEmail = "bad"
		}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLocation()
			tt.mutate(&req)
			requireValidationError(t, LocationSubmission(&req), tt.field)
		})
	}
}

func TestLocationSubmission_ListNormalization(t *testing.T) {
	req := validLocation()
	req.Foods = []string{" Eggs ", "eggs", "", "Raw Milk", "EGGS", "raw milk"}
	req.Tags = []string{"Organic", "organic", "  "}

	require.NoError(t, LocationSubmission(&req))
	assert.Equal(t, []string{"Eggs", "Raw Milk"}, req.Foods)
	assert.Equal(t, []string{"Organic"}, req.Tags)
}

func TestLocationSubmission_ListCap(t *testing.T) {
	req := validLocation()
	for i := 0; i < 17; i++ {
		req.Foods = append(req.Foods, "food-"+strings.Repeat("x", i+1))
	}
	requireValidationError(t, LocationSubmission(&req), "foods")

	// 17 entries that collapse to one are fine.
	req = validLocation()
	for i := 0; i < 17; i++ {
		req.Foods = append(req.Foods, "eggs")
	}
	require.NoError(t, LocationSubmission(&req))
	assert.Equal(t, []string{"Eggs"}, req.Foods)
}

func TestLinkSubmission(t *testing.T) {
	t.Run("valid with duplicates collapsed", func(t *testing.T) {
		req := validLink()
		req.Products = []string{"Honey", " Honey ", "Water"}
		req.Tags = []string{"Raw", "Raw", ""}
		require.NoError(t, LinkSubmission(&req))
		assert.Equal(t, []string{"Honey", "Water"}, req.Products)
		assert.Equal(t, []string{"Raw"}, req.Tags)
	})

	t.Run("product must match exactly", func(t *testing.T) {
		req := validLink()
		req.Products = []string{"honey"}
		ve := requireValidationError(t, LinkSubmission(&req), "products")
		assert.Contains(t, ve.Message, "honey")
	})

	t.Run("at least one product", func(t *testing.T) {
		req := validLink()
		req.Products = nil
		ve := requireValidationError(t, LinkSubmission(&req), "products")
		assert.Equal(t, "Select at least one product type.", ve.Message)
	})

	t.Run("unknown tag", func(t *testing.T) {
		req := validLink()
		req.Tags = []string{"Spicy"}
		requireValidationError(t, LinkSubmission(&req), "tags")
	})

	t.Run("relative url", func(t *testing.T) {
		req := validLink()
		req.URL = "/raw-honey"
		requireValidationError(t, LinkSubmission(&req), "url")
	})

	t.Run("non http scheme", func(t *testing.T) {
		req := validLink()
		req.URL = "javascript:alert(1)"
		requireValidationError(t, LinkSubmission(&req), "url")
	})

	t.Run("country required", func(t *testing.T) {
		req := validLink()
		req.Country = " "
		requireValidationError(t, LinkSubmission(&req), "country")
	})
}

func TestCoordinates_Bounds(t *testing.T) {
	accepted := [][2]any{
		{-90.0, -180.0},
		{90.0, 180.0},
		{0.0, 0.0},
		{"39.1", "-89.6"},
		{json.Number("51.9244"), json.Number("4.4777")},
	}
	for _, in := range accepted {
		_, err := Coordinates(in[0], in[1])
		assert.NoError(t, err, "expected %v,%v to be accepted", in[0], in[1])
	}

	rejected := []struct {
		lat, lng any
		field    string
	}{
		{90.0001, 0.0, "latitude"},
		{-90.5, 0.0, "latitude"},
		{0.0, 180.01, "longitude"},
		{0.0, -181.0, "longitude"},
		{math.NaN(), 0.0, "latitude"},
		{0.0, math.Inf(1), "longitude"},
		{"north", 0.0, "latitude"},
		{nil, 0.0, "latitude"},
	}
	for _, in := range rejected {
		_, err := Coordinates(in.lat, in.lng)
		requireValidationError(t, err, in.field)
	}

	c, err := Coordinates("39.1", -89.6)
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 39.1, Lng: -89.6}, c)
}

func TestStatusUpdate(t *testing.T) {
	req, err := StatusUpdate(" 42 ", "approved")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUpdateRequest{ID: 42, Status: "approved"}, req)

	_, err = StatusUpdate("0", "approved")
	requireValidationError(t, err, "id")

	_, err = StatusUpdate("abc", "approved")
	requireValidationError(t, err, "id")

	_, err = StatusUpdate("1.5", "approved")
	requireValidationError(t, err, "id")

	_, err = StatusUpdate("7", "Approved")
	requireValidationError(t, err, "status")

	_, err = StatusUpdate("7", "deleted")
	requireValidationError(t, err, "status")
}

func TestNormalizeList_KeepsFirstSpelling(t *testing.T) {
	got := NormalizeList([]string{"Grass-Fed", "grass-fed", "GRASS-FED", "Raw"})
	assert.Equal(t, []string{"Grass-Fed", "Raw"}, got)
	assert.NotNil(t, NormalizeList(nil))
}

func TestFeedback(t *testing.T) {
	req := domain.FeedbackRequest{Message: "  the map is great but slow  ", Email: ""}
	require.NoError(t, Feedback(&req))
	assert.Equal(t, "the map is great but slow", req.Message)

	req = domain.FeedbackRequest{Message: "too short"}
	requireValidationError(t, Feedback(&req), "message")

	req = domain.FeedbackRequest{Message: "long enough message", Email: "nope"}
	requireValidationError(t, Feedback(&req), "email")
}
