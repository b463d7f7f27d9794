package validator

import (
	"github.com/earcherc/realfoodfinder/internal/domain"
)

// LocationSubmission normalizes req in place and validates it.
func LocationSubmission(req *domain.LocationSubmissionRequest) error {
	req.Name = NormalizeString(req.Name)
	req.Type = NormalizeString(req.Type)
	req.Description = NormalizeString(req.Description)
	req.Address = NormalizeString(req.Address)
	req.Foods = NormalizeList(req.Foods)
	req.Tags = NormalizeList(req.Tags)
	req.SubmitterName = NormalizeString(req.SubmitterName)
	req.SubmitterEmail = NormalizeString(req.SubmitterEmail)

	return ValidateStruct(req)
}

// LinkSubmission normalizes req in place and validates it. Products and tags
// are closed lists, so each entry must match exactly before duplicates are
// collapsed.
func LinkSubmission(req *domain.LinkSubmissionRequest) error {
	req.Title = NormalizeString(req.Title)
	req.URL = NormalizeString(req.URL)
	req.Country = NormalizeString(req.Country)
	req.Description = NormalizeString(req.Description)
	req.Products = TrimList(req.Products)
	req.Tags = TrimList(req.Tags)
	req.SubmitterName = NormalizeString(req.SubmitterName)
	req.SubmitterEmail = NormalizeString(req.SubmitterEmail)

	if err := ValidateStruct(req); err != nil {
		return err
	}

	req.Products = NormalizeList(req.Products)
	req.Tags = NormalizeList(req.Tags)
	return nil
}

// StatusUpdate coerces the admin form fields.
func StatusUpdate(rawID, rawStatus string) (domain.StatusUpdateRequest, error) {
	id, err := CoercePositiveInt("id", rawID)
	if err != nil {
		return domain.StatusUpdateRequest{}, err
	}

	req := domain.StatusUpdateRequest{ID: id, Status: NormalizeString(rawStatus)}
	if err := ValidateStruct(&req); err != nil {
		return domain.StatusUpdateRequest{}, err
	}
	return req, nil
}

// Coordinates coerces and range-checks a latitude/longitude pair.
func Coordinates(lat, lng any) (domain.Coordinates, error) {
	la, err := CoerceFloat("latitude", lat)
	if err != nil {
		return domain.Coordinates{}, err
	}
	lo, err := CoerceFloat("longitude", lng)
	if err != nil {
		return domain.Coordinates{}, err
	}

	c := domain.Coordinates{Lat: la, Lng: lo}
	if err := ValidateStruct(&c); err != nil {
		return domain.Coordinates{}, err
	}
	return c, nil
}

func Feedback(req *domain.FeedbackRequest) error {
	req.Pathname = NormalizeString(req.Pathname)
	req.PageURL = NormalizeString(req.PageURL)
	req.Email = NormalizeString(req.Email)
	req.Message = NormalizeString(req.Message)

	return ValidateStruct(req)
}
