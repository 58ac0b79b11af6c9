// Package project defines the wire shape of the hackathon projects listing.
// It mirrors the upstream JSON faithfully: optional fields keep their
// presence information and no defaults are substituted here.
package project

import (
	"encoding/json"
	"fmt"
)

// Page is the decoded response for one listing request.
type Page struct {
	// Data holds the projects on this page, in upstream order.
	Data []Project

	// TotalCount is the number of projects reported by the API.
	// Informational only; it never bounds the fetch loop.
	TotalCount int
}

// Project is one hackathon submission.
type Project struct {
	Slug                    string
	Name                    string
	RepoURL                 Optional
	PresentationURL         Optional
	ProjectImageID          Optional
	Banned                  bool
	Reviewed                bool
	Seen                    int8
	HackathonName           string
	PrizeTracks             []Track
	SponsoredPrizes         []string
	ImageURL                Optional
	ProjectImageContentType Optional
	Description             Optional
	AdditionalInformation   Optional
}

// Track is a named prize category.
type Track struct {
	Name string
}

// wirePage uses pointers so missing and null required keys can be told
// apart from zero values.
type wirePage struct {
	Data       *[]Project `json:"data"`
	TotalCount *int       `json:"totalCount"`
}

type wireProject struct {
	Slug                    *string   `json:"slug"`
	Name                    *string   `json:"name"`
	RepoURL                 Optional  `json:"repoUrl"`
	PresentationURL         Optional  `json:"presentationUrl"`
	ProjectImageID          Optional  `json:"projectImageId"`
	Banned                  *bool     `json:"banned"`
	Reviewed                *bool     `json:"reviewed"`
	Seen                    *int8     `json:"seen"`
	HackathonName           *string   `json:"hackathonName"`
	PrizeTracks             *[]Track  `json:"prizeTracks"`
	SponsoredPrizes         *[]string `json:"sponsoredPrizes"`
	ImageURL                Optional  `json:"imageUrl"`
	ProjectImageContentType Optional  `json:"projectImageContentType"`
	Description             Optional  `json:"description"`
	AdditionalInformation   Optional  `json:"additionalInformation"`
}

type wireTrack struct {
	Name *string `json:"name"`
}

// MissingFieldError reports a required key that was absent or null.
type MissingFieldError struct {
	Object string
	Field  string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Object, e.Field)
}

// UnmarshalJSON decodes a page and enforces its required keys.
func (p *Page) UnmarshalJSON(data []byte) error {
	var w wirePage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Data == nil {
		return &MissingFieldError{Object: "page", Field: "data"}
	}
	if w.TotalCount == nil {
		return &MissingFieldError{Object: "page", Field: "totalCount"}
	}
	if *w.TotalCount < 0 {
		return fmt.Errorf("page: totalCount must be non-negative (got %d)", *w.TotalCount)
	}

	p.Data = *w.Data
	p.TotalCount = *w.TotalCount
	return nil
}

// UnmarshalJSON decodes a project and enforces its required keys.
func (p *Project) UnmarshalJSON(data []byte) error {
	var w wireProject
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	required := []struct {
		field   string
		present bool
	}{
		{"slug", w.Slug != nil},
		{"name", w.Name != nil},
		{"banned", w.Banned != nil},
		{"reviewed", w.Reviewed != nil},
		{"seen", w.Seen != nil},
		{"hackathonName", w.HackathonName != nil},
		{"prizeTracks", w.PrizeTracks != nil},
		{"sponsoredPrizes", w.SponsoredPrizes != nil},
	}
	for _, r := range required {
		if !r.present {
			return &MissingFieldError{Object: "project", Field: r.field}
		}
	}

	*p = Project{
		Slug:                    *w.Slug,
		Name:                    *w.Name,
		RepoURL:                 w.RepoURL,
		PresentationURL:         w.PresentationURL,
		ProjectImageID:          w.ProjectImageID,
		Banned:                  *w.Banned,
		Reviewed:                *w.Reviewed,
		Seen:                    *w.Seen,
		HackathonName:           *w.HackathonName,
		PrizeTracks:             *w.PrizeTracks,
		SponsoredPrizes:         *w.SponsoredPrizes,
		ImageURL:                w.ImageURL,
		ProjectImageContentType: w.ProjectImageContentType,
		Description:             w.Description,
		AdditionalInformation:   w.AdditionalInformation,
	}
	return nil
}

// UnmarshalJSON decodes a track and enforces its name.
func (t *Track) UnmarshalJSON(data []byte) error {
	var w wireTrack
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Name == nil {
		return &MissingFieldError{Object: "track", Field: "name"}
	}
	t.Name = *w.Name
	return nil
}
