// Package export flattens projects into fixed-width CSV rows.
package export

import (
	"strconv"
	"strings"

	"github.com/Sternrassler/hackathon-export/pkg/project"
)

// Header is the column layout of every exported row.
var Header = []string{
	"slug",
	"name",
	"repo_url",
	"presentation_url",
	"project_image_id",
	"banned",
	"reviewed",
	"seen",
	"hackathon_name",
	"prize_tracks",
	"sponsored_prizes",
	"image_url",
	"project_image_content_type",
	"description",
	"additional_information",
}

// listSeparator joins repeated sub-fields into one cell.
const listSeparator = ","

// Flatten converts a project into one row in Header order.
func Flatten(p project.Project) []string {
	return []string{
		p.Slug,
		p.Name,
		orEmpty(p.RepoURL),
		orEmpty(p.PresentationURL),
		orEmpty(p.ProjectImageID),
		strconv.FormatBool(p.Banned),
		strconv.FormatBool(p.Reviewed),
		strconv.Itoa(int(p.Seen)),
		p.HackathonName,
		joinTracks(p.PrizeTracks),
		strings.Join(p.SponsoredPrizes, listSeparator),
		orEmpty(p.ImageURL),
		orEmpty(p.ProjectImageContentType),
		orEmpty(p.Description),
		orEmpty(p.AdditionalInformation),
	}
}

// orEmpty is the only place an absent optional becomes a cell.
func orEmpty(o project.Optional) string {
	if v, ok := o.Get(); ok {
		return v
	}
	return ""
}

func joinTracks(tracks []project.Track) string {
	names := make([]string, 0, len(tracks))
	for _, t := range tracks {
		names = append(names, t.Name)
	}
	return strings.Join(names, listSeparator)
}
