package models

import "time"

// Platform is a privacy-focused service or tool that the guide content
// is written about
type Platform struct {
	Id            string     `json:"id"`
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	Url           *string    `json:"url"`
	Description   *string    `json:"description"`
	IconFilename  *string    `json:"iconFilename"`
	IsPublished   bool       `json:"isPublished"`
	DisplayOrder  int        `json:"displayOrder"`
	CreatedAt     *time.Time `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

type Platforms []Platform
