package models

import "time"

// Article is a privacy-guide entry, optionally tied to a platform
type Article struct {
	Id            string     `json:"id"`
	PlatformId    *string    `json:"platformId"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Body          string     `json:"body"`
	IsPublished   bool       `json:"isPublished"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     *time.Time `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

type Articles []Article
