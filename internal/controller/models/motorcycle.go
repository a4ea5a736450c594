package models

import "time"

type Motorcycle struct {
	Id            string     `json:"id"`
	UserId        string     `json:"userId"`
	Name          string     `json:"name"`
	Make          *string    `json:"make"`
	Model         *string    `json:"model"`
	Year          *int       `json:"year"`
	CreatedAt     *time.Time `json:"createdAt"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

type Motorcycles []Motorcycle
