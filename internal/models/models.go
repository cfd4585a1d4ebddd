package models

import "time"

// Status represents the moderation state of a mountain pass.
// Only passes in StatusNew may be edited.
type Status string

const (
	StatusNew      Status = "new"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Seasons recognized for difficulty levels, in the order they are reported.
var Seasons = []string{"winter", "summer", "autumn", "spring"}

// User represents the person who submitted a pass. Once a pass references
// a user, these fields are protected and cannot be changed through updates.
type User struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=10,max=20"`
	Fam   string `json:"fam" validate:"required,min=1,max=50"`
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Otc   string `json:"otc,omitempty" validate:"max=50"`
}

// Coords represents the geographic position of a pass.
type Coords struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Height    int     `json:"height" validate:"min=0,max=9000"`
}

// Level holds the seasonal difficulty grades for a pass. Empty values mean
// no grade is recorded for that season.
type Level struct {
	Winter string `json:"winter,omitempty" validate:"omitempty,oneof=1A 1B 2A 2B 3A 3B"`
	Summer string `json:"summer,omitempty" validate:"omitempty,oneof=1A 1B 2A 2B 3A 3B"`
	Autumn string `json:"autumn,omitempty" validate:"omitempty,oneof=1A 1B 2A 2B 3A 3B"`
	Spring string `json:"spring,omitempty" validate:"omitempty,oneof=1A 1B 2A 2B 3A 3B"`
}

// BySeason returns the non-empty grades keyed by season name.
func (l Level) BySeason() map[string]string {
	grades := map[string]string{
		"winter": l.Winter,
		"summer": l.Summer,
		"autumn": l.Autumn,
		"spring": l.Spring,
	}
	m := make(map[string]string, len(Seasons))
	for _, season := range Seasons {
		if grades[season] != "" {
			m[season] = grades[season]
		}
	}
	return m
}

// Image is a titled picture of a pass, referenced by URL.
type Image struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
	URL   string `json:"url" validate:"required,min=1"`
}

// PassInput is the request body for creating or updating a pass.
// Field names follow the submission wire format.
type PassInput struct {
	BeautyTitle string  `json:"beautyTitle,omitempty" validate:"max=255"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	OtherTitles string  `json:"other_titles,omitempty" validate:"max=255"`
	Connect     string  `json:"connect,omitempty" validate:"max=255"`
	User        *User   `json:"user,omitempty"`
	Coords      *Coords `json:"coords" validate:"required"`
	Level       *Level  `json:"level,omitempty"`
	Images      []Image `json:"images,omitempty" validate:"max=10,dive"`
}

// Pass is the full denormalized record returned by reads.
type Pass struct {
	ID          int64             `json:"id"`
	BeautyTitle string            `json:"beauty_title"`
	Title       string            `json:"title"`
	OtherTitles string            `json:"other_titles"`
	Connect     string            `json:"connect"`
	User        User              `json:"user"`
	Coords      Coords            `json:"coords"`
	Status      Status            `json:"status"`
	AddTime     time.Time         `json:"add_time"`
	Level       map[string]string `json:"level"`
	Images      []Image           `json:"images"`
}

// SubmitResponse is the body returned by POST /submitData.
type SubmitResponse struct {
	ID      int64  `json:"id"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// UpdateResponse is the body returned by PATCH /submitData/{id}.
// State is 1 on success and 0 on any rejection.
type UpdateResponse struct {
	State   int    `json:"state"`
	Message string `json:"message"`
}
