// Package domain defines the core types and interfaces for the recipe
// generator. All other packages depend on domain; domain depends on nothing.
package domain

import (
	"encoding/json"
	"time"
)

// Duration bounds accepted by the generation service, in minutes.
const (
	MinDuration = 5
	MaxDuration = 240
)

// RecipeRequest is the payload sent to the generation service.
// A fresh value is built on every submission.
type RecipeRequest struct {
	Ingredients []string `json:"ingredients"`
	CuisineType string   `json:"cuisine_type"`
	Language    string   `json:"language"`
	Duration    int      `json:"duration"` // minutes
}

// Recipe is a generated recipe as returned by the service. The client
// never mutates it.
type Recipe struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Ingredients  []string   `json:"ingredients"`
	Steps        []string   `json:"steps"`
	CuisineType  string     `json:"cuisine_type"`
	Language     string     `json:"language"`
	Duration     int        `json:"duration"`
	ImageURL     *string    `json:"image_url"`
	Tags         []string   `json:"tags"`
	Difficulty   Difficulty `json:"difficulty"`
	Rating       float64    `json:"rating"`
	RatingsCount int        `json:"ratings_count"`
	CreatedAt    Timestamp  `json:"created_at"`
}

// HasImage reports whether the service attached an image reference.
func (r *Recipe) HasImage() bool {
	return r.ImageURL != nil && *r.ImageURL != ""
}

// Timestamp is a time sent by the service. Raw keeps the text exactly as
// received; Time is zero when it is absent or in a layout we do not know.
// Zone-less times are read as UTC.
type Timestamp struct {
	Raw  string
	Time time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp reads s with the first layout that fits.
func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{Raw: s}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			break
		}
	}
	return ts
}

// IsZero reports whether no usable time was received.
func (t Timestamp) IsZero() bool { return t.Time.IsZero() }

// UnmarshalJSON accepts a string or null. Anything else is kept as raw
// text so one odd field never fails the whole response.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = Timestamp{Raw: string(b)}
		return nil
	}
	*t = ParseTimestamp(s)
	return nil
}

// MarshalJSON writes the raw text back, or null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}

// RequestMetadata carries informational statistics about a generation.
// Times are in seconds.
type RequestMetadata struct {
	GenerationTime   float64 `json:"generation_time"`
	ImageSearchTime  float64 `json:"image_search_time"`
	TotalIngredients int     `json:"total_ingredients"`
	TotalSteps       int     `json:"total_steps"`
	IsVegetarian     bool    `json:"is_vegetarian"`
}

// GenerateResponse is the success body of a generation call.
type GenerateResponse struct {
	Recipe   Recipe          `json:"recipe"`
	Metadata RequestMetadata `json:"metadata"`
}

// Difficulty grades how hard a recipe is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known grades.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Cuisines lists the selectable cuisine types, in display order.
var Cuisines = []string{
	"française",
	"italienne",
	"japonaise",
	"chinoise",
	"mexicaine",
	"indienne",
	"thai",
	"international",
}

// Language is a selectable output language.
type Language struct {
	Code  string
	Label string
}

// Languages lists the selectable languages, in display order.
var Languages = []Language{
	{Code: "fr", Label: "Français"},
	{Code: "en", Label: "English"},
	{Code: "es", Label: "Español"},
}

// IsCuisine reports whether c is a selectable cuisine type.
func IsCuisine(c string) bool {
	for _, v := range Cuisines {
		if v == c {
			return true
		}
	}
	return false
}

// LanguageLabel returns the display label for a language code, or the code
// itself when it is unknown.
func LanguageLabel(code string) string {
	for _, l := range Languages {
		if l.Code == code {
			return l.Label
		}
	}
	return code
}

// IsLanguage reports whether code is a selectable language.
func IsLanguage(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}
