package enums

import "fmt"

// Rating is the fixed audience-classification level of a video.
type Rating string

const (
	RatingER Rating = "ER"
	RatingL  Rating = "L"
	Rating10 Rating = "10"
	Rating12 Rating = "12"
	Rating14 Rating = "14"
	Rating16 Rating = "16"
	Rating18 Rating = "18"
)

var validRatings = []Rating{
	RatingER,
	RatingL,
	Rating10,
	Rating12,
	Rating14,
	Rating16,
	Rating18,
}

// String returns the literal string for the rating.
func (r Rating) String() string {
	return string(r)
}

// IsValid reports whether the rating is known.
func (r Rating) IsValid() bool {
	for _, candidate := range validRatings {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRating converts raw input into a Rating.
func ParseRating(value string) (Rating, error) {
	for _, candidate := range validRatings {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rating %q", value)
}
