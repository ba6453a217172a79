package video

import (
	"fmt"
	"strings"

	pkgerrors "github.com/mvcarvalho/flixcatalog-backend/pkg/errors"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 4000
)

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if len(title) > maxTitleLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > maxDescriptionLength {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	return nil
}

func validateYearLaunched(year int) error {
	if year <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "year_launched must be positive")
	}
	return nil
}

func validateDuration(duration int) error {
	if duration <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}
	return nil
}
