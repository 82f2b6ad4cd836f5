package dto

import (
	"gigflow/internal/models"

	"github.com/go-playground/validator/v10"
)

// GigCategories lists every accepted gig category.
var GigCategories = []string{
	models.CategoryWebDevelopment,
	models.CategoryMobileDevelopment,
	models.CategoryDesign,
	models.CategoryWriting,
	models.CategoryMarketing,
	models.CategoryVideoEditing,
	models.CategoryOther,
}

// IsGigCategory reports whether c is an accepted category.
func IsGigCategory(c string) bool {
	for _, known := range GigCategories {
		if c == known {
			return true
		}
	}
	return false
}

// NewValidator returns a validator with the gigflow custom tags registered:
// gig_category and gig_status.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("gig_category", func(fl validator.FieldLevel) bool {
		return IsGigCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("gig_status", func(fl validator.FieldLevel) bool {
		switch models.GigStatus(fl.Field().String()) {
		case models.GigStatusOpen, models.GigStatusAssigned, models.GigStatusCompleted, models.GigStatusCancelled:
			return true
		}
		return false
	})
	return v
}
