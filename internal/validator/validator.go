// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"budgetlens/internal/services"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("export_format", validateExportFormat)
		_ = v.RegisterValidation("report_type", validateReportType)
		_ = v.RegisterValidation("iso_date", validateISODate)
	}
}

func validateExportFormat(fl validator.FieldLevel) bool {
	return services.SupportedExportFormat(fl.Field().String())
}

func validateReportType(fl validator.FieldLevel) bool {
	return services.SupportedReportType(fl.Field().String())
}

// validateISODate accepts YYYY-MM-DD dates.
func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}
