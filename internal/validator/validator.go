package validator

import (
	"reflect"
	"strconv"
	"strings"

	apperrors "github.com/SAP-F-2025/survey-service/internal/errors"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Supported export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// ValidationErrors is the shared field error list returned by every Validate call
type ValidationErrors = apperrors.ValidationErrors

// Validator wraps go-playground/validator with the survey's custom rules
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New(validator.WithRequiredStructEnabled())

	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags and converts failures to ValidationErrors
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// ValidateVar validates a single value against a tag, reporting it under field
func (v *Validator) ValidateVar(field string, value interface{}, tag string) error {
	if err := v.structValidator.Var(value, tag); err != nil {
		errs := apperrors.ToValidationErrors(err)
		for i := range errs {
			errs[i].Field = field
		}
		if len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("likert", validateLikert)
	validate.RegisterValidation("yes_no", validateYesNo)
	validate.RegisterValidation("export_format", validateExportFormat)

	// Report fields by their json names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateLikert accepts integers or numeric strings in the 1..5 range
func validateLikert(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		n, err := strconv.Atoi(strings.TrimSpace(field.String()))
		return err == nil && n >= models.ScaleMin && n <= models.ScaleMax
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := field.Int()
		return n >= models.ScaleMin && n <= models.ScaleMax
	default:
		return false
	}
}

func validateYesNo(fl validator.FieldLevel) bool {
	_, err := models.ParseYesNo(fl.Field().String())
	return err == nil
}

func validateExportFormat(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case FormatCSV, FormatJSON, FormatXLSX:
		return true
	}
	return false
}
