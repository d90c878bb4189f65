package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/go-playground/validator/v10"
)

// Tag names registered on the underlying validator.
const (
	tagPasswordBytes = "password_bytes"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Field name constants accepted by Validate for models.TaskStatus values.
// They name the field in the resulting message.
const (
	// FieldStatus targets the status attribute of a task body (default).
	FieldStatus = "status"

	// FieldStatusFilter targets the status_filter query parameter.
	FieldStatusFilter = "status_filter"
)

// Per-field rules applied to values carried in models.Optional, which
// validator/v10 cannot descend into.
const (
	ruleUsername = "min=3,max=50"
	ruleEmail    = "email"
	rulePassword = "min=6,password_bytes"
	ruleTitle    = "min=1,max=200"
)

// RequestValidator validates inbound API payloads with go-playground/validator.
// Create payloads are checked through their `validate` struct tags; partial
// updates are checked field by field, only for supplied fields.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a RequestValidator with the password_bytes
// tag registered and json field names used in messages.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// min/max count runes; bcrypt limits bytes.
	// Registration only fails on empty tag names or nil funcs.
	_ = v.RegisterValidation(tagPasswordBytes, func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})

	return &RequestValidator{validate: v}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted.
//
// Supported types:
//   - models.SignupRequest, models.LoginRequest: struct tags.
//   - models.TaskCreate: struct tags, then status and due_date when supplied.
//   - models.UserUpdate, models.TaskUpdate: supplied fields only. An empty
//     update is not an error here; callers decide what empty means.
//   - models.TaskStatus: must be one of models.TaskStatuses. The single
//     optional field name (FieldStatus or FieldStatusFilter) labels the message.
//
// Field names are accepted only for models.TaskStatus; passing them for
// other types yields ErrUnknownField.
// Returns a *ValidationError for invalid input and ErrUnsupportedType for
// anything else.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.SignupRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.TaskCreate:
		return v.validateTaskCreate(ctx, value, fields...)
	case *models.TaskCreate:
		return v.validateTaskCreate(ctx, *value, fields...)

	case models.UserUpdate:
		return v.validateUserUpdate(ctx, value, fields...)
	case *models.UserUpdate:
		return v.validateUserUpdate(ctx, *value, fields...)

	case models.TaskUpdate:
		return v.validateTaskUpdate(ctx, value, fields...)
	case *models.TaskUpdate:
		return v.validateTaskUpdate(ctx, *value, fields...)

	case models.TaskStatus:
		return v.validateTaskStatus(value, fields...)
	case *models.TaskStatus:
		return v.validateTaskStatus(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateStruct(ctx context.Context, s any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}
	return translate(v.validate.StructCtx(ctx, s))
}

func (v *RequestValidator) validateTaskCreate(ctx context.Context, c models.TaskCreate, fields ...string) error {
	if err := v.validateStruct(ctx, c, fields...); err != nil {
		return err
	}

	if c.Status.Set {
		if c.Status.Null {
			return newValidationError(FieldStatus, "must not be null")
		}
		if err := validateStatus(FieldStatus, c.Status.Value); err != nil {
			return err
		}
	}

	if c.DueDate != nil && c.DueDate.IsZero() {
		return newValidationError("due_date", "must be a valid timestamp")
	}

	return nil
}

func (v *RequestValidator) validateTaskStatus(s models.TaskStatus, fields ...string) error {
	field := FieldStatus
	switch len(fields) {
	case 0:
	case 1:
		if fields[0] != FieldStatus && fields[0] != FieldStatusFilter {
			return ErrUnknownField
		}
		field = fields[0]
	default:
		return ErrUnknownField
	}
	return validateStatus(field, s)
}

func (v *RequestValidator) validateUserUpdate(ctx context.Context, u models.UserUpdate, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}
	if err := v.required(ctx, "username", u.Username, ruleUsername); err != nil {
		return err
	}
	if err := v.required(ctx, "email", u.Email, ruleEmail); err != nil {
		return err
	}
	if err := v.required(ctx, "password", u.Password, rulePassword); err != nil {
		return err
	}
	// full_name may be cleared with null
	return nil
}

func (v *RequestValidator) validateTaskUpdate(ctx context.Context, u models.TaskUpdate, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}
	if err := v.required(ctx, "title", u.Title, ruleTitle); err != nil {
		return err
	}

	if u.Status.Set {
		if u.Status.Null {
			return newValidationError(FieldStatus, "must not be null")
		}
		if err := validateStatus(FieldStatus, u.Status.Value); err != nil {
			return err
		}
	}

	if u.DueDate.Set && !u.DueDate.Null && u.DueDate.Value.IsZero() {
		return newValidationError("due_date", "must be a valid timestamp")
	}

	return nil
}

// required checks a supplied non-nullable string field against rule.
func (v *RequestValidator) required(ctx context.Context, field string, o models.Optional[string], rule string) error {
	if !o.Set {
		return nil
	}
	if o.Null {
		return newValidationError(field, "must not be null")
	}

	err := v.validate.VarCtx(ctx, o.Value, rule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return describe(field, verrs[0])
	}
	return err
}

func validateStatus(field string, s models.TaskStatus) error {
	if !s.IsValid() {
		return newValidationError(field, "must be one of %s", joinStatuses())
	}
	return nil
}

// translate converts validator errors into a *ValidationError for the first
// failing field. Other errors pass through.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return describe(verrs[0].Field(), verrs[0])
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %v", ErrUnsupportedType, invalid)
	}

	return err
}

func describe(field string, fe validator.FieldError) *ValidationError {
	switch fe.Tag() {
	case "required":
		return newValidationError(field, "is required")
	case "min":
		return newValidationError(field, "must be at least %s characters", fe.Param())
	case "max":
		return newValidationError(field, "must be at most %s characters", fe.Param())
	case "email":
		return newValidationError(field, "must be a valid email address")
	case tagPasswordBytes:
		return newValidationError(field, "must be at most %d bytes", MaxPasswordBytes)
	default:
		return newValidationError(field, "is invalid")
	}
}

func joinStatuses() string {
	names := make([]string, len(models.TaskStatuses))
	for i, s := range models.TaskStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
