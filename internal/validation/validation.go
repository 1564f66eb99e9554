// Package validation turns raw request input into typed values the booking
// service can trust. Failures are reported as Issues, separate from the
// service error kinds.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	CodeInvalidType = "invalid_type"
	CodeInvalidDate = "invalid_date"
	CodeInvalidJSON = "invalid_json"
	CodeTooSmall    = "too_small"
	CodeCustom      = "custom"
)

type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

type Issues []Issue

func (is Issues) Error() string {
	messages := make([]string, 0, len(is))
	for _, i := range is {
		messages = append(messages, i.Message)
	}
	return fmt.Sprintf("validation failed: %d issue(s): [%s]", len(is), strings.Join(messages, "; "))
}

type CreateBookingRequest struct {
	ParkingID *float64 `json:"parkingId" validate:"required,gt=0"`
	StartDate string   `json:"startDate" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate   string   `json:"endDate" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdateBookingRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type CreateBooking struct {
	ParkingID int64
	Timeframe domain.Timeframe
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) CreateBooking(req CreateBookingRequest) (CreateBooking, error) {
	if err := v.check(req); err != nil {
		return CreateBooking{}, err
	}

	parkingID := *req.ParkingID
	if parkingID != math.Trunc(parkingID) || parkingID >= math.MaxInt64 {
		return CreateBooking{}, Issues{{Code: CodeInvalidType, Path: []string{"parkingId"}, Message: "parkingId must be an integer"}}
	}

	tf, err := timeframe(req.StartDate, req.EndDate)
	if err != nil {
		return CreateBooking{}, err
	}
	return CreateBooking{ParkingID: int64(parkingID), Timeframe: tf}, nil
}

func (v *Validator) UpdateBooking(req UpdateBookingRequest) (domain.Timeframe, error) {
	if err := v.check(req); err != nil {
		return domain.Timeframe{}, err
	}
	return timeframe(req.StartDate, req.EndDate)
}

// PathID validates an :id path segment.
func PathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Issues{{Code: CodeInvalidType, Path: []string{"id"}, Message: "id must be a positive integer"}}
	}
	return id, nil
}

// DecodeIssues reports a request body that could not be decoded.
func DecodeIssues(err error) Issues {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := []string{}
		if typeErr.Field != "" {
			path = strings.Split(typeErr.Field, ".")
		}
		return Issues{{
			Code:    CodeInvalidType,
			Path:    path,
			Message: fmt.Sprintf("expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
		}}
	}
	if errors.Is(err, io.EOF) {
		return Issues{{Code: CodeInvalidJSON, Path: []string{}, Message: "request body is required"}}
	}
	return Issues{{Code: CodeInvalidJSON, Path: []string{}, Message: "request body must be a JSON object"}}
}

func (v *Validator) check(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return translateValidationErrors(validationErrs)
	}
	return err
}

func translateValidationErrors(errs validator.ValidationErrors) Issues {
	issues := make(Issues, 0, len(errs))
	for _, err := range errs {
		issue := Issue{Code: CodeInvalidType, Path: []string{err.Field()}, Message: err.Error()}

		switch err.Tag() {
		case "required":
			issue.Message = fmt.Sprintf("%s is required", err.Field())
		case "gt":
			issue.Code = CodeTooSmall
			issue.Message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "datetime":
			issue.Code = CodeInvalidDate
			issue.Message = fmt.Sprintf("%s must be an RFC 3339 timestamp", err.Field())
		}

		issues = append(issues, issue)
	}
	return issues
}

func timeframe(rawStart, rawEnd string) (domain.Timeframe, error) {
	start, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		return domain.Timeframe{}, Issues{{Code: CodeInvalidDate, Path: []string{"startDate"}, Message: "startDate must be an RFC 3339 timestamp"}}
	}
	end, err := time.Parse(time.RFC3339, rawEnd)
	if err != nil {
		return domain.Timeframe{}, Issues{{Code: CodeInvalidDate, Path: []string{"endDate"}, Message: "endDate must be an RFC 3339 timestamp"}}
	}

	tf := domain.NewTimeframe(start, end)
	if !tf.Valid() {
		return domain.Timeframe{}, Issues{{Code: CodeCustom, Path: []string{"endDate"}, Message: "endDate must be after startDate"}}
	}
	return tf, nil
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.Kind().String()
	}
}
