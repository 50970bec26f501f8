// Package respond writes JSON responses and decodes validated request bodies.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kirana/internal/apperror"
	"github.com/MrJamesThe3rd/kirana/internal/idempotency"
)

var (
	ErrMalformedBody  = errors.New("malformed request body")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidID      = errors.New("invalid id")
	ErrInvalidDate    = errors.New("invalid date")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, successResponse{Success: true})
}

// Error maps err onto a status code. Unclassified errors are logged and
// answered with a generic message.
func Error(w http.ResponseWriter, err error) {
	status := StatusFor(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)

		msg = http.StatusText(http.StatusInternalServerError)
	}

	JSON(w, status, errorResponse{Error: msg})
}

func StatusFor(err error) int {
	switch {
	case apperror.IsNotFound(err):
		return http.StatusNotFound
	case apperror.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, idempotency.ErrInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Attachment writes body as a file download named filename.
func Attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write attachment", "file", filename, "error", err)
	}
}

// ParamID parses the named chi URL parameter as a UUID.
func ParamID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Invalidf(ErrInvalidID, "%s %q", name, raw)
	}

	return id, nil
}

// ParseDate parses a YYYY-MM-DD value as UTC midnight.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, apperror.Invalidf(ErrInvalidDate, "%s must be YYYY-MM-DD, got %q", field, value)
	}

	return t, nil
}

// DateQuery reads an optional YYYY-MM-DD query parameter. It returns nil when absent.
func DateQuery(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := ParseDate(name, s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// Decode reads a JSON body into dst and runs its validate tags.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Invalid(ErrMalformedBody, err.Error())
	}

	return Validate(dst)
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Invalid(ErrInvalidRequest, err.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s %s", fe.Field(), message(fe)))
	}

	return apperror.Invalid(ErrInvalidRequest, strings.Join(details, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a date formatted as " + fe.Param()
	case "uuid":
		return "must be a UUID"
	default:
		return "is invalid"
	}
}
