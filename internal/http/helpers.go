package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/internal/photos"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	code := textCode(err)

	switch {
	case goerrors.IsCategory(err, goerrors.CategoryNotFound),
		errors.Is(err, pages.ErrPageNotFound),
		errors.Is(err, navigation.ErrItemNotFound),
		errors.Is(err, photos.ErrPhotoNotFound),
		errors.Is(err, editor.ErrOwnerMismatch):
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
			Code:    code,
		}
	case goerrors.IsCategory(err, goerrors.CategoryConflict),
		errors.Is(err, pages.ErrSlugExists):
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
			Code:    code,
		}
	case errors.Is(err, entity.ErrUnknownType),
		errors.Is(err, entity.ErrIDRequired),
		errors.Is(err, editor.ErrIndexOutOfRange):
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
			Code:    code,
		}
	case goerrors.IsCategory(err, goerrors.CategoryValidation),
		isFieldError(err),
		errors.Is(err, editor.ErrPageNotOption),
		errors.Is(err, editor.ErrParentNotOption):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Code:    code,
			Fields:  fieldErrors(err),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
		Code:    code,
	}
}

// isFieldError reports sentinel errors raised by record validation when they
// reach the handler without a command wrapper.
func isFieldError(err error) bool {
	for _, target := range []error{
		pages.ErrTitleRequired, pages.ErrSlugRequired, pages.ErrSlugInvalid,
		pages.ErrOrderInvalid, pages.ErrSectionsInvalid, pages.ErrReorderMismatch,
		navigation.ErrLabelRequired, navigation.ErrLinkTypeInvalid, navigation.ErrPageRequired,
		navigation.ErrExternalURLRequired, navigation.ErrExternalURLInvalid, navigation.ErrPageNotFound,
		navigation.ErrParentNotFound, navigation.ErrParentSelf, navigation.ErrParentNested,
		navigation.ErrItemHasChildren, navigation.ErrOrderInvalid,
		photos.ErrURLRequired, photos.ErrURLInvalid, photos.ErrOrderInvalid, photos.ErrReorderMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	var fields validation.Errors
	return errors.As(err, &fields)
}

func fieldErrors(err error) map[string]string {
	var fields validation.Errors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for name, fieldErr := range fields {
		if fieldErr != nil {
			out[name] = fieldErr.Error()
		}
	}
	return out
}

func textCode(err error) string {
	var typed *goerrors.Error
	if errors.As(err, &typed) {
		return typed.TextCode
	}
	return ""
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

// ownerFromPath reads the {type} and {id} path values.
func ownerFromPath(r *http.Request) (entity.Ref, error) {
	return entity.NewRef(r.PathValue("type"), r.PathValue("id"))
}
