// Package httpapi exposes the placement service REST API over gin.
package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/placement-cell/placement_service/internal/apperr"
	"github.com/placement-cell/placement_service/internal/middleware"
	"github.com/placement-cell/placement_service/internal/storage"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Pagination *storage.Pagination `json:"pagination,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, response{Success: true, Data: data, Message: message})
}

// respondPage answers a list request. Items are never rendered as null.
func respondPage[T any](c *gin.Context, page storage.Page[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	p := page.Pagination
	c.JSON(http.StatusOK, response{Success: true, Data: items, Pagination: &p})
}

// respondError maps a tagged error kind to an HTTP status. Internal errors
// are logged with the request ID and answered with a generic message.
func (api *API) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)

	var status int
	switch kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindReferential, apperr.KindBusinessRule:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	msg := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		api.log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		msg = "internal server error"
	}

	c.JSON(status, response{Success: false, Error: msg})
}

// respondBindError turns a binding failure into a 400 with a readable
// field-by-field message.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response{Success: false, Error: bindErrorMessage(err)})
}

func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldErrorMessage(fe))
	}
	return strings.Join(parts, "; ")
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "gte":
		return field + " must be at least " + fe.Param()
	case "lte":
		return field + " must be at most " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " is invalid"
	}
}
