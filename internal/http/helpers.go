package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dailyword/internal/settingsstore"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// resolveTranslation maps the request's translation to a supported code, falling back to
// the preferred translation. It responds with 400 and returns false for unknown codes.
func resolveTranslation(c *gin.Context, resolver TranslationResolver, requested string) (string, bool) {
	translation, err := resolver.ResolveTranslation(requested)
	if err != nil {
		if errors.Is(err, settingsstore.ErrUnknownTranslation) {
			respondBadRequest(c, "unknown translation: "+requested)
		} else {
			respondInternalError(c, err, "resolve translation")
		}
		return "", false
	}
	return translation, true
}

// parseIndexParam extracts a positive verse index from URL parameters.
func parseIndexParam(c *gin.Context, paramName string) (int, bool) {
	index, err := strconv.Atoi(c.Param(paramName))
	if err != nil || index < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return index, true
}

// parseIndexList parses a comma separated list of positive verse indices.
// An empty value yields an empty list.
func parseIndexList(value string) ([]int, error) {
	indices := []int{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		index, err := strconv.Atoi(part)
		if err != nil || index < 1 {
			return nil, errors.New("invalid verse index: " + part)
		}
		indices = append(indices, index)
	}
	return indices, nil
}

// parsePagination reads limit and offset query parameters with bounds.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
