package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/souramoo/calorie-counter-vibe/middlewares"
	"github.com/souramoo/calorie-counter-vibe/services"
	"github.com/souramoo/calorie-counter-vibe/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrEntryNotFound, http.StatusNotFound, "Calorie entry not found"},
	{services.ErrNotEntryOwner, http.StatusForbidden, "Not authorized to access this entry"},
	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{services.ErrEmailTaken, http.StatusConflict, "User with this email already exists"},
	{services.ErrUsernameTaken, http.StatusConflict, "Username is already taken"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{services.ErrInvalidResetToken, http.StatusBadRequest, "Invalid or expired token"},
	{services.ErrFeatureDisabled, http.StatusServiceUnavailable, "This feature is not configured on the server"},
	{utils.ErrInvalidImage, http.StatusBadRequest, "Profile picture must be a base64 image data URL"},
}

// respondError maps service errors onto HTTP responses. Unknown errors
// become 500s carrying fallback; the underlying error is only exposed
// when gin runs in debug mode.
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": m.message})
			return
		}
	}

	body := gin.H{"error": fallback}
	if gin.IsDebugging() {
		body["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondValidation reports binding failures as a 400 with per-field details.
func respondValidation(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "details": []fieldError{{Message: err.Error()}}})
		return
	}

	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{Field: lowerFirst(fe.Field()), Message: describe(fe)})
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "details": details})
}

func describe(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please provide a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// currentUser reads the id set by AuthMiddleware, answering 401 when absent.
func currentUser(c *gin.Context) (uint, bool) {
	uid, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return uid, ok
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}
