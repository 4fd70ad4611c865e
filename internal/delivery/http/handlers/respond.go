package handlers

import (
	"net/http"

	"github.com/clockvault/timeclock-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy to HTTP statuses: validation 400,
// not-found 404, business 422, everything else 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindBusiness:
		status = http.StatusUnprocessableEntity
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Infrastructure detail stays in logs, not responses.
		message = "internal error"
	}
	c.JSON(status, gin.H{
		"error": message,
		"code":  domain.CodeOf(err),
	})
}
