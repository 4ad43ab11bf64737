package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FailureEnvelope is the JSON error shape for every failed request. The
// suggestion gives the user a remediation hint alongside the diagnostic
// detail.
type FailureEnvelope struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func RespondFailure(c *gin.Context, status int, msg string, err error, suggestion string) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	c.JSON(status, FailureEnvelope{
		Success:    false,
		Error:      msg,
		Details:    details,
		Suggestion: suggestion,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
