package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errListErrors  = "failed to load errors"
	errClearErrors = "failed to clear errors"
)

// @Summary      List rejected submissions
// @Description  Raw bodies of rejected /temp requests, oldest first.
// @Tags         errors
// @Produce      json
// @Success      200  {object}  map[string][]string  "errors"
// @Failure      500  {object}  map[string]string
// @Router       /errors [get]
func (h *Handler) getErrors(c *gin.Context) {
	entries, err := h.services.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListErrors, "errors_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"errors": entries})
}

// @Summary      Clear rejected submissions
// @Tags         errors
// @Produce      json
// @Success      200  {object}  map[string]string  "msg"
// @Failure      500  {object}  map[string]string
// @Router       /errors [delete]
func (h *Handler) deleteErrors(c *gin.Context) {
	n, err := h.services.Clear(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errClearErrors, "errors_clear_failed", err)
		return
	}
	h.metrics.cleared.Add(float64(n))
	h.log.Infow("errors_cleared", "count", n, "request_id", requestID(c))
	c.JSON(http.StatusOK, gin.H{"msg": fmt.Sprintf("Cleared the errors buffer of %d entries", n)})
}
