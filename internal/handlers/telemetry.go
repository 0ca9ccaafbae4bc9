package handlers

import (
	"errors"
	"net/http"

	"telemetry_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errBadRequest = "bad request"
	errInternal   = "internal error"

	greeting = "Hello, world! This service classifies temperature telemetry.\n" +
		"POST /temp to submit a reading, GET or DELETE /errors to inspect rejected submissions.\n"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err, "request_id", requestID(c)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// TempRequest documents the /temp payload for Swagger.
type TempRequest struct {
	// device_id:epoch_millis:'Temperature':temperature
	Data string `json:"data" example:"365951380:1640995229697:'Temperature':98.48"`
}

// @Summary      Greeting
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	c.String(http.StatusOK, greeting)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Classify a telemetry reading
// @Description  Readings at or above 90 are over temperature and echo device_id and formatted_time (UTC, YYYY/MM/DD HH:MM:SS). Malformed bodies are stored verbatim in the error buffer.
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        body  body      TempRequest  true  "Telemetry payload"
// @Success      200   {object}  models.Classification
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /temp [post]
func (h *Handler) postTemp(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, errBadRequest, "temp_body_read_failed", err)
		return
	}

	res, err := h.services.Ingest(c.Request.Context(), service.IngestRequest{
		Body:        body,
		ContentType: c.GetHeader("Content-Type"),
	})
	switch {
	case err == nil:
		h.metrics.observeReading(res.Overtemp)
		if res.Overtemp {
			h.log.Infow("temp_overtemp", "device_id", *res.DeviceID, "formatted_time", *res.FormattedTime, "request_id", requestID(c))
		}
		c.JSON(http.StatusOK, res)

	case service.IsBadRequest(err):
		h.metrics.observeRejected()
		var rej *service.RejectionError
		entryID := ""
		if errors.As(err, &rej) {
			entryID = rej.EntryID
		}
		h.log.Infow("temp_rejected", "reason", err, "entry_id", entryID, "request_id", requestID(c))
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})

	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "temp_record_failed", err)
	}
}
