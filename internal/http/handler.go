package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saltline/tidecal/internal/usecase"
)

// Handler serves a generated calendar.
type Handler struct {
	calendar *usecase.CalendarResponse
	byDate   map[string]*usecase.DayResponse
}

// NewHandler creates a new HTTP handler.
func NewHandler(calendar *usecase.CalendarResponse) *Handler {
	byDate := make(map[string]*usecase.DayResponse, len(calendar.Days))
	for i := range calendar.Days {
		byDate[calendar.Days[i].Date] = &calendar.Days[i]
	}
	return &Handler{
		calendar: calendar,
		byDate:   byDate,
	}
}

// GetStation handles GET /v1/station.
func (h *Handler) GetStation(c *gin.Context) {
	c.JSON(http.StatusOK, h.calendar.Station)
}

// GetCalendar handles GET /v1/calendar.
func (h *Handler) GetCalendar(c *gin.Context) {
	c.JSON(http.StatusOK, h.calendar)
}

// GetDay handles GET /v1/calendar/:date.
func (h *Handler) GetDay(c *gin.Context) {
	dateStr := c.Param("date")

	if _, err := time.Parse(time.DateOnly, dateStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date (expected YYYY-MM-DD): %v", err)})
		return
	}

	day, ok := h.byDate[dateStr]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no calendar day for %s", dateStr)})
		return
	}

	c.JSON(http.StatusOK, day)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"year":   h.calendar.Year,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
