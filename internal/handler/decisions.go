package handler

import (
	"net/http"
	"strconv"
	"strings"

	"tradegate/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetDecisions godoc
// @Summary      List recent alert decisions
// @Description  Returns recent decisions, optionally filtered by symbol, acceptance, and direction
// @Tags         decisions
// @Produce      json
// @Param        symbol     query  string  false  "Canonical symbol (e.g., SPC, ES)"
// @Param        accepted   query  bool    false  "Only accepted or only rejected decisions"
// @Param        direction  query  string  false  "buy or sell"
// @Param        limit      query  int     false  "Number of decisions (default 50, max 200)"  default(50)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/decisions [get]
func (h *Handler) GetDecisions(c *gin.Context) {
	if h.alertService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alert service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-decisions")
	defer span.End()

	filter := domain.DecisionFilter{
		Symbol: strings.ToUpper(strings.TrimSpace(c.Query("symbol"))),
	}
	if filter.Symbol != "" {
		span.SetAttributes(attribute.String("symbol", filter.Symbol))
	}

	if rawAccepted := strings.TrimSpace(c.Query("accepted")); rawAccepted != "" {
		accepted, err := strconv.ParseBool(rawAccepted)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "accepted must be a boolean"})
			return
		}
		filter.Accepted = &accepted
	}

	if rawDirection := strings.ToLower(strings.TrimSpace(c.Query("direction"))); rawDirection != "" {
		direction := domain.Direction(rawDirection)
		if !direction.IsValid() || direction == domain.DirectionNone {
			c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be buy or sell"})
			return
		}
		filter.Direction = direction
	}

	limit := 50
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 || n > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
			return
		}
		limit = n
	}
	filter.Limit = limit

	decisions, err := h.alertService.ListDecisions(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}
