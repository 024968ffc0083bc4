package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"tradegate/internal/domain"
	"tradegate/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// Health godoc
// @Summary      Service liveness
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}

// Webhook godoc
// @Summary      Receive a charting-platform alert
// @Description  Evaluates the payload through the decision engine. Non-JSON bodies are wrapped as {"message": body}.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        token  query  string  true  "Shared token"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /webhook/tv [post]
func (h *Handler) Webhook(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.webhook")
	defer span.End()

	if !h.authorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	alert := decodeAlert(c.ContentType(), raw)
	decision, err := h.alertService.ProcessAlert(ctx, alert)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	span.SetAttributes(attribute.Bool("decision.accepted", decision.Accepted))
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"accepted": decision.Accepted,
		"symbol":   decision.Symbol,
	})
}

// authorized checks the shared token from the token query parameter, with a
// Bearer header as fallback. An empty configured token rejects everything.
func (h *Handler) authorized(c *gin.Context) bool {
	if h.sharedToken == "" {
		return false
	}
	provided := strings.TrimSpace(c.Query("token"))
	if provided == "" {
		authz := strings.TrimSpace(c.GetHeader("Authorization"))
		provided = strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.sharedToken)) == 1
}

// decodeAlert turns the raw body into an Alert. JSON objects decode as-is;
// anything else becomes {"message": body}, matching what alert producers that
// only support plain-text bodies send.
func decodeAlert(contentType string, raw []byte) domain.Alert {
	if strings.Contains(strings.ToLower(contentType), "json") {
		var alert domain.Alert
		if err := json.Unmarshal(raw, &alert); err == nil && alert != nil {
			return alert
		}
	}
	return domain.Alert{"message": string(raw)}
}
