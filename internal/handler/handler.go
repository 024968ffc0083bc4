package handler

import (
	"context"

	"tradegate/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type AlertProcessor interface {
	ProcessAlert(ctx context.Context, alert domain.Alert) (domain.Decision, error)
	ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error)
}

type Handler struct {
	tracer       trace.Tracer
	alertService AlertProcessor
	sharedToken  string
	hub          *DecisionHub
}

func New(tracer trace.Tracer, alertService AlertProcessor, sharedToken string, hub *DecisionHub) *Handler {
	return &Handler{
		tracer:       tracer,
		alertService: alertService,
		sharedToken:  sharedToken,
		hub:          hub,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/webhook/tv", h.Webhook)
	r.GET("/api/decisions", h.GetDecisions)
	r.GET("/ws/decisions", h.StreamDecisions)
}
