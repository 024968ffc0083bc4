package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tradegate/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidPayload marks a contract violation (non-mapping input) as opposed
// to a payload that merely produced no actionable signal.
var ErrInvalidPayload = errors.New("invalid alert payload")

type DecisionEngine interface {
	Evaluate(alert domain.Alert) domain.Decision
}

type DecisionStore interface {
	InsertDecision(ctx context.Context, decision domain.Decision, alert domain.Alert) (domain.Decision, error)
	UpdateReview(ctx context.Context, id int64, review string) error
	ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error)
}

type AlertDeduper interface {
	Seen(ctx context.Context, payload any) bool
	Forget(ctx context.Context, payload any)
}

type DecisionReviewer interface {
	Review(ctx context.Context, decision domain.Decision) (string, error)
}

type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, decision domain.Decision) error
}

type EventForwarder interface {
	Forward(ctx context.Context, alert domain.Alert, decision domain.Decision) error
}

// AlertService runs the decision engine on incoming alerts and fans accepted
// decisions out to the collaborators (store, reviewer, notifiers, forwarder).
// The engine itself stays pure; everything stateful lives here.
type AlertService struct {
	tracer    trace.Tracer
	engine    DecisionEngine
	store     DecisionStore
	deduper   AlertDeduper
	reviewer  DecisionReviewer
	forwarder EventForwarder
	notifiers []DecisionNotifier
}

func NewAlertService(
	tracer trace.Tracer,
	engine DecisionEngine,
	store DecisionStore,
	deduper AlertDeduper,
	reviewer DecisionReviewer,
	forwarder EventForwarder,
	notifiers ...DecisionNotifier,
) *AlertService {
	return &AlertService{
		tracer:    tracer,
		engine:    engine,
		store:     store,
		deduper:   deduper,
		reviewer:  reviewer,
		forwarder: forwarder,
		notifiers: notifiers,
	}
}

// AddNotifier registers an additional decision notifier. Register everything
// before serving traffic; the slice is not guarded.
func (s *AlertService) AddNotifier(n DecisionNotifier) {
	if n != nil {
		s.notifiers = append(s.notifiers, n)
	}
}

// ProcessAlert evaluates one payload and, when accepted, persists, reviews,
// notifies, and forwards it. Duplicate deliveries inside the dedupe window
// return the evaluated decision without side effects.
func (s *AlertService) ProcessAlert(ctx context.Context, alert domain.Alert) (domain.Decision, error) {
	ctx, span := s.tracer.Start(ctx, "alert-service.process-alert")
	defer span.End()

	if alert == nil {
		return domain.Decision{}, ErrInvalidPayload
	}
	if s.engine == nil {
		return domain.Decision{}, fmt.Errorf("alert service is not fully initialized")
	}

	decision := s.engine.Evaluate(alert)
	span.SetAttributes(
		attribute.Bool("decision.accepted", decision.Accepted),
		attribute.String("decision.symbol", decision.Symbol),
		attribute.String("decision.direction", string(decision.Direction)),
	)

	if s.deduper != nil && s.deduper.Seen(ctx, alert) {
		log.Printf("duplicate alert for %s suppressed", decision.Symbol)
		return decision, nil
	}

	if s.store != nil {
		stored, err := s.store.InsertDecision(ctx, decision, alert)
		if err != nil {
			// The payload was marked seen above; clear it so the producer's
			// retry is not suppressed while the decision is unrecorded.
			if s.deduper != nil {
				s.deduper.Forget(ctx, alert)
			}
			return domain.Decision{}, fmt.Errorf("persist decision: %w", err)
		}
		decision = stored
	}

	if !decision.Accepted {
		return decision, nil
	}

	if s.reviewer != nil {
		review, err := s.reviewer.Review(ctx, decision)
		if err != nil {
			log.Printf("decision review failed: %v", err)
		} else if review != "" {
			decision.Review = review
			if s.store != nil && decision.ID > 0 {
				if err := s.store.UpdateReview(ctx, decision.ID, review); err != nil {
					log.Printf("persist review failed: %v", err)
				}
			}
		}
	}

	for _, n := range s.notifiers {
		if n == nil {
			continue
		}
		if err := n.NotifyDecision(ctx, decision); err != nil {
			log.Printf("decision notification failed: %v", err)
		}
	}

	if s.forwarder != nil {
		if err := s.forwarder.Forward(ctx, alert, decision); err != nil {
			log.Printf("decision forward failed: %v", err)
		}
	}

	return decision, nil
}

func (s *AlertService) ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error) {
	_, span := s.tracer.Start(ctx, "alert-service.list-decisions")
	defer span.End()

	if s.store == nil {
		return nil, fmt.Errorf("alert service is not fully initialized")
	}

	filter.Symbol = strings.ToUpper(strings.TrimSpace(filter.Symbol))
	if filter.Direction != "" && !filter.Direction.IsValid() {
		return nil, fmt.Errorf("invalid direction: %s", filter.Direction)
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	return s.store.ListDecisions(ctx, filter)
}
