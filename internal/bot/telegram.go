package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"tradegate/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type DecisionLister interface {
	ListDecisions(ctx context.Context, filter domain.DecisionFilter) ([]domain.Decision, error)
}

type Advisor interface {
	Review(ctx context.Context, decision domain.Decision) (string, error)
}

func StartTelegramBot(decisionService DecisionLister, advisorService Advisor) *AlertDispatcher {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}
	alerts := NewAlertDispatcher(b)

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/decisions", func(c tele.Context) error {
		if decisionService == nil {
			return c.Send("Decision service unavailable")
		}

		filter, err := parseDecisionArgs(c.Args())
		if err != nil {
			return c.Send("Usage: /decisions SPC | /decisions --rejected | /decisions SPC --rejected")
		}

		decisions, err := decisionService.ListDecisions(context.Background(), filter)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching decisions: %v", err))
		}
		if len(decisions) == 0 {
			return c.Send("No matching decisions yet.")
		}

		if err := c.Send("Latest decisions:"); err != nil {
			return err
		}
		for _, d := range decisions {
			if err := c.Send(formatDecisionLine(d)); err != nil {
				return err
			}
		}
		return nil
	})

	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}

		mode, err := parseAlertMode(c.Args())
		if err != nil {
			return c.Send("Usage: /alerts on | /alerts off | /alerts status")
		}

		switch mode {
		case "on":
			if alerts.Subscribe(chat.ID) {
				return c.Send("Signal alerts enabled for this chat.")
			}
			return c.Send("Signal alerts are already enabled for this chat.")
		case "off":
			if alerts.Unsubscribe(chat.ID) {
				return c.Send("Signal alerts disabled for this chat.")
			}
			return c.Send("Signal alerts are already disabled for this chat.")
		default:
			if alerts.IsSubscribed(chat.ID) {
				return c.Send("Alerts status: ON")
			}
			return c.Send("Alerts status: OFF")
		}
	})

	b.Handle("/explain", func(c tele.Context) error {
		if decisionService == nil || advisorService == nil {
			return c.Send("Review service unavailable")
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Usage: /explain SPC")
		}
		symbol := strings.ToUpper(strings.TrimSpace(args[0]))
		if !domain.IsTradeable(symbol) {
			return c.Send("Unsupported symbol. Try /symbols for the tradeable list.")
		}

		accepted := true
		decisions, err := decisionService.ListDecisions(context.Background(), domain.DecisionFilter{
			Symbol:   symbol,
			Accepted: &accepted,
			Limit:    1,
		})
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching decisions: %v", err))
		}
		if len(decisions) == 0 {
			return c.Send("No accepted decisions for " + symbol + " yet.")
		}

		latest := decisions[0]
		if latest.Review != "" {
			return c.Send(formatDecisionLine(latest) + "\nReview: " + latest.Review)
		}

		review, err := advisorService.Review(context.Background(), latest)
		if err != nil {
			return c.Send(fmt.Sprintf("Review failed: %v", err))
		}
		if review == "" {
			return c.Send(formatDecisionLine(latest) + "\nReview unavailable.")
		}
		return c.Send(formatDecisionLine(latest) + "\nReview: " + review)
	})

	b.Handle("/symbols", func(c tele.Context) error {
		return c.Send("Tradeable symbols: " + strings.Join(domain.TradeableSymbols, ", "))
	})

	log.Println("Telegram bot started")
	go b.Start()
	return alerts
}

func parseDecisionArgs(args []string) (domain.DecisionFilter, error) {
	accepted := true
	filter := domain.DecisionFilter{Limit: 5, Accepted: &accepted}

	for i := 0; i < len(args); i++ {
		arg := strings.TrimSpace(args[i])
		if arg == "" {
			continue
		}

		if arg == "--rejected" {
			rejected := false
			filter.Accepted = &rejected
			continue
		}

		if arg == "--all" {
			filter.Accepted = nil
			continue
		}

		if strings.HasPrefix(arg, "--limit=") {
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--limit="))
			if err != nil || n <= 0 || n > 50 {
				return domain.DecisionFilter{}, fmt.Errorf("invalid limit")
			}
			filter.Limit = n
			continue
		}

		if strings.HasPrefix(arg, "--") {
			return domain.DecisionFilter{}, fmt.Errorf("unknown option")
		}
		if filter.Symbol != "" {
			return domain.DecisionFilter{}, fmt.Errorf("multiple symbols provided")
		}
		symbol := strings.ToUpper(arg)
		if !domain.IsTradeable(symbol) {
			return domain.DecisionFilter{}, fmt.Errorf("unsupported symbol")
		}
		filter.Symbol = symbol
	}

	return filter, nil
}

func formatDecisionLine(d domain.Decision) string {
	verdict := "accepted"
	if !d.Accepted {
		verdict = "rejected"
		if d.Reason != "" {
			verdict += " (" + d.Reason + ")"
		}
	}
	line := fmt.Sprintf("#%d %s %s %s at %s",
		d.ID,
		d.Symbol,
		strings.ToUpper(string(d.Direction)),
		verdict,
		d.ReceivedAt.UTC().Format(time.RFC822),
	)
	if d.Accepted && d.Levels != nil {
		line += fmt.Sprintf("\nEntry %.2f | SL %.2f | TP1 %.2f | TP2 %.2f",
			d.Levels.Entry, d.Levels.StopLoss, d.Levels.TakeProfit1, d.Levels.TakeProfit2)
	}
	return line
}
