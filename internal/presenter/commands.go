package presenter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	app_errors "supportbot/internal/errors"
	"supportbot/internal/events"
	"supportbot/internal/model"
)

// Usage lists the commands ParseLine understands.
const Usage = `Commands:
  <text>              send a message
  /use <provider>     choose a provider
  /rate [id]          rate the last answer, or a conversation from history
  /star <1-5>         pick a score in the open rating
  /feedback <text>    add feedback to the open rating
  /submit             submit the open rating
  /close              dismiss the open rating
  /tab <name>         show chat, analytics or history
  /help               show this help
  /quit               leave`

var (
	// ErrQuit is returned for /quit.
	ErrQuit = errors.New("quit")
	// ErrHelp is returned for /help.
	ErrHelp = errors.New("help")
)

// ParseLine turns one line of terminal input into an event. A blank line
// yields a nil event. Malformed commands wrap app_errors.ErrValidation.
func ParseLine(line string) (events.Event, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	if !strings.HasPrefix(line, "/") {
		return events.SendRequested{Text: line}, nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/use":
		if arg == "" {
			return nil, fmt.Errorf("%w: /use needs a provider name", app_errors.ErrValidation)
		}
		return events.ProviderChosen{Provider: arg}, nil
	case "/rate":
		if arg == "" {
			return events.TurnRateRequested{}, nil
		}
		return events.HistoricalRateRequested{ConversationID: model.ConversationID(arg)}, nil
	case "/star":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: /star needs a number from 1 to 5", app_errors.ErrValidation)
		}
		return events.StarSelected{Score: n}, nil
	case "/feedback":
		return events.FeedbackChanged{Text: arg}, nil
	case "/submit":
		return events.RatingSubmitRequested{}, nil
	case "/close":
		return events.RatingDismissed{}, nil
	case "/tab":
		switch tab := model.Tab(arg); tab {
		case model.TabChat, model.TabAnalytics, model.TabHistory:
			return events.TabSwitched{Tab: tab}, nil
		default:
			return nil, fmt.Errorf("%w: unknown tab %q", app_errors.ErrValidation, arg)
		}
	case "/help":
		return nil, ErrHelp
	case "/quit", "/exit":
		return nil, ErrQuit
	default:
		return nil, fmt.Errorf("%w: unknown command %s", app_errors.ErrValidation, cmd)
	}
}
