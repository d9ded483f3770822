// Package presenter paints controller state. Terminal renders to a text
// stream with lipgloss; Recorder captures calls for tests.
package presenter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"supportbot/internal/model"
)

// Terminal writes the session to w as it changes. Turns and notices are
// printed as they arrive; analytics and history are held and printed when
// their tab is shown.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer

	user    lipgloss.Style
	bot     lipgloss.Style
	pending lipgloss.Style
	banner  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	heading lipgloss.Style
	star    lipgloss.Style

	analytics *model.AnalyticsSnapshot
	history   []model.HistoryItem
}

func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w:       w,
		user:    r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		bot:     r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		pending: r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		banner:  r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder()),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		heading: r.NewStyle().Bold(true).Underline(true),
		star:    r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.w, format, args...)
}

// Message prints a line of local output, such as help text or an input error.
func (t *Terminal) Message(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.muted.Render(text))
}

func (t *Terminal) AppendTurn(turn model.Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case turn.Role == model.RoleUser:
		t.printf("%s %s\n", t.user.Render("You:"), turn.Text)
	case turn.Placeholder:
		t.printf("%s\n", t.pending.Render("Bot: "+turn.Text))
	default:
		t.printf("%s %s\n", t.bot.Render("Bot:"), turn.Text)
		if turn.Rateable {
			t.printf("%s\n", t.muted.Render(fmt.Sprintf("  rate this answer with /rate %s", turn.ConversationID)))
		}
	}
}

// RemoveTurn is a no-op: printed output cannot be taken back, and the settled
// turn that follows a placeholder makes the outcome clear.
func (t *Terminal) RemoveTurn(string) {}

func (t *Terminal) ShowProviderOptions(options []model.ProviderOption) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(options) == 0 {
		t.printf("%s\n", t.failure.Render("No providers available."))
		return
	}
	t.printf("%s\n", t.heading.Render("Providers"))
	for _, opt := range options {
		if opt.Enabled {
			t.printf("  %s  (/use %s)\n", opt.Label, opt.Name)
			continue
		}
		t.printf("  %s\n", t.muted.Render(fmt.Sprintf("%s  (%s)", opt.Label, opt.Hint)))
	}
}

func (t *Terminal) ShowSessionBanner(providerLabel string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("%s\n", t.banner.Render("Chatting with "+providerLabel))
}

func (t *Terminal) SetInputEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if enabled {
		t.printf("%s\n", t.muted.Render("Type a message and press enter. /help lists commands."))
	}
}

func (t *Terminal) ShowAnalytics(snapshot model.AnalyticsSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.analytics = &snapshot
}

func (t *Terminal) ShowHistory(items []model.HistoryItem) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = slices.Clone(items)
}

func (t *Terminal) ShowNotice(notice model.Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch notice.Kind {
	case model.NoticeSuccess:
		t.printf("%s\n", t.success.Render(notice.Text))
	default:
		t.printf("%s\n", t.failure.Render(notice.Text))
	}
}

func (t *Terminal) ShowRatingDialog(state model.RatingDialogState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !state.Open {
		t.printf("%s\n", t.muted.Render("Rating closed."))
		return
	}
	t.printf("Rate conversation %s: %s", state.ConversationID, t.star.Render(Stars(state.Score)))
	if state.FeedbackText != "" {
		t.printf("  %q", state.FeedbackText)
	}
	t.printf("\n%s\n", t.muted.Render("  /star 1-5, /feedback <text>, /submit, /close"))
}

func (t *Terminal) ShowTab(tab model.Tab) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch tab {
	case model.TabAnalytics:
		t.renderAnalytics()
	case model.TabHistory:
		t.renderHistory()
	default:
		t.printf("%s\n", t.heading.Render("Chat"))
	}
}

func (t *Terminal) renderAnalytics() {
	t.printf("%s\n", t.heading.Render("Analytics"))
	if t.analytics == nil {
		t.printf("%s\n", t.muted.Render("  No analytics loaded yet."))
		return
	}
	t.printf("  Today:     %s\n", statLine(t.analytics.Daily))
	t.printf("  This week: %s\n", statLine(t.analytics.Weekly))
	for _, name := range slices.Sorted(maps.Keys(t.analytics.ProviderComparison)) {
		t.printf("  %-10s %s\n", name+":", statLine(t.analytics.ProviderComparison[name]))
	}
}

func (t *Terminal) renderHistory() {
	t.printf("%s\n", t.heading.Render("Recent conversations"))
	if len(t.history) == 0 {
		t.printf("%s\n", t.muted.Render("  No conversations yet."))
		return
	}
	for _, item := range t.history {
		rec := item.Record
		t.printf("  [%s] %s %s\n", rec.ID, rec.LLMProvider, t.muted.Render(rec.Timestamp.Format("2006-01-02 15:04")))
		t.printf("    You: %s\n", truncate(rec.UserMessage, 80))
		t.printf("    Bot: %s\n", truncate(rec.LLMResponse, 80))
		if item.Rateable {
			t.printf("    %s  %s\n", RatingLabel(rec), t.muted.Render("/rate "+string(rec.ID)))
		} else {
			t.printf("    %s\n", t.star.Render(RatingLabel(rec)))
		}
	}
}

// RatingLabel renders a record's rating as "★ n/5" or "Not rated".
func RatingLabel(rec model.ConversationRecord) string {
	if !rec.Rated() {
		return "Not rated"
	}
	return fmt.Sprintf("★ %d/5", *rec.Rating)
}

// Stars draws five stars with the first score filled.
func Stars(score int) string {
	score = max(0, min(score, 5))
	return strings.Repeat("★", score) + strings.Repeat("☆", 5-score)
}

func statLine(s model.StatBlock) string {
	return fmt.Sprintf("%d conversations, %d ratings, avg %.2f", s.TotalConversations, s.TotalRatings, s.AverageRating)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
