package presenter

import (
	"slices"
	"sync"

	"supportbot/internal/model"
)

// Recorder is a Presenter that remembers every call. It backs tests and any
// headless embedding of the controller.
type Recorder struct {
	mu sync.Mutex

	turns     []model.Turn
	appended  []model.Turn
	removed   []string
	options   [][]model.ProviderOption
	banners   []string
	input     []bool
	analytics []model.AnalyticsSnapshot
	history   [][]model.HistoryItem
	notices   []model.Notice
	dialogs   []model.RatingDialogState
	tabs      []model.Tab
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) AppendTurn(turn model.Turn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = append(r.turns, turn)
	r.appended = append(r.appended, turn)
}

func (r *Recorder) RemoveTurn(turnID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = slices.DeleteFunc(r.turns, func(t model.Turn) bool { return t.ID == turnID })
	r.removed = append(r.removed, turnID)
}

func (r *Recorder) ShowProviderOptions(options []model.ProviderOption) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options = append(r.options, slices.Clone(options))
}

func (r *Recorder) ShowSessionBanner(providerLabel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners = append(r.banners, providerLabel)
}

func (r *Recorder) SetInputEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.input = append(r.input, enabled)
}

func (r *Recorder) ShowAnalytics(snapshot model.AnalyticsSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analytics = append(r.analytics, snapshot)
}

func (r *Recorder) ShowHistory(items []model.HistoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, slices.Clone(items))
}

func (r *Recorder) ShowNotice(notice model.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *Recorder) ShowRatingDialog(state model.RatingDialogState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialogs = append(r.dialogs, state)
}

func (r *Recorder) ShowTab(tab model.Tab) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tabs = append(r.tabs, tab)
}

// Turns returns the turns currently on screen.
func (r *Recorder) Turns() []model.Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.turns)
}

// Appended returns every turn ever appended, including removed placeholders.
func (r *Recorder) Appended() []model.Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.appended)
}

func (r *Recorder) Removed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.removed)
}

// LastOptions returns the most recent provider options, nil when none were shown.
func (r *Recorder) LastOptions() []model.ProviderOption {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.options) == 0 {
		return nil
	}
	return slices.Clone(r.options[len(r.options)-1])
}

func (r *Recorder) Banners() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.banners)
}

// InputEnabledCalls returns every SetInputEnabled argument in order.
func (r *Recorder) InputEnabledCalls() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.input)
}

// InputEnabled reports the last SetInputEnabled value.
func (r *Recorder) InputEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.input) > 0 && r.input[len(r.input)-1]
}

func (r *Recorder) AnalyticsCalls() []model.AnalyticsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.analytics)
}

// LastHistory returns the most recently published history, nil when none.
func (r *Recorder) LastHistory() []model.HistoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return nil
	}
	return slices.Clone(r.history[len(r.history)-1])
}

func (r *Recorder) HistoryCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

func (r *Recorder) Notices() []model.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.notices)
}

func (r *Recorder) Dialogs() []model.RatingDialogState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.dialogs)
}

// LastDialog returns the most recent rating dialog state.
func (r *Recorder) LastDialog() model.RatingDialogState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.dialogs) == 0 {
		return model.RatingDialogState{}
	}
	return r.dialogs[len(r.dialogs)-1]
}

func (r *Recorder) Tabs() []model.Tab {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tabs)
}
