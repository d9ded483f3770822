package controller_test

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"supportbot/internal/backend"
	"supportbot/internal/controller"
	app_errors "supportbot/internal/errors"
	"supportbot/internal/events"
	"supportbot/internal/interfaces/mocks"
	"supportbot/internal/model"
	"supportbot/internal/presenter"
)

const testSessionID = "session_1700000000000_abc123def"

func scenarioProviders() []model.ProviderDescriptor {
	return []model.ProviderDescriptor{
		{Name: "openai", Available: true, APIKeyConfigured: true},
		{Name: "local", Available: false},
	}
}

func setupController(t *testing.T, opts controller.Options) (*controller.Controller, *mocks.MockBackend, *presenter.Recorder) {
	t.Helper()
	be := mocks.NewMockBackend(t)
	rec := presenter.NewRecorder()
	opts.NewSessionID = func() string { return testSessionID }
	c := controller.New(be, rec, opts)
	t.Cleanup(c.Wait)
	return c, be, rec
}

// initialized returns a controller that has fetched scenarioProviders and
// selected "openai". The initial analytics and history pulls return empty data.
func initialized(t *testing.T, opts controller.Options) (*controller.Controller, *mocks.MockBackend, *presenter.Recorder) {
	t.Helper()
	c, be, rec := setupController(t, opts)
	be.On("Providers", mock.Anything).Return(scenarioProviders(), nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil).Once()
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil).Once()
	require.NoError(t, c.Initialize(context.Background()))
	require.NoError(t, c.Catalog().Select("openai"))
	return c, be, rec
}

func chatFor(message string) any {
	return mock.MatchedBy(func(req *backend.ChatRequest) bool { return req.Message == message })
}

func TestNewSessionID_Format(t *testing.T) {
	re := regexp.MustCompile(`^session_\d{13}_[0-9a-f]{9}$`)
	seen := map[string]bool{}
	for range 100 {
		id := controller.NewSessionID()
		assert.Regexp(t, re, id)
		assert.False(t, seen[id], "duplicate session id %s", id)
		seen[id] = true
	}
}

func TestScenarioA_ProviderSelection(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	c, be, rec := setupController(t, controller.DefaultOptions())
	be.On("Providers", mock.Anything).Return(scenarioProviders(), nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil).Once()
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil).Once()

	// ACT
	require.NoError(t, c.Initialize(ctx))

	// ASSERT
	options := rec.LastOptions()
	require.Len(t, options, 2)
	assert.Equal(t, model.ProviderOption{Name: "openai", Label: "Openai", Enabled: true}, options[0])
	assert.Equal(t, model.ProviderOption{Name: "local", Label: "Local", Enabled: false, Hint: "API key not configured"}, options[1])
	assert.False(t, rec.InputEnabled())

	t.Run("Unavailable provider is rejected and input stays disabled", func(t *testing.T) {
		err := c.Catalog().Select("local")
		assert.ErrorIs(t, err, app_errors.ErrInvalidSelection)
		assert.False(t, rec.InputEnabled())
		assert.False(t, c.Catalog().InputEnabled())
		assert.Empty(t, c.Session().Provider())
	})

	t.Run("Unknown provider is rejected", func(t *testing.T) {
		assert.ErrorIs(t, c.Catalog().Select("gemini"), app_errors.ErrInvalidSelection)
		assert.False(t, rec.InputEnabled())
	})

	t.Run("Available provider enables input and greets", func(t *testing.T) {
		require.NoError(t, c.Catalog().Select("openai"))

		assert.True(t, rec.InputEnabled())
		assert.Equal(t, "openai", c.Session().Provider())
		assert.Equal(t, []string{"Openai"}, rec.Banners())
		turns := rec.Turns()
		require.Len(t, turns, 1)
		assert.Equal(t, model.RoleBot, turns[0].Role)
		assert.Contains(t, turns[0].Text, "openai")
	})

	t.Run("Input is enabled exactly once", func(t *testing.T) {
		require.NoError(t, c.Catalog().Select("openai"))
		assert.Equal(t, []bool{false, true}, rec.InputEnabledCalls())
	})
}

func TestInitialize_ProvidersUnavailable(t *testing.T) {
	// ARRANGE
	c, be, rec := setupController(t, controller.DefaultOptions())
	be.On("Providers", mock.Anything).Return(nil, fmt.Errorf("%w: connection refused", app_errors.ErrNetwork)).Once()
	be.On("Analytics", mock.Anything).Return(nil, app_errors.ErrNetwork).Once()
	be.On("Conversations", mock.Anything).Return(nil, app_errors.ErrNetwork).Once()

	// ACT
	err := c.Initialize(context.Background())

	// ASSERT
	assert.ErrorIs(t, err, app_errors.ErrNetwork)
	assert.Empty(t, c.Catalog().Providers())
	assert.NotNil(t, rec.LastOptions(), "an empty option list is still published")
	assert.Empty(t, rec.LastOptions())
	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, model.NoticeBlocking, notices[0].Kind)
	assert.Equal(t, "Failed to initialize application. Please refresh the page.", notices[0].Text)
	assert.ErrorIs(t, c.Catalog().Select("openai"), app_errors.ErrInvalidSelection)
}

func TestInitialize_FeedFailuresDoNotFailSession(t *testing.T) {
	// ARRANGE
	c, be, rec := setupController(t, controller.DefaultOptions())
	be.On("Providers", mock.Anything).Return(scenarioProviders(), nil).Once()
	be.On("Analytics", mock.Anything).Return(nil, app_errors.ErrNetwork).Once()
	be.On("Conversations", mock.Anything).Return(nil, app_errors.ErrNetwork).Once()

	// ACT
	err := c.Initialize(context.Background())

	// ASSERT
	require.NoError(t, err)
	assert.Empty(t, rec.Notices())
	assert.False(t, c.Analytics().Loaded())
	assert.NoError(t, c.Catalog().Select("openai"))
}

func TestScenarioB_SendSuccess(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	c, be, rec := initialized(t, controller.DefaultOptions())
	before := c.Transcript().Len()

	be.On("Chat", mock.Anything, &backend.ChatRequest{Message: "Hello", Provider: "openai", SessionID: testSessionID}).
		Return(&backend.ChatResponse{Response: "Hi there", ConversationID: "c1"}, nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil).Once()
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil).Once()

	// ACT
	state, err := c.Exchange().Send(ctx, "Hello")
	c.Wait()

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, model.ExchangeCompleted, state.Status)
	assert.Equal(t, model.ConversationID("c1"), state.ConversationID)
	assert.Equal(t, model.ConversationID("c1"), c.Session().ActiveConversation())
	assert.Equal(t, model.ExchangeIdle, c.Exchange().Phase())
	assert.Equal(t, state, c.Exchange().Last())

	turns := c.Transcript().Turns()[before:]
	require.Len(t, turns, 2)
	assert.Equal(t, model.RoleUser, turns[0].Role)
	assert.Equal(t, "Hello", turns[0].Text)
	assert.Equal(t, model.RoleBot, turns[1].Role)
	assert.Equal(t, "Hi there", turns[1].Text)
	assert.True(t, turns[1].Rateable)
	assert.Equal(t, model.ConversationID("c1"), turns[1].ConversationID)

	assert.Equal(t, c.Transcript().Turns(), rec.Turns(), "presenter mirrors the transcript")
	assert.Len(t, rec.Removed(), 1, "the placeholder was shown and removed")
	be.AssertNumberOfCalls(t, "Analytics", 2)
	be.AssertNumberOfCalls(t, "Conversations", 2)
}

func TestScenarioC_SendFailure(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	c, be, rec := initialized(t, controller.DefaultOptions())
	before := c.Transcript().Len()

	be.On("Chat", mock.Anything, chatFor("Hello")).
		Return(nil, &backend.StatusError{Method: "POST", Path: "/api/chat", StatusCode: 500, Body: "boom"}).Once()

	// ACT
	state, err := c.Exchange().Send(ctx, "Hello")
	c.Wait()

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, model.ExchangeFailed, state.Status)
	assert.Empty(t, c.Session().ActiveConversation())

	turns := c.Transcript().Turns()[before:]
	require.Len(t, turns, 2)
	assert.Equal(t, "Hello", turns[0].Text)
	assert.Equal(t, "Sorry, I encountered an error. Please try again.", turns[1].Text)
	assert.False(t, turns[1].Rateable)
	for _, turn := range rec.Turns() {
		assert.False(t, turn.Placeholder)
	}

	be.AssertNumberOfCalls(t, "Analytics", 1)
	be.AssertNumberOfCalls(t, "Conversations", 1)
	assert.EqualValues(t, 0, c.Refresher().Runs())
}

func TestSend_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("Blank messages are no-ops", func(t *testing.T) {
		c, be, _ := initialized(t, controller.DefaultOptions())
		before := c.Transcript().Len()

		for _, text := range []string{"", "   ", "\n\t"} {
			_, err := c.Exchange().Send(ctx, text)
			assert.ErrorIs(t, err, app_errors.ErrPreconditionNotMet)
		}

		assert.Equal(t, before, c.Transcript().Len())
		be.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	})

	t.Run("No provider selected", func(t *testing.T) {
		c, be, _ := setupController(t, controller.DefaultOptions())

		_, err := c.Exchange().Send(ctx, "Hello")

		assert.ErrorIs(t, err, app_errors.ErrPreconditionNotMet)
		assert.Zero(t, c.Transcript().Len())
		be.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	})

	t.Run("Dispatch swallows precondition failures", func(t *testing.T) {
		c, be, _ := initialized(t, controller.DefaultOptions())

		assert.NoError(t, c.Dispatch(ctx, events.SendRequested{Text: "  "}))
		assert.NoError(t, c.Dispatch(ctx, events.RatingSubmitRequested{}))
		assert.NoError(t, c.Dispatch(ctx, events.StarSelected{Score: 3}), "no dialog is open")
		be.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
		be.AssertNotCalled(t, "Rate", mock.Anything, mock.Anything)
	})
}

func TestSend_MessageIsTrimmedAndSessionIsStable(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	c, be, _ := setupController(t, controller.DefaultOptions())
	be.On("Providers", mock.Anything).Return([]model.ProviderDescriptor{
		{Name: "openai", Available: true}, {Name: "anthropic", Available: true},
	}, nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil)
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil)
	require.NoError(t, c.Initialize(ctx))

	var requests []*backend.ChatRequest
	be.On("Chat", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { requests = append(requests, args.Get(1).(*backend.ChatRequest)) }).
		Return(&backend.ChatResponse{Response: "ok", ConversationID: "1"}, nil)

	// ACT
	require.NoError(t, c.Catalog().Select("openai"))
	_, err := c.Exchange().Send(ctx, "  first  ")
	require.NoError(t, err)
	require.NoError(t, c.Catalog().Select("anthropic"))
	_, err = c.Exchange().Send(ctx, "second")
	require.NoError(t, err)
	c.Wait()

	// ASSERT
	require.Len(t, requests, 2)
	assert.Equal(t, "first", requests[0].Message)
	assert.Equal(t, "openai", requests[0].Provider)
	assert.Equal(t, "anthropic", requests[1].Provider)
	assert.Equal(t, testSessionID, requests[0].SessionID)
	assert.Equal(t, requests[0].SessionID, requests[1].SessionID)
}

func TestSend_EmptyConversationIDIsNotRateable(t *testing.T) {
	c, be, _ := initialized(t, controller.DefaultOptions())
	be.On("Chat", mock.Anything, chatFor("Hello")).Return(&backend.ChatResponse{Response: "Hi"}, nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil).Once()
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil).Once()

	state, err := c.Exchange().Send(context.Background(), "Hello")
	c.Wait()

	require.NoError(t, err)
	assert.Equal(t, model.ExchangeCompleted, state.Status)
	turns := c.Transcript().Turns()
	assert.False(t, turns[len(turns)-1].Rateable)
	assert.Empty(t, c.Session().ActiveConversation())
}

func TestSend_OverlappingTurns(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	c, be, rec := initialized(t, controller.DefaultOptions())
	before := c.Transcript().Len()

	releaseFirst := make(chan struct{})
	releaseSecond := make(chan struct{})
	be.On("Chat", mock.Anything, chatFor("first")).
		Run(func(mock.Arguments) { <-releaseFirst }).
		Return(&backend.ChatResponse{Response: "one", ConversationID: "1"}, nil).Once()
	be.On("Chat", mock.Anything, chatFor("second")).
		Run(func(mock.Arguments) { <-releaseSecond }).
		Return(&backend.ChatResponse{Response: "two", ConversationID: "2"}, nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil)
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil)

	results := make(chan model.ExchangeState, 2)
	send := func(text string) {
		state, err := c.Exchange().Send(ctx, text)
		assert.NoError(t, err)
		results <- state
	}

	// ACT
	go send("first")
	go send("second")
	require.Eventually(t, func() bool {
		placeholders := 0
		for _, turn := range rec.Turns() {
			if turn.Placeholder {
				placeholders++
			}
		}
		return placeholders == 2
	}, time.Second, 5*time.Millisecond, "both sends should be in flight")
	assert.Equal(t, model.ExchangeSending, c.Exchange().Phase())

	close(releaseSecond)
	second := <-results
	assert.Equal(t, model.ConversationID("2"), second.ConversationID)
	assert.Equal(t, model.ExchangeSending, c.Exchange().Phase(), "first is still in flight")

	close(releaseFirst)
	first := <-results
	c.Wait()

	// ASSERT
	assert.Equal(t, model.ConversationID("1"), first.ConversationID)
	assert.Equal(t, model.ExchangeIdle, c.Exchange().Phase())
	assert.Equal(t, model.ConversationID("1"), c.Session().ActiveConversation(), "the last exchange to settle wins")

	turns := c.Transcript().Turns()[before:]
	require.Len(t, turns, 4)
	var texts []string
	for _, turn := range turns {
		assert.False(t, turn.Placeholder)
		texts = append(texts, turn.Text)
	}
	assert.ElementsMatch(t, []string{"first", "second", "one", "two"}, texts)
	assert.Len(t, rec.Removed(), 2)
}

func TestSend_SerializedRejectsWhileSending(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	opts := controller.DefaultOptions()
	opts.SerializeSends = true
	c, be, _ := initialized(t, opts)

	release := make(chan struct{})
	be.On("Chat", mock.Anything, chatFor("first")).
		Run(func(mock.Arguments) { <-release }).
		Return(&backend.ChatResponse{Response: "one", ConversationID: "1"}, nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil).Once()
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := c.Exchange().Send(ctx, "first")
		assert.NoError(t, err)
	}()
	require.Eventually(t, func() bool { return c.Exchange().Phase() == model.ExchangeSending }, time.Second, 5*time.Millisecond)
	inFlight := c.Transcript().Len()

	// ACT
	_, err := c.Exchange().Send(ctx, "second")

	// ASSERT
	assert.ErrorIs(t, err, app_errors.ErrPreconditionNotMet)
	assert.Equal(t, inFlight, c.Transcript().Len())

	close(release)
	<-done
	c.Wait()
	be.AssertNumberOfCalls(t, "Chat", 1)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Routes provider, tab and rating events", func(t *testing.T) {
		c, be, rec := initialized(t, controller.DefaultOptions())
		be.On("Chat", mock.Anything, chatFor("Hello")).
			Return(&backend.ChatResponse{Response: "Hi", ConversationID: "7"}, nil).Once()
		be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil).Once()
		be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil).Once()

		require.NoError(t, c.Dispatch(ctx, events.SendRequested{Text: "Hello"}))
		require.NoError(t, c.Dispatch(ctx, events.TabSwitched{Tab: model.TabAnalytics}))
		require.NoError(t, c.Dispatch(ctx, events.TurnRateRequested{}))
		require.NoError(t, c.Dispatch(ctx, events.StarSelected{Score: 2}))
		require.NoError(t, c.Dispatch(ctx, events.FeedbackChanged{Text: "meh"}))

		assert.Equal(t, []model.Tab{model.TabAnalytics}, rec.Tabs())
		assert.Equal(t, model.RatingDialogState{Open: true, ConversationID: "7", Score: 2, FeedbackText: "meh"}, c.Rating().State())

		require.NoError(t, c.Dispatch(ctx, events.RatingDismissed{}))
		assert.False(t, c.Rating().State().Open)
	})

	t.Run("Invalid selection and scores are returned", func(t *testing.T) {
		c, _, _ := initialized(t, controller.DefaultOptions())

		assert.ErrorIs(t, c.Dispatch(ctx, events.ProviderChosen{Provider: "local"}), app_errors.ErrInvalidSelection)
		assert.ErrorIs(t, c.Dispatch(ctx, events.StarSelected{Score: 9}), app_errors.ErrValidation)
	})

	t.Run("Unknown events are internal errors", func(t *testing.T) {
		c, _, _ := setupController(t, controller.DefaultOptions())
		assert.ErrorIs(t, c.Dispatch(ctx, unknownEvent{}), app_errors.ErrInternal)
	})
}

type unknownEvent struct{}

func (unknownEvent) Name() string { return "unknown" }

func TestRun_ConsumesEventStream(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	c, be, _ := setupController(t, controller.DefaultOptions())
	be.On("Providers", mock.Anything).Return(scenarioProviders(), nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil)
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil)
	be.On("Chat", mock.Anything, chatFor("Hello")).
		Return(&backend.ChatResponse{Response: "Hi there", ConversationID: "c1"}, nil).Once()
	require.NoError(t, c.Initialize(ctx))

	bus := events.NewBus()
	stream := bus.Subscribe()

	// ACT
	bus.Publish(events.ProviderChosen{Provider: "openai"})
	bus.Publish(events.SendRequested{Text: "Hello"})
	bus.Publish(events.SendRequested{Text: ""})
	bus.Close()
	err := c.Run(ctx, stream)
	c.Wait()

	// ASSERT
	require.NoError(t, err)
	var texts []string
	for _, turn := range c.Transcript().Turns() {
		texts = append(texts, turn.Text)
	}
	require.Len(t, texts, 3)
	assert.True(t, strings.HasPrefix(texts[0], "Hello! I'm your openai"))
	assert.Equal(t, []string{"Hello", "Hi there"}, texts[1:])
}

// TestRun_UserTurnsKeepInputOrder queues many sends at once. Their requests
// run concurrently, but the user turns must appear in the order entered.
func TestRun_UserTurnsKeepInputOrder(t *testing.T) {
	// ARRANGE
	const sends = 40
	ctx := context.Background()
	c, be, _ := setupController(t, controller.DefaultOptions())
	be.On("Providers", mock.Anything).Return(scenarioProviders(), nil).Once()
	be.On("Analytics", mock.Anything).Return(&model.AnalyticsSnapshot{}, nil)
	be.On("Conversations", mock.Anything).Return([]model.ConversationRecord{}, nil)
	be.On("Chat", mock.Anything, mock.Anything).
		Return(&backend.ChatResponse{Response: "ok", ConversationID: "c1"}, nil).Times(sends)
	require.NoError(t, c.Initialize(ctx))

	stream := make(chan events.Event, sends+1)
	stream <- events.ProviderChosen{Provider: "openai"}
	want := make([]string, 0, sends)
	for i := 0; i < sends; i++ {
		text := fmt.Sprint(i)
		want = append(want, text)
		stream <- events.SendRequested{Text: text}
	}
	close(stream)

	// ACT
	err := c.Run(ctx, stream)
	c.Wait()

	// ASSERT
	require.NoError(t, err)
	var got []string
	for _, turn := range c.Transcript().Turns() {
		if turn.Role == model.RoleUser {
			got = append(got, turn.Text)
		}
	}
	assert.Equal(t, want, got)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	c, _, _ := setupController(t, controller.DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, make(chan events.Event))

	assert.ErrorIs(t, err, context.Canceled)
}
