package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeService answers GenerateRecipe with a canned response or error.
// When gate is set, calls block until it is closed.
type fakeService struct {
	mu      sync.Mutex
	resp    *domain.GenerateResponse
	err     error
	gate    chan struct{}
	started chan struct{}
	calls   []domain.RecipeRequest
}

func (f *fakeService) GenerateRecipe(ctx context.Context, req domain.RecipeRequest) (*domain.GenerateResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.resp, f.err
}

func (f *fakeService) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return nil, nil
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

// statusRecorder keeps every status published by the controller.
type statusRecorder struct {
	mu       sync.Mutex
	statuses []domain.Status
}

func (r *statusRecorder) observe(s domain.FormState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.statuses); n > 0 && r.statuses[n-1] == s.Status {
		return
	}
	r.statuses = append(r.statuses, s.Status)
}

func (r *statusRecorder) get() []domain.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Status(nil), r.statuses...)
}

func setupController(t *testing.T, svc domain.RecipeService) (*Controller, *mockNotifier, *statusRecorder) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	notifier := &mockNotifier{}
	rec := &statusRecorder{statuses: []domain.Status{domain.StatusIdle}}
	ctrl := New(svc, log, WithNotifier(notifier), WithObserver(rec.observe))
	return ctrl, notifier, rec
}

func addIngredients(t *testing.T, c *Controller, names ...string) {
	t.Helper()
	for _, n := range names {
		c.SetPending(n)
		require.True(t, c.AddIngredient(), "adding %q", n)
	}
}

func sampleResponse() *domain.GenerateResponse {
	return &domain.GenerateResponse{
		Recipe: domain.Recipe{
			ID:          1,
			Title:       "Crêpes",
			Ingredients: []string{"egg", "flour"},
			Steps:       []string{"Mix.", "Cook."},
			Difficulty:  domain.DifficultyEasy,
		},
		Metadata: domain.RequestMetadata{TotalIngredients: 2, TotalSteps: 2, IsVegetarian: true},
	}
}

func TestDefaults(t *testing.T) {
	ctrl, _, _ := setupController(t, &fakeService{})
	s := ctrl.Snapshot()

	assert.Empty(t, s.Ingredients)
	assert.Equal(t, "française", s.CuisineType)
	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, 30, s.Duration)
	assert.Equal(t, domain.StatusIdle, s.Status)
}

func TestAddIngredient(t *testing.T) {
	tests := []struct {
		name    string
		pending string
		wantOK  bool
		want    []string
	}{
		{"plain", "tomato", true, []string{"tomato"}},
		{"trimmed", "  basil \t", true, []string{"basil"}},
		{"whitespace only", "   ", false, []string{}},
		{"empty", "", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _, _ := setupController(t, &fakeService{})
			ctrl.SetPending(tt.pending)

			assert.Equal(t, tt.wantOK, ctrl.AddIngredient())
			s := ctrl.Snapshot()
			assert.Equal(t, tt.want, s.Ingredients)
			if tt.wantOK {
				assert.Empty(t, s.Pending)
			}
		})
	}
}

func TestRemoveIngredient(t *testing.T) {
	ctrl, _, _ := setupController(t, &fakeService{})
	addIngredients(t, ctrl, "tomato")

	assert.True(t, ctrl.RemoveIngredient(0))
	assert.Empty(t, ctrl.Snapshot().Ingredients)

	addIngredients(t, ctrl, "a", "b", "c")
	assert.True(t, ctrl.RemoveIngredient(1))
	assert.Equal(t, []string{"a", "c"}, ctrl.Snapshot().Ingredients)

	assert.False(t, ctrl.RemoveIngredient(5))
	assert.False(t, ctrl.RemoveIngredient(-1))
	assert.Equal(t, []string{"a", "c"}, ctrl.Snapshot().Ingredients)
}

func TestSnapshotIsACopy(t *testing.T) {
	ctrl, _, _ := setupController(t, &fakeService{})
	addIngredients(t, ctrl, "a", "b")

	s := ctrl.Snapshot()
	s.Ingredients[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, ctrl.Snapshot().Ingredients)
}

func TestSetDuration(t *testing.T) {
	ctrl, _, _ := setupController(t, &fakeService{})

	assert.False(t, ctrl.SetDuration(3))
	assert.Equal(t, 30, ctrl.Snapshot().Duration)

	assert.True(t, ctrl.SetDuration(60))
	assert.Equal(t, 60, ctrl.Snapshot().Duration)

	tests := []struct {
		text   string
		wantOK bool
		want   int
	}{
		{"5", true, 5},
		{"240", true, 240},
		{"241", false, 240},
		{"abc", false, 240},
		{"", false, 240},
		{" 45 ", true, 45},
		{"4", false, 45},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantOK, ctrl.SetDurationText(tt.text), "input %q", tt.text)
		assert.Equal(t, tt.want, ctrl.Snapshot().Duration, "after %q", tt.text)
	}
}

func TestSetCuisineAndLanguage(t *testing.T) {
	ctrl, _, _ := setupController(t, &fakeService{})

	require.NoError(t, ctrl.SetCuisine("italienne"))
	require.NoError(t, ctrl.SetLanguage("en"))
	assert.ErrorIs(t, ctrl.SetCuisine("martian"), domain.ErrUnknownCuisine)
	assert.ErrorIs(t, ctrl.SetLanguage("de"), domain.ErrUnknownLanguage)

	s := ctrl.Snapshot()
	assert.Equal(t, "italienne", s.CuisineType)
	assert.Equal(t, "en", s.Language)
}

func TestSubmitWithoutIngredients(t *testing.T) {
	svc := &fakeService{resp: sampleResponse()}
	ctrl, notifier, rec := setupController(t, svc)

	_, err := ctrl.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrNoIngredients)

	s := ctrl.Snapshot()
	assert.Equal(t, 0, svc.callCount())
	assert.Equal(t, domain.StatusFailed, s.Status)
	assert.Equal(t, domain.MsgNoIngredients, s.LastError)
	assert.Equal(t, []string{domain.MsgNoIngredients}, notifier.urgent)
	assert.Equal(t, []domain.Status{domain.StatusIdle, domain.StatusFailed}, rec.get())
}

func TestSubmitSuccess(t *testing.T) {
	want := sampleResponse()
	svc := &fakeService{resp: want}
	ctrl, notifier, rec := setupController(t, svc)
	addIngredients(t, ctrl, "egg", "flour")

	got, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)

	s := ctrl.Snapshot()
	assert.Equal(t, domain.StatusSucceeded, s.Status)
	assert.Same(t, want, s.Result)
	assert.Equal(t, want.Metadata, s.Result.Metadata)
	assert.Empty(t, s.LastError)
	assert.Equal(t, []string{"egg", "flour"}, s.Ingredients)

	assert.Equal(t, []domain.Status{domain.StatusIdle, domain.StatusLoading, domain.StatusSucceeded}, rec.get())
	assert.Equal(t, []string{domain.MsgGenerated}, notifier.messages)
	assert.Empty(t, notifier.urgent)

	require.Equal(t, 1, svc.callCount())
	assert.Equal(t, domain.RecipeRequest{
		Ingredients: []string{"egg", "flour"},
		CuisineType: "française",
		Language:    "fr",
		Duration:    30,
	}, svc.calls[0])
}

func TestSubmitFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("Service unavailable")}
	ctrl, notifier, rec := setupController(t, svc)
	addIngredients(t, ctrl, "egg")

	_, err := ctrl.Submit(context.Background())
	require.Error(t, err)

	s := ctrl.Snapshot()
	assert.Equal(t, domain.StatusFailed, s.Status)
	assert.Equal(t, "Service unavailable", s.LastError)
	assert.Nil(t, s.Result)
	assert.Equal(t, []domain.Status{domain.StatusIdle, domain.StatusLoading, domain.StatusFailed}, rec.get())
	assert.Equal(t, []string{"Service unavailable"}, notifier.urgent)
	assert.Empty(t, notifier.messages)
}

func TestSubmitFailureWithEmptyMessage(t *testing.T) {
	svc := &fakeService{err: errors.New("")}
	ctrl, _, _ := setupController(t, svc)
	addIngredients(t, ctrl, "egg")

	_, _ = ctrl.Submit(context.Background())
	assert.Equal(t, domain.MsgGenerateFailed, ctrl.Snapshot().LastError)
}

func TestRetryAfterFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("Service unavailable")}
	ctrl, _, _ := setupController(t, svc)
	addIngredients(t, ctrl, "egg")

	_, err := ctrl.Submit(context.Background())
	require.Error(t, err)

	svc.err = nil
	svc.resp = sampleResponse()
	_, err = ctrl.Submit(context.Background())
	require.NoError(t, err)

	s := ctrl.Snapshot()
	assert.Equal(t, domain.StatusSucceeded, s.Status)
	assert.Empty(t, s.LastError)
	assert.Equal(t, 2, svc.callCount())
}

func TestSubmitWhileLoading(t *testing.T) {
	svc := &fakeService{
		resp:    sampleResponse(),
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	ctrl, _, _ := setupController(t, svc)
	addIngredients(t, ctrl, "egg")

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background())
		done <- err
	}()
	<-svc.started

	assert.True(t, ctrl.Snapshot().Busy())

	_, err := ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.ErrorIs(t, ctrl.Reset(), domain.ErrSubmitInFlight)
	assert.ErrorIs(t, ctrl.SetCuisine("thai"), domain.ErrSubmitInFlight)
	assert.False(t, ctrl.SetDuration(90))
	ctrl.SetPending("milk")
	assert.False(t, ctrl.AddIngredient())
	assert.False(t, ctrl.RemoveIngredient(0))

	close(svc.gate)
	require.NoError(t, <-done)

	s := ctrl.Snapshot()
	assert.Equal(t, domain.StatusSucceeded, s.Status)
	assert.Equal(t, []string{"egg"}, s.Ingredients)
	assert.Equal(t, "française", s.CuisineType)
	assert.Equal(t, 30, s.Duration)
	assert.Equal(t, 1, svc.callCount())
}

func TestReset(t *testing.T) {
	svc := &fakeService{resp: sampleResponse()}
	ctrl, _, rec := setupController(t, svc)
	addIngredients(t, ctrl, "egg", "flour")
	require.NoError(t, ctrl.SetCuisine("japonaise"))
	require.NoError(t, ctrl.SetLanguage("es"))
	require.True(t, ctrl.SetDuration(90))

	_, err := ctrl.Submit(context.Background())
	require.NoError(t, err)

	require.NoError(t, ctrl.Reset())

	s := ctrl.Snapshot()
	assert.Equal(t, []string{}, s.Ingredients)
	assert.Equal(t, "française", s.CuisineType)
	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, 30, s.Duration)
	assert.Equal(t, domain.StatusIdle, s.Status)
	assert.Nil(t, s.Result)
	assert.Empty(t, s.LastError)
	assert.Equal(t, domain.StatusIdle, rec.get()[len(rec.get())-1])
}
