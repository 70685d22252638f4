package view

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/presencedash/chart"
	"github.com/presencedash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherFunc func(ctx context.Context, path string) models.FetchOutcome

func (f fetcherFunc) Fetch(ctx context.Context, path string) models.FetchOutcome {
	return f(ctx, path)
}

// recordingFetcher serves canned outcomes and remembers every requested path
type recordingFetcher struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]models.FetchOutcome
}

func (f *recordingFetcher) Fetch(_ context.Context, path string) models.FetchOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, path)
	if o, ok := f.responses[path]; ok {
		return o
	}
	return models.NotFound()
}

func (f *recordingFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
	stale    int
}

func (r *countingRecorder) ObserveFetch(_, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = map[string]int{}
	}
	r.outcomes[outcome]++
}

func (r *countingRecorder) RecordStale(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale++
}

func newController(t *testing.T, name string, f Fetcher, opts ...Option) *Controller {
	t.Helper()
	cfg, err := Lookup(name)
	require.NoError(t, err)
	return NewController(cfg, f, chart.NewLibrary(""), opts...)
}

func TestMeanTimeRendersMondayAtOneAM(t *testing.T) {
	f := &recordingFetcher{responses: map[string]models.FetchOutcome{
		"/api/v1/mean_time_weekday/42": models.Success([]byte(`[["Mon", 3600], ["Tue", 0], ["Wed", 0]]`)),
	}}
	c := newController(t, "mean_time_weekday", f)

	state := c.SetSubject(context.Background(), "42")

	assert.Equal(t, StateRendered, state.State)
	assert.Equal(t, "column", state.Adapter)
	assert.True(t, state.ChartVisible)
	assert.False(t, state.LoadingVisible)
	assert.Empty(t, state.ErrorText)
	assert.Contains(t, string(state.Chart.Script), "01:00:00")
	assert.NotEmpty(t, state.Assets)
	assert.Equal(t, []string{"/api/v1/mean_time_weekday/42"}, f.Calls())
}

func TestEmptySignalShowsUserHasNoData(t *testing.T) {
	f := &recordingFetcher{responses: map[string]models.FetchOutcome{
		"/api/v1/presence_weekday/7":   models.Success([]byte(`[["Weekday", "Presence (s)"], ["Mon", 0], ["Tue", 0]]`)),
		"/api/v1/presence_start_end/7": models.Success([]byte(`[["Mon", 0, 0], ["Tue", 0, 0]]`)),
	}}

	for _, name := range []string{"presence_weekday", "presence_start_end"} {
		t.Run(name, func(t *testing.T) {
			c := newController(t, name, f)
			state := c.SetSubject(context.Background(), "7")

			assert.Equal(t, StateEmpty, state.State)
			assert.Equal(t, "User has no data.", state.ErrorText)
			assert.False(t, state.LoadingVisible)
			assert.False(t, state.ChartVisible)
			assert.Nil(t, state.Assets, "library must wait for a successful draw")
		})
	}
}

func TestNotFoundAndServerErrorLookTheSame(t *testing.T) {
	f := &recordingFetcher{responses: map[string]models.FetchOutcome{
		"/api/v1/presence_weekday/500": models.OtherError(http.StatusInternalServerError, nil),
	}}
	c := newController(t, "presence_weekday", f)

	missing := c.SetSubject(context.Background(), "404")
	broken := c.SetSubject(context.Background(), "500")

	for _, state := range []ViewState{missing, broken} {
		assert.Equal(t, StateError, state.State)
		assert.Equal(t, "There is no data available.", state.ErrorText)
		assert.False(t, state.LoadingVisible)
		assert.False(t, state.ChartVisible)
	}
}

func TestUndecodableBodyIsAnError(t *testing.T) {
	f := fetcherFunc(func(context.Context, string) models.FetchOutcome {
		return models.Success([]byte(`<html>oops</html>`))
	})
	c := newController(t, "mean_time_weekday", f)

	state := c.SetSubject(context.Background(), "42")

	assert.Equal(t, StateError, state.State)
	assert.Equal(t, NoDataText, state.ErrorText)
}

func TestUnmetPreconditionClearsWithoutFetching(t *testing.T) {
	f := &recordingFetcher{responses: map[string]models.FetchOutcome{
		"/api/v1/presence_weekday/10": models.Success([]byte(`[["Mon", 100]]`)),
	}}
	c := newController(t, "presence_weekday", f)

	state := c.SetSubject(context.Background(), "10")
	require.Equal(t, StateRendered, state.State)

	state = c.SetSubject(context.Background(), "")

	assert.Equal(t, StateIdle, state.State)
	assert.False(t, state.ChartVisible)
	assert.False(t, state.LoadingVisible)
	assert.Empty(t, state.ErrorText)
	assert.True(t, state.Chart.IsZero())
	assert.Len(t, f.Calls(), 1)

	// location views need a period, a subject alone is not enough
	loc := newController(t, "location_gender", f)
	state = loc.Select(context.Background(), models.Selection{SubjectID: "10", Gender: models.GenderMale})
	assert.Equal(t, StateIdle, state.State)
	assert.Len(t, f.Calls(), 1)
}

func TestLocationGenderSwitchesBranches(t *testing.T) {
	f := &recordingFetcher{responses: map[string]models.FetchOutcome{
		"/api/v1/location_gender_view/2013-09":        models.Success([]byte(`{"Gdansk": {"male": 3600, "female": 7200}}`)),
		"/api/v1/location_gender_view/2013-09/female": models.Success([]byte(`{"Gdansk": 7200}`)),
	}}
	c := newController(t, "location_gender", f)
	ctx := context.Background()

	state := c.SetPeriod(ctx, "2013-09")
	assert.Equal(t, StateRendered, state.State)
	assert.Equal(t, "stacked_bar", state.Adapter)
	assert.Equal(t, "/api/v1/location_gender_view/2013-09", state.Endpoint)

	state = c.SetGender(ctx, models.GenderFemale)
	assert.Equal(t, StateRendered, state.State)
	assert.Equal(t, "bar", state.Adapter)
	assert.Equal(t, "/api/v1/location_gender_view/2013-09/female", state.Endpoint)
	assert.Contains(t, string(state.Chart.Script), "Female")

	assert.Equal(t, []string{
		"/api/v1/location_gender_view/2013-09",
		"/api/v1/location_gender_view/2013-09/female",
	}, f.Calls())
}

func TestPresenceLocationRendersHours(t *testing.T) {
	f := &recordingFetcher{responses: map[string]models.FetchOutcome{
		"/api/v1/presence_location_view/2013-09": models.Success([]byte(`{"locations": {"Sopot": 3600, "Gdansk": 7200}}`)),
	}}
	c := newController(t, "presence_location", f)

	state := c.SetPeriod(context.Background(), "2013-09")
	require.Equal(t, StateRendered, state.State)
	assert.Equal(t, "bar", state.Adapter)
	assert.Equal(t, "/api/v1/presence_location_view/2013-09", state.Endpoint)

	script := string(state.Chart.Script)
	assert.Contains(t, script, "Hours")
	assert.Contains(t, script, `"value":2`)
	assert.Contains(t, script, `"value":1`)
	assert.Less(t, strings.Index(script, "Gdansk"), strings.Index(script, "Sopot"))
}

func TestConcurrentSelectsSettleOnLatestSelection(t *testing.T) {
	f := fetcherFunc(func(context.Context, string) models.FetchOutcome {
		return models.Success([]byte(`[["Mon", 3600]]`))
	})
	c := newController(t, "mean_time_weekday", f)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Select(context.Background(), models.Selection{SubjectID: strconv.Itoa(i)})
		}()
	}
	wg.Wait()

	assert.Equal(t, c.Selection(), c.State().Selection)
	assert.Equal(t, StateRendered, c.State().State)
}

func TestStaleOutcomeIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := fetcherFunc(func(_ context.Context, path string) models.FetchOutcome {
		if path == "/api/v1/presence_weekday/1" {
			close(started)
			<-release
			return models.NotFound()
		}
		return models.Success([]byte(`[["Mon", 100], ["Tue", 200]]`))
	})
	rec := &countingRecorder{}
	c := newController(t, "presence_weekday", f, WithRecorder(rec))

	slow := make(chan ViewState)
	go func() {
		slow <- c.SetSubject(context.Background(), "1")
	}()
	<-started

	latest := c.SetSubject(context.Background(), "2")
	require.Equal(t, StateRendered, latest.State)

	close(release)
	late := <-slow

	assert.Equal(t, latest.Generation, late.Generation)
	assert.Equal(t, "2", late.Selection.SubjectID)
	assert.Equal(t, StateRendered, c.State().State)
	assert.Equal(t, 1, rec.stale)
	assert.Equal(t, 1, rec.outcomes["not_found"])
	assert.Equal(t, 1, rec.outcomes["success"])
}

func TestLibraryLoadsOncePerSession(t *testing.T) {
	f := fetcherFunc(func(context.Context, string) models.FetchOutcome {
		return models.Success([]byte(`[["Mon", 100]]`))
	})
	lib := chart.NewLibrary("")
	cfg, err := Lookup("presence_weekday")
	require.NoError(t, err)
	c := NewController(cfg, f, lib)

	for _, id := range []string{"1", "2", "3"} {
		c.SetSubject(context.Background(), id)
	}
	assert.Equal(t, 1, lib.Loads())
}

func TestBranchPathEscapes(t *testing.T) {
	b := Branch{Endpoint: "/api/v1/location_gender_view/{period}/{gender}"}
	path := b.Path(models.Selection{PeriodKey: "2013/09", Gender: models.GenderMale})
	assert.Equal(t, "/api/v1/location_gender_view/2013%2F09/male", path)
}

func TestLookupUnknownView(t *testing.T) {
	_, err := Lookup("nope")
	assert.ErrorIs(t, err, models.ErrUnknownView)
	assert.Len(t, Names(), 5)
}

func TestSelectionState(t *testing.T) {
	var s SelectionState
	s.SetSubject("10")
	s.SetPeriod("2013-09")
	s.SetGender(models.GenderFemale)
	assert.Equal(t, models.Selection{SubjectID: "10", PeriodKey: "2013-09", Gender: models.GenderFemale}, s.Snapshot())

	s.Apply(models.Selection{})
	assert.Equal(t, models.Selection{}, s.Snapshot())
}
