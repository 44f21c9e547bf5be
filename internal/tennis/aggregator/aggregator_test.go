package aggregator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
	"github.com/radieske/tennis-edge-api/internal/tennis/source"
)

type fakeSource struct {
	calls  atomic.Int32
	delay  time.Duration
	result source.Result
}

func (f *fakeSource) Fetch(ctx context.Context) source.Result {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.result
}

type fakeGenerator struct{ matches []models.Match }

func (g fakeGenerator) Synthesize(_ []models.Tournament) []models.Match {
	return append([]models.Match(nil), g.matches...)
}

type fakeSink struct {
	name string
	err  error

	mu    sync.Mutex
	snaps []*models.Snapshot
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Publish(_ context.Context, snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	return s.err
}

func match(tournament string, edge float64, challenger, value bool) models.Match {
	m := models.Match{Tournament: tournament}
	m.EnhancedEdge = edge
	m.ChallengerLevel = challenger
	m.IsValueBet = value
	return m
}

func liveResult(n int) source.Result {
	ts := make([]models.Tournament, n)
	for i := range ts {
		ts[i] = models.Tournament{Name: "T", Status: models.StatusActive}
	}
	return source.Result{Tournaments: ts, Origin: source.OriginLive}
}

func TestSortByEdge_StableOnTies(t *testing.T) {
	matches := []models.Match{
		match("a", 10, false, false),
		match("b", 30, false, false),
		match("c", 10, false, false),
		match("d", 30, false, false),
		match("e", 0, false, false),
	}

	SortByEdge(matches)

	want := []string{"b", "d", "a", "c", "e"}
	for i, m := range matches {
		if m.Tournament != want[i] {
			t.Fatalf("position %d = %s, want %s", i, m.Tournament, want[i])
		}
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 9, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		matches    []models.Match
		want       models.Stats
		tournament int
	}{
		{
			name:       "empty",
			tournament: 6,
			want:       models.Stats{TotalTournaments: 6},
		},
		{
			name: "zero edges are excluded from the average",
			matches: []models.Match{
				match("a", 40, true, true),
				match("b", 12.5, true, true),
				match("c", 0, false, false),
				match("d", 5, false, false),
			},
			tournament: 2,
			// (40 + 12.5 + 5) / 3 = 19.1666...
			want: models.Stats{TotalMatches: 4, TotalTournaments: 2, ChallengerMatches: 2, ValueBets: 2, AverageEdge: 19.2},
		},
		{
			name:       "only zero edges",
			matches:    []models.Match{match("a", 0, false, false), match("b", 0, true, false)},
			tournament: 1,
			want:       models.Stats{TotalMatches: 2, TotalTournaments: 1, ChallengerMatches: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.matches, tt.tournament, now)
			if got.LastUpdate == nil || !got.LastUpdate.Equal(now) {
				t.Fatalf("last update = %v, want %v", got.LastUpdate, now)
			}
			got.LastUpdate = nil
			if got != tt.want {
				t.Fatalf("stats = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRefresh_BuildsSnapshotAndNotifiesSinks(t *testing.T) {
	src := &fakeSource{result: liveResult(5)}
	gen := fakeGenerator{matches: []models.Match{
		match("low", 5, false, false),
		match("high", 35, true, true),
	}}
	ws := &fakeSink{name: "ws"}
	broken := &fakeSink{name: "kafka", err: errors.New("broker down")}

	agg := New(zap.NewNop(), src, gen, broken, ws)

	var refreshed, sinkErrors []string
	agg.OnRefresh = func(origin string, _ time.Duration, _ *models.Snapshot) { refreshed = append(refreshed, origin) }
	agg.OnSinkError = func(sink string) { sinkErrors = append(sinkErrors, sink) }

	if agg.Current() != nil {
		t.Fatalf("snapshot must be nil before the first refresh")
	}

	snap := agg.Refresh(context.Background())

	if snap.ID == "" || snap.Origin != "live" || snap.FallbackReason != "" {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}
	if snap.Matches[0].Tournament != "high" {
		t.Fatalf("matches must be sorted by edge, first = %s", snap.Matches[0].Tournament)
	}
	if snap.Stats.TotalTournaments != 5 || snap.Stats.ValueBets != 1 || snap.Stats.AverageEdge != 20 {
		t.Fatalf("stats = %+v", snap.Stats)
	}
	if agg.Current() != snap {
		t.Fatalf("Current must return the stored snapshot")
	}
	if len(ws.snaps) != 1 || ws.snaps[0] != snap {
		t.Fatalf("healthy sink must still receive the snapshot after another sink failed")
	}
	if len(sinkErrors) != 1 || sinkErrors[0] != "kafka" {
		t.Fatalf("sink errors = %v", sinkErrors)
	}
	if len(refreshed) != 1 || refreshed[0] != "live" {
		t.Fatalf("refresh hook = %v", refreshed)
	}
}

func TestRefresh_FallbackRecorded(t *testing.T) {
	src := &fakeSource{result: source.Result{
		Tournaments: source.Fallback(),
		Origin:      source.OriginFallback,
		Reason:      source.ReasonTooFew,
	}}
	agg := New(zap.NewNop(), src, fakeGenerator{})

	var reasons []string
	agg.OnFallback = func(reason string) { reasons = append(reasons, reason) }

	snap := agg.Refresh(context.Background())
	if snap.Origin != "fallback" || snap.FallbackReason != source.ReasonTooFew {
		t.Fatalf("origin=%q reason=%q", snap.Origin, snap.FallbackReason)
	}
	if snap.Stats.TotalTournaments != 6 || snap.Stats.TotalMatches != 0 {
		t.Fatalf("stats = %+v", snap.Stats)
	}
	if len(reasons) != 1 || reasons[0] != source.ReasonTooFew {
		t.Fatalf("fallback hook = %v", reasons)
	}
}

func TestEnsureLoaded_SingleRecomputeUnderConcurrency(t *testing.T) {
	src := &fakeSource{result: liveResult(5), delay: 50 * time.Millisecond}
	agg := New(zap.NewNop(), src, fakeGenerator{matches: []models.Match{match("a", 12, false, true)}})

	const readers = 16
	snaps := make([]*models.Snapshot, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i] = agg.EnsureLoaded(context.Background())
		}(i)
	}
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Fatalf("source fetched %d times, want 1", got)
	}
	for i, s := range snaps {
		if s == nil || s != snaps[0] {
			t.Fatalf("reader %d saw a different snapshot", i)
		}
	}
}

// página com n torneios ativos na coluna Challenger
func challengerPage(n int) string {
	var b strings.Builder
	b.WriteString(`<table id="current-events"><tbody><tr><td valign="top"></td><td valign="top"></td><td valign="top">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "<p><b>City%d Challenger</b> Favorite: Luciano Darderi, 30%%</p>", i)
	}
	b.WriteString(`</td></tr></tbody></table>`)
	return b.String()
}

func TestEnsureLoaded_IgnoresCallerCancellation(t *testing.T) {
	page := challengerPage(5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	src := source.NewTennisAbstract(srv.URL, 2*time.Second, zap.NewNop())
	sink := &fakeSink{name: "ws"}
	agg := New(zap.NewNop(), src, fakeGenerator{}, sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := agg.EnsureLoaded(ctx)
	if snap == nil || snap.Origin != "live" || snap.Stats.TotalTournaments != 5 {
		t.Fatalf("first load with a cancelled caller = %+v", snap)
	}
	if got := agg.EnsureLoaded(context.Background()); got != snap || got.FallbackReason != "" {
		t.Fatalf("cached snapshot = %+v", got)
	}
	if len(sink.snaps) != 1 {
		t.Fatalf("sink received %d snapshots, want 1", len(sink.snaps))
	}
}

func TestRefresh_CancelledKeepsCurrent(t *testing.T) {
	src := &fakeSource{result: liveResult(5)}
	sink := &fakeSink{name: "redis"}
	agg := New(zap.NewNop(), src, fakeGenerator{}, sink)

	var refreshes int
	agg.OnRefresh = func(string, time.Duration, *models.Snapshot) { refreshes++ }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if snap := agg.Refresh(ctx); snap != nil || agg.Current() != nil {
		t.Fatalf("cancelled refresh stored a snapshot: %+v", snap)
	}

	first := agg.Refresh(context.Background())
	if got := agg.Refresh(ctx); got != first || agg.Current() != first {
		t.Fatalf("cancelled refresh must keep the previous snapshot")
	}
	if len(sink.snaps) != 1 || refreshes != 1 {
		t.Fatalf("sink snapshots=%d refreshes=%d, want 1 and 1", len(sink.snaps), refreshes)
	}
}

func TestEnsureLoaded_ReusesExisting(t *testing.T) {
	src := &fakeSource{result: liveResult(5)}
	agg := New(zap.NewNop(), src, fakeGenerator{})

	first := agg.Refresh(context.Background())
	if got := agg.EnsureLoaded(context.Background()); got != first {
		t.Fatalf("EnsureLoaded recomputed with a snapshot already cached")
	}
	if src.calls.Load() != 1 {
		t.Fatalf("source fetched %d times, want 1", src.calls.Load())
	}
}

func TestRefresh_ReadersKeepOldSnapshot(t *testing.T) {
	src := &fakeSource{result: liveResult(5)}
	agg := New(zap.NewNop(), src, fakeGenerator{matches: []models.Match{match("a", 15, false, true)}})

	old := agg.Refresh(context.Background())
	oldID := old.ID

	next := agg.Refresh(context.Background())
	if next == old || next.ID == oldID {
		t.Fatalf("refresh must replace the snapshot wholesale")
	}
	if old.ID != oldID || len(old.Matches) != 1 {
		t.Fatalf("previous snapshot was mutated")
	}
}

func TestScheduler_InitialRefreshAndStop(t *testing.T) {
	src := &fakeSource{result: liveResult(5)}
	agg := New(zap.NewNop(), src, fakeGenerator{})

	s := NewScheduler(agg, time.Hour, zap.NewNop())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for agg.Current() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	s.Stop()

	if agg.Current() == nil {
		t.Fatalf("scheduler did not run the initial refresh")
	}
	if got := src.calls.Load(); got != 1 {
		t.Fatalf("source fetched %d times, want 1", got)
	}
}

func TestScheduler_InvalidInterval(t *testing.T) {
	s := NewScheduler(New(zap.NewNop(), &fakeSource{}, fakeGenerator{}), 0, zap.NewNop())
	if err := s.Start(context.Background()); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}
