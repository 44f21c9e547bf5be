package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

const currentEventsHTML = `<html><body>
<table id="current-events"><tbody><tr>
<td valign="top">
  <p><b>WTA Montreux 125</b><br>Favorite: Anca Alexia Todoni, 21.3%</p>
  <p><b>WTA Beijing</b><br>Favorite: Iga Swiatek, 30.5%</p>
  <!-- <p><b>Hidden Open</b> Favorite: Nobody, 1%</p> -->
</td>
<td valign="top">
  <p><b>Shanghai Masters</b> Favorite: Jannik Sinner, 35%</p>
  <p><b>US Open</b> Favorite: Carlos Alcaraz, 40%</p>
  <p><b>Almaty</b> (completed)</p>
</td>
<td valign="top">
  <p><b>Genoa Challenger</b> Favorite: Luciano Darderi, 58.8%</p>
  <p><b>Antwerp Challenger</b> Favorite: Alex Molcan, 12%</p>
  <p><b>Lawn Challenger</b> Favorite: Daniel Evans, 23.9%</p>
</td>
</tr></tbody></table>
</body></html>`

const fewEventsHTML = `<table id="current-events"><tbody><tr>
<td valign="top"><p><b>WTA Beijing</b> Favorite: Iga Swiatek, 30.5%</p></td>
<td valign="top"><p><b>Shanghai Masters</b> Favorite: Jannik Sinner, 35%</p></td>
<td valign="top"></td>
</tr></tbody></table>`

func TestParseCurrentEvents(t *testing.T) {
	got, err := ParseCurrentEvents(strings.NewReader(currentEventsHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Tournament{
		{Name: "WTA Montreux 125", Level: models.LevelWTA125, Surface: models.SurfaceHard, Location: "Montreux", Section: models.SectionWomen, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Anca Alexia Todoni", Probability: 21.3}},
		{Name: "WTA Beijing", Level: models.LevelWTA, Surface: models.SurfaceHard, Location: "Beijing", Section: models.SectionWomen, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Iga Swiatek", Probability: 30.5}},
		{Name: "Shanghai Masters", Level: models.LevelATP, Surface: models.SurfaceHard, Location: "Shanghai Masters", Section: models.SectionMen, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Jannik Sinner", Probability: 35}},
		{Name: "Genoa Challenger", Level: models.LevelATPChallenger, Surface: models.SurfaceHard, Location: "Genoa", Section: models.SectionChallenger, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Luciano Darderi", Probability: 58.8}},
		{Name: "Antwerp Challenger", Level: models.LevelATPChallenger, Surface: models.SurfaceClay, Location: "Antwerp", Section: models.SectionChallenger, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Alex Molcan", Probability: 12}},
		{Name: "Lawn Challenger", Level: models.LevelATPChallenger, Surface: models.SurfaceGrass, Location: "Lawn", Section: models.SectionChallenger, Status: models.StatusActive, Favorite: &models.Favorite{Player: "Daniel Evans", Probability: 23.9}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tournaments mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestParseCurrentEvents_MissingTable(t *testing.T) {
	_, err := ParseCurrentEvents(strings.NewReader(`<html><body><p>maintenance</p></body></html>`))
	if !errors.Is(err, ErrMarkupMissing) {
		t.Fatalf("err = %v, want ErrMarkupMissing", err)
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name     string
		level    models.Level
		surface  models.Surface
		location string
	}{
		{"Istanbul Challenger", models.LevelATPChallenger, models.SurfaceHard, "Istanbul"},
		{"WTA Guadalajara 125", models.LevelWTA125, models.SurfaceHard, "Guadalajara"},
		{"WTA Wuhan", models.LevelWTA, models.SurfaceHard, "Wuhan"},
		{"Clay Court Classic", models.LevelATP, models.SurfaceClay, "Clay Court Classic"},
		{"Terre Battue Open", models.LevelATP, models.SurfaceClay, "Terre Battue Open"},
		{"Grass Court Open", models.LevelATP, models.SurfaceGrass, "Grass Court Open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFromName(tt.name); got != tt.level {
				t.Errorf("level = %q, want %q", got, tt.level)
			}
			if got := SurfaceFromName(tt.name); got != tt.surface {
				t.Errorf("surface = %q, want %q", got, tt.surface)
			}
			if got := LocationFromName(tt.name); got != tt.location {
				t.Errorf("location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestParseFavorite(t *testing.T) {
	fav := ParseFavorite("Genoa Challenger Favorite: Luciano Darderi, 58.8% (draw)")
	if fav == nil || fav.Player != "Luciano Darderi" || fav.Probability != 58.8 {
		t.Fatalf("favorite = %+v", fav)
	}
	if ParseFavorite("Favorite: TBD") != nil {
		t.Fatalf("expected nil favorite without percentage")
	}
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantOrigin Origin
		wantReason string
		wantCount  int
	}{
		{"live page", http.StatusOK, currentEventsHTML, OriginLive, "", 6},
		{"server error", http.StatusInternalServerError, "boom", OriginFallback, ReasonStatus, len(Fallback())},
		{"missing table", http.StatusOK, "<html><body></body></html>", OriginFallback, ReasonMarkup, len(Fallback())},
		{"too few tournaments", http.StatusOK, fewEventsHTML, OriginFallback, ReasonTooFew, len(Fallback())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uaCh := make(chan string, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case uaCh <- r.Header.Get("User-Agent"):
				default:
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			src := NewTennisAbstract(srv.URL, 2*time.Second, zap.NewNop())
			res := src.Fetch(context.Background())

			if res.Origin != tt.wantOrigin {
				t.Errorf("origin = %q, want %q (err=%v)", res.Origin, tt.wantOrigin, res.Err)
			}
			if res.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", res.Reason, tt.wantReason)
			}
			if len(res.Tournaments) != tt.wantCount {
				t.Errorf("tournaments = %d, want %d", len(res.Tournaments), tt.wantCount)
			}
			if res.UsedFallback() && !reflect.DeepEqual(res.Tournaments, Fallback()) {
				t.Errorf("fallback result must be the fixed list")
			}
			if gotUA := <-uaCh; !strings.HasPrefix(gotUA, "Mozilla/5.0") {
				t.Errorf("user agent = %q", gotUA)
			}
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewTennisAbstract(url, time.Second, zap.NewNop()).Fetch(context.Background())
	if !res.UsedFallback() || res.Reason != ReasonRequest {
		t.Fatalf("origin=%q reason=%q, want fallback/request", res.Origin, res.Reason)
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	res := NewTennisAbstract(srv.URL, 50*time.Millisecond, zap.NewNop()).Fetch(context.Background())
	if !res.UsedFallback() {
		t.Fatalf("expected fallback on timeout, got %q", res.Origin)
	}
}

func TestFetch_BodyTimeoutIsRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<table id="current-events"><tbody>`))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	res := NewTennisAbstract(srv.URL, 100*time.Millisecond, zap.NewNop()).Fetch(context.Background())
	if !res.UsedFallback() || res.Reason != ReasonRequest {
		t.Fatalf("origin=%q reason=%q err=%v, want fallback/request", res.Origin, res.Reason, res.Err)
	}
}

func TestParseCurrentEvents_ReaderError(t *testing.T) {
	_, err := ParseCurrentEvents(iotest.ErrReader(errors.New("broken stream")))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestReasonFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&StatusError{Code: 503}, ReasonStatus},
		{fmt.Errorf("wrap: %w", ErrTooFew), ReasonTooFew},
		{fmt.Errorf("%w: tbody", ErrMarkupMissing), ReasonMarkup},
		{fmt.Errorf("%w: unexpected EOF", ErrParse), ReasonParse},
		{errors.New("parse html lookalike from a transport error"), ReasonRequest},
		{context.DeadlineExceeded, ReasonRequest},
	}
	for _, tt := range tests {
		if got := reasonFor(tt.err); got != tt.want {
			t.Errorf("reasonFor(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestFallback_FreshCopy(t *testing.T) {
	a := Fallback()
	a[0].Name = "changed"
	a[0].Favorite.Player = "changed"

	b := Fallback()
	if b[0].Name != "Istanbul Challenger" || b[0].Favorite.Player != "Alex Molcan" {
		t.Fatalf("fallback list was mutated through a previous copy")
	}
	if len(b) != 6 {
		t.Fatalf("fallback size = %d, want 6", len(b))
	}
}
