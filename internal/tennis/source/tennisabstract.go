package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

// Origin indica de onde vieram os torneios de um Result
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Motivos de fallback, usados em log e como label de métrica
const (
	ReasonRequest = "request"
	ReasonStatus  = "status"
	ReasonMarkup  = "markup"
	ReasonParse   = "parse"
	ReasonTooFew  = "too_few"
)

// MinActiveTournaments é o mínimo de torneios ativos para aceitar os dados da página
const MinActiveTournaments = 5

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

var (
	ErrMarkupMissing = errors.New("current-events markup not found")
	ErrTooFew        = errors.New("too few active tournaments")
	ErrParse         = errors.New("parse html")
)

// StatusError é retornado quando a página responde fora de 2xx
type StatusError struct{ Code int }

func (e *StatusError) Error() string { return fmt.Sprintf("unexpected status %d", e.Code) }

// Result é o retorno do Fetch: nunca vazio, sempre diz se é dado ao vivo ou a lista fixa
type Result struct {
	Tournaments []models.Tournament
	Origin      Origin
	Reason      string // vazio quando Origin == live
	Err         error  // causa do fallback
}

func (r Result) UsedFallback() bool { return r.Origin == OriginFallback }

// seções da tabela, na ordem das colunas
var sections = []string{models.SectionWomen, models.SectionMen, models.SectionChallenger}

// TennisAbstract busca os torneios em andamento na home do Tennis Abstract
type TennisAbstract struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewTennisAbstract(baseURL string, timeout time.Duration, log *zap.Logger) *TennisAbstract {
	return &TennisAbstract{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Fetch nunca falha: qualquer erro de rede, status, markup ou poucos torneios vira fallback
func (s *TennisAbstract) Fetch(ctx context.Context) Result {
	tournaments, err := s.fetchLive(ctx)
	if err == nil && len(tournaments) < MinActiveTournaments {
		err = fmt.Errorf("%w: found %d, need %d", ErrTooFew, len(tournaments), MinActiveTournaments)
	}
	if err != nil {
		reason := reasonFor(err)
		s.log.Warn("tournament fetch degraded to fallback",
			zap.String("url", s.baseURL),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return Result{Tournaments: Fallback(), Origin: OriginFallback, Reason: reason, Err: err}
	}

	s.log.Info("found live tournaments", zap.Int("count", len(tournaments)))
	return Result{Tournaments: tournaments, Origin: OriginLive}
}

func (s *TennisAbstract) fetchLive(ctx context.Context) ([]models.Tournament, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.baseURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		// drena o body para reaproveitar a conexão
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &StatusError{Code: res.StatusCode}
	}

	// body lido por inteiro aqui: timeout ou conexão cortada contam como falha de request
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return ParseCurrentEvents(bytes.NewReader(body))
}

// ParseCurrentEvents lê a tabela "current-events" e devolve só os torneios ativos
// (os que têm linha "Favorite:"). As colunas são Women's, Men's e Challenger Tour.
func ParseCurrentEvents(r io.Reader) ([]models.Tournament, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	table := doc.Find("table#current-events").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: table#current-events", ErrMarkupMissing)
	}
	tbody := table.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, fmt.Errorf("%w: tbody", ErrMarkupMissing)
	}

	var out []models.Tournament
	tbody.Find(`td[valign="top"]`).EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if i >= len(sections) {
			return false
		}
		out = append(out, parseCell(cell, sections[i])...)
		return true
	})
	return out, nil
}

// cada <b> da célula é um nome de torneio; comentários HTML não entram no texto
func parseCell(cell *goquery.Selection, section string) []models.Tournament {
	var out []models.Tournament
	cell.Find("b").Each(func(_ int, b *goquery.Selection) {
		name := strings.TrimSpace(b.Text())
		if name == "" {
			return
		}
		if _, slam := grandSlams[name]; slam {
			return
		}

		parent := b.Parent()
		if parent.Length() == 0 {
			return
		}
		text := parent.Text()
		if !strings.Contains(text, "Favorite:") {
			return
		}

		out = append(out, models.Tournament{
			Name:     name,
			Level:    LevelFromName(name),
			Surface:  SurfaceFromName(name),
			Location: LocationFromName(name),
			Section:  section,
			Favorite: ParseFavorite(text),
			Status:   models.StatusActive,
		})
	})
	return out
}

func reasonFor(err error) string {
	var se *StatusError
	switch {
	case errors.As(err, &se):
		return ReasonStatus
	case errors.Is(err, ErrTooFew):
		return ReasonTooFew
	case errors.Is(err, ErrMarkupMissing):
		return ReasonMarkup
	case errors.Is(err, ErrParse):
		return ReasonParse
	default:
		return ReasonRequest
	}
}
