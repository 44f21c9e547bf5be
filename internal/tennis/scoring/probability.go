package scoring

import (
	"fmt"
	"math"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

const (
	minProbability = 0.1
	maxProbability = 0.9
	maxConfidence  = 0.95

	clayAdjustment  = 0.10
	grassAdjustment = 0.15
	ageAdjustment   = 0.05

	peakAgeMin = 24
	peakAgeMax = 28
)

// Probability é a chance de vitória de cada lado; Player1 + Player2 == 1
type Probability struct {
	Player1    float64
	Player2    float64
	Confidence float64
}

// Neutral é usado quando o cálculo não é possível
var Neutral = Probability{Player1: 0.5, Player2: 0.5, Confidence: 0.5}

// WinProbability estima a chance de p1 vencer p2 no torneio t.
// Base Elo pelo ranking, ajuste de piso (saibro/grama) e de idade de pico.
// Em caso de erro retorna Neutral junto com o erro, para o chamador logar e seguir.
func WinProbability(p1, p2 models.Player, t models.Tournament) (Probability, error) {
	if p1.Rank <= 0 || p2.Rank <= 0 {
		return Neutral, fmt.Errorf("invalid ranks %d/%d for %s vs %s", p1.Rank, p2.Rank, p1.Name, p2.Name)
	}

	rankDiff := float64(p2.Rank - p1.Rank)
	expected := 1 / (1 + math.Pow(10, rankDiff/400))

	prob := expected + surfaceAdjustment(p1, p2, t.Surface) + ageAdjustmentFor(p1.Age, p2.Age)
	if math.IsNaN(prob) || math.IsInf(prob, 0) {
		return Neutral, fmt.Errorf("non-finite probability for %s vs %s", p1.Name, p2.Name)
	}

	prob = math.Max(minProbability, math.Min(maxProbability, prob))

	return Probability{
		Player1:    prob,
		Player2:    1 - prob,
		Confidence: math.Min(maxConfidence, math.Abs(prob-0.5)+0.2),
	}, nil
}

// piso duro não ajusta
func surfaceAdjustment(p1, p2 models.Player, surface models.Surface) float64 {
	var step float64
	switch surface {
	case models.SurfaceClay:
		step = clayAdjustment
	case models.SurfaceGrass:
		step = grassAdjustment
	default:
		return 0
	}

	adj := 0.0
	if p1.SurfacePreference == surface {
		adj += step
	}
	if p2.SurfacePreference == surface {
		adj -= step
	}
	return adj
}

// só conta quando apenas um dos dois está na faixa de pico
func ageAdjustmentFor(age1, age2 int) float64 {
	peak1 := inPeak(age1)
	peak2 := inPeak(age2)
	switch {
	case peak1 && !peak2:
		return ageAdjustment
	case peak2 && !peak1:
		return -ageAdjustment
	}
	return 0
}

func inPeak(age int) bool { return age >= peakAgeMin && age <= peakAgeMax }
