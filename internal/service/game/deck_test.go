package game

import (
	"bingoo_backend/internal/config"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func testVariant() config.GameVariant {
	return config.GameVariant{
		Name:            "classic9",
		GridSize:        9,
		MinBet:          5,
		MaxPrize:        100,
		MaxFlips:        3,
		MinWinningSlots: 1,
		MaxWinningSlots: 3,
	}
}

func TestGenerateBoard(t *testing.T) {
	variant := testVariant()

	t.Run("board structure", func(t *testing.T) {
		board := GenerateBoard(variant, PrizePolicy{PrizeValues: []int{40, 25}})

		if len(board) != variant.GridSize {
			t.Fatalf("expected %d cards, got %d", variant.GridSize, len(board))
		}

		prizeCount := 0
		prizeTotal := 0
		for i, c := range board {
			if c.Index != i {
				t.Errorf("card at position %d has index %d", i, c.Index)
			}
			if c.Revealed {
				t.Errorf("card %d is revealed on a fresh board", i)
			}
			if c.IsPrize {
				prizeCount++
				prizeTotal += c.Prize
			} else if c.Prize != 0 {
				t.Errorf("non-prize card %d carries prize %d", i, c.Prize)
			}
		}

		if prizeCount != 2 {
			t.Errorf("expected 2 prize cards, got %d", prizeCount)
		}
		if prizeTotal != 65 {
			t.Errorf("expected aggregate prize 65, got %d", prizeTotal)
		}
	})

	t.Run("winning count clamped to grid size", func(t *testing.T) {
		prizes := make([]int, variant.GridSize+5)
		for i := range prizes {
			prizes[i] = 1
		}

		board := GenerateBoard(variant, PrizePolicy{PrizeValues: prizes})

		prizeCount := 0
		for _, c := range board {
			if c.IsPrize {
				prizeCount++
			}
		}
		// Никогда не делаем все карты призовыми
		if prizeCount != variant.GridSize-1 {
			t.Errorf("expected clamp to %d prize cards, got %d", variant.GridSize-1, prizeCount)
		}
	})
}

// Проверка равномерности: позиция единственной призовой карты за много
// прогонов должна распределяться по полю без позиционного смещения
func TestGenerateBoardShuffleFairness(t *testing.T) {
	variant := testVariant()

	const trials = 20000
	counts := make([]float64, variant.GridSize)

	for i := 0; i < trials; i++ {
		board := GenerateBoard(variant, PrizePolicy{PrizeValues: []int{50}})
		for _, c := range board {
			if c.IsPrize {
				counts[c.Index]++
			}
		}
	}

	// Хи-квадрат против равномерного распределения
	expected := float64(trials) / float64(variant.GridSize)
	chi2 := 0.0
	for _, observed := range counts {
		d := observed - expected
		chi2 += d * d / expected
	}

	critical := distuv.ChiSquared{K: float64(variant.GridSize - 1)}.Quantile(0.9999)
	if chi2 > critical {
		t.Errorf("prize positions are not uniform: chi2=%.2f, critical=%.2f, counts=%v",
			chi2, critical, counts)
	}
}
