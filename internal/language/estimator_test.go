package language

import (
	"math"
	"reflect"
	"testing"

	"github.com/sentimenhq/sentimen/internal/models"
)

func TestEstimateMixSumsToOne(t *testing.T) {
	e := NewEstimator()

	inputs := []string{
		"",
		"pemerintah sudah bekerja dengan baik",
		"the economy is still struggling",
		"kinerja mereka overall bagus but masih banyak issues",
		"zzz qqq xxx",
	}

	for _, in := range inputs {
		mix := e.EstimateMix(in)

		var sum float64
		for key, v := range mix {
			if v < 0 {
				t.Errorf("EstimateMix(%q): negative fraction for %s: %v", in, key, v)
			}
			sum += v
		}
		if math.Abs(sum-1.0) > models.ScoreSumTolerance {
			t.Errorf("EstimateMix(%q): fractions sum to %v, want 1.0", in, sum)
		}
	}
}

func TestEstimateMixDeterministic(t *testing.T) {
	e := NewEstimator()
	input := "Setahun sudah tapi economy masih struggling dan very disappointing"

	first := e.EstimateMix(input)
	for i := 0; i < 10; i++ {
		again := e.EstimateMix(input)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("EstimateMix not deterministic: %v != %v", first, again)
		}
	}
}

func TestEstimateMixBuckets(t *testing.T) {
	e := NewEstimator()

	t.Run("empty text is fully mixed", func(t *testing.T) {
		mix := e.EstimateMix("")
		if mix[KeyMixed] != 1 || mix[KeyIndonesian] != 0 || mix[KeyEnglish] != 0 {
			t.Errorf("empty text breakdown = %v", mix)
		}
	})

	t.Run("indonesian dominant", func(t *testing.T) {
		mix := e.EstimateMix("pemerintah sudah melakukan kebijakan yang baik untuk rakyat")
		if mix[KeyIndonesian] <= mix[KeyEnglish] || mix[KeyIndonesian] <= mix[KeyMixed] {
			t.Errorf("expected indonesian-dominant breakdown, got %v", mix)
		}
	})

	t.Run("english dominant", func(t *testing.T) {
		mix := e.EstimateMix("the government has made very good progress this year")
		if mix[KeyEnglish] <= mix[KeyIndonesian] {
			t.Errorf("expected english-dominant breakdown, got %v", mix)
		}
	})

	t.Run("unknown tokens are mixed", func(t *testing.T) {
		mix := e.EstimateMix("zzz qqq")
		if mix[KeyMixed] != 1 {
			t.Errorf("unknown-token breakdown = %v", mix)
		}
	})
}
