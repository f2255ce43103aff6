package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dwkim-dev/cryptobrief/internal/models"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		kind  models.Kind
		value float64
		want  Tier
	}{
		{"ma120 at +5 is green", models.KindMA120Distance, 5.0, TierGreen},
		{"ma120 above +5 is green", models.KindMA120Distance, 12.3, TierGreen},
		{"ma120 just below +5 is yellow", models.KindMA120Distance, 4.999, TierYellow},
		{"ma120 at -5 is yellow", models.KindMA120Distance, -5.0, TierYellow},
		{"ma120 just below -5 is red", models.KindMA120Distance, -5.0001, TierRed},
		{"ma120 deep drawdown is red", models.KindMA120Distance, -22.0, TierRed},

		{"52w high at -15 is green", models.KindHigh52wDistance, -15.0, TierGreen},
		{"52w high at zero is green", models.KindHigh52wDistance, 0.0, TierGreen},
		{"52w high just below -15 is yellow", models.KindHigh52wDistance, -15.01, TierYellow},
		{"52w high at -40 is yellow", models.KindHigh52wDistance, -40.0, TierYellow},
		{"52w high below -40 is red", models.KindHigh52wDistance, -40.01, TierRed},

		{"52w low at +100 is green", models.KindLow52wDistance, 100.0, TierGreen},
		{"52w low just below +100 is yellow", models.KindLow52wDistance, 99.9, TierYellow},
		{"52w low at +30 is yellow", models.KindLow52wDistance, 30.0, TierYellow},
		{"52w low below +30 is red", models.KindLow52wDistance, 29.9, TierRed},

		{"sentiment at 25 is green", models.KindSentiment, 25, TierGreen},
		{"sentiment at 26 is yellow", models.KindSentiment, 26, TierYellow},
		{"sentiment at 74 is yellow", models.KindSentiment, 74, TierYellow},
		{"sentiment at 75 is red", models.KindSentiment, 75, TierRed},
		{"sentiment at zero is green", models.KindSentiment, 0, TierGreen},
		{"sentiment at 100 is red", models.KindSentiment, 100, TierRed},

		{"premium at -1 is green", models.KindPremium, -1.0, TierGreen},
		{"premium at +2 is green", models.KindPremium, 2.0, TierGreen},
		{"premium just below -1 is yellow", models.KindPremium, -1.01, TierYellow},
		{"premium just above +2 is yellow", models.KindPremium, 2.01, TierYellow},
		{"premium at -3 is yellow", models.KindPremium, -3.0, TierYellow},
		{"premium at +5 is yellow", models.KindPremium, 5.0, TierYellow},
		{"premium above +5 is red", models.KindPremium, 5.01, TierRed},
		{"premium below -3 is red", models.KindPremium, -3.5, TierRed},

		{"funding at +0.03 is green", models.KindFunding, 0.03, TierGreen},
		{"funding at -0.01 is green", models.KindFunding, -0.01, TierGreen},
		{"funding at +0.08 is yellow", models.KindFunding, 0.08, TierYellow},
		{"funding at -0.03 is yellow", models.KindFunding, -0.03, TierYellow},
		{"funding above +0.08 is red", models.KindFunding, 0.09, TierRed},
		{"funding below -0.03 is red", models.KindFunding, -0.04, TierRed},

		{"dominance at 50 is green", models.KindDominance, 50.0, TierGreen},
		{"dominance at 60 is green", models.KindDominance, 60.0, TierGreen},
		{"dominance at 45 is yellow", models.KindDominance, 45.0, TierYellow},
		{"dominance at 65 is yellow", models.KindDominance, 65.0, TierYellow},
		{"dominance below 45 is red", models.KindDominance, 44.9, TierRed},
		{"dominance above 65 is red", models.KindDominance, 65.1, TierRed},

		{"m2 at 5 is yellow", models.KindM2Growth, 5.0, TierYellow},
		{"m2 just above 5 is green", models.KindM2Growth, 5.01, TierGreen},
		{"m2 at zero is yellow", models.KindM2Growth, 0.0, TierYellow},
		{"m2 negative is red", models.KindM2Growth, -0.1, TierRed},

		{"stablecoin at 200 is yellow", models.KindStablecoinFloat, 200.0, TierYellow},
		{"stablecoin above 200 is green", models.KindStablecoinFloat, 200.5, TierGreen},
		{"stablecoin at 150 is yellow", models.KindStablecoinFloat, 150.0, TierYellow},
		{"stablecoin below 150 is red", models.KindStablecoinFloat, 149.0, TierRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.kind, models.Some(tt.value)))
		})
	}
}

func TestClassifyAbsentIsUnknown(t *testing.T) {
	kinds := []models.Kind{
		models.KindMA120Distance,
		models.KindHigh52wDistance,
		models.KindLow52wDistance,
		models.KindSentiment,
		models.KindPremium,
		models.KindFunding,
		models.KindDominance,
		models.KindM2Growth,
		models.KindStablecoinFloat,
	}
	for _, kind := range kinds {
		assert.Equal(t, TierUnknown, Classify(kind, models.None()), "kind %s", kind)
	}
}

func TestClassifyUnknownKind(t *testing.T) {
	assert.Equal(t, TierUnknown, Classify(models.Kind("bogus"), models.Some(1.0)))
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, TierYellow, Classify(models.KindSentiment, models.Some(25.5)))
	}
}

func TestTierStrings(t *testing.T) {
	assert.Equal(t, "GREEN", TierGreen.String())
	assert.Equal(t, "YELLOW", TierYellow.String())
	assert.Equal(t, "RED", TierRed.String())
	assert.Equal(t, "UNKNOWN", TierUnknown.String())
}
