package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScore(t *testing.T) {
	for score := MinRatingScore; score <= MaxRatingScore; score++ {
		assert.NoError(t, ValidateScore(score))
	}

	assert.ErrorIs(t, ValidateScore(0), ErrInvalidRating)
	assert.ErrorIs(t, ValidateScore(6), ErrInvalidRating)
	assert.ErrorIs(t, ValidateScore(-1), ErrInvalidRating)
}

func TestRecomputeRating(t *testing.T) {
	t.Run("empty set resets aggregate", func(t *testing.T) {
		aggregate := RecomputeRating(nil)
		assert.Equal(t, 0.0, aggregate.Average)
		assert.Equal(t, 0, aggregate.Count)
	})

	t.Run("single rating", func(t *testing.T) {
		aggregate := RecomputeRating([]*Rating{{Score: 4}})
		assert.Equal(t, 4.0, aggregate.Average)
		assert.Equal(t, 1, aggregate.Count)
	})

	t.Run("average over full set", func(t *testing.T) {
		aggregate := RecomputeRating([]*Rating{
			{Score: 5},
			{Score: 4},
			{Score: 2},
		})
		assert.InDelta(t, 3.6667, aggregate.Average, 0.001)
		assert.Equal(t, 3, aggregate.Count)
	})
}
