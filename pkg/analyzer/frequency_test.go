package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instascan/pkg/models"
)

func TestCounterTopOrdersByCount(t *testing.T) {
	c := NewCounter()
	for _, token := range []string{"sunset", "travel", "sunset", "food", "sunset", "travel"} {
		c.Add(token)
	}

	top := c.Top(10)
	require.Equal(t, []models.TokenCount{
		{Token: "sunset", Count: 3},
		{Token: "travel", Count: 2},
		{Token: "food", Count: 1},
	}, top)
}

func TestCounterTiesKeepFirstSeenOrder(t *testing.T) {
	c := NewCounter()
	for _, token := range []string{"beta", "alpha", "beta", "alpha", "zeta"} {
		c.Add(token)
	}

	top := c.Top(10)
	require.Len(t, top, 3)
	assert.Equal(t, "beta", top[0].Token)
	assert.Equal(t, "alpha", top[1].Token)
	assert.Equal(t, "zeta", top[2].Token)
}

func TestCounterTopTruncates(t *testing.T) {
	c := NewCounter()
	for _, token := range []string{"a", "b", "c", "d"} {
		c.Add(token)
	}

	assert.Len(t, c.Top(2), 2)
	assert.Len(t, c.Top(0), 0)
	assert.Equal(t, 4, c.Len())
}
