package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModerator_Censor_PlainWord(t *testing.T) {
	req := require.New(t)
	m, err := NewModerator([]string{"budget"}, '*')
	req.NoError(err)

	censored, found := m.Censor("we blew the budget again")

	req.Equal("we blew the ****** again", censored)
	req.Equal([]string{"budget"}, found)
}

func TestModerator_Censor_LeetSpeakVariant(t *testing.T) {
	req := require.New(t)
	m, err := NewModerator([]string{"budget"}, '*')
	req.NoError(err)

	censored, found := m.Censor("the budg3t is fine")

	req.Equal("the ****** is fine", censored)
	req.Len(found, 1)
}

func TestModerator_Censor_NoMatchReturnsOriginal(t *testing.T) {
	req := require.New(t)
	m, err := NewModerator([]string{"budget"}, '*')
	req.NoError(err)

	censored, found := m.Censor("all good here")

	req.Equal("all good here", censored)
	req.Empty(found)
}

func TestModerator_Censor_PreservesSpacingAroundNoise(t *testing.T) {
	req := require.New(t)
	m, err := NewModerator([]string{"secret"}, '#')
	req.NoError(err)

	censored, _ := m.Censor("that is s.e.c.r.e.t material")

	req.NotContains(censored, "secret")
	req.Contains(censored, "material")
}
