package domain_test

import (
	"testing"

	"hireable-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestExperienceBracket(t *testing.T) {
	t.Run("Closed brackets are inclusive on both ends", func(t *testing.T) {
		assert.True(t, domain.Experience4to8.Contains(4))
		assert.True(t, domain.Experience4to8.Contains(8))
		assert.False(t, domain.Experience4to8.Contains(9))
		assert.False(t, domain.Experience0to3.Contains(-1))
	})

	t.Run("Open top bracket has no upper bound", func(t *testing.T) {
		min, max := domain.Experience13Plus.Bounds()
		assert.Equal(t, 13, min)
		assert.Less(t, max, 0)
		assert.True(t, domain.Experience13Plus.Contains(40))
		assert.False(t, domain.Experience13Plus.Contains(12))
	})

	t.Run("Parse rejects unknown brackets", func(t *testing.T) {
		b, err := domain.ParseExperienceBracket(" 8-12 ")
		assert.NoError(t, err)
		assert.Equal(t, domain.Experience8to12, b)

		_, err = domain.ParseExperienceBracket("5-10")
		assert.Error(t, err)
	})
}

func TestListingProjectionDropsContactFields(t *testing.T) {
	c := &domain.Candidate{ID: "c1", FullName: "Sara Ali", Email: "sara@example.com", Phone: "+971501234567"}
	l := c.Listing()
	assert.Equal(t, "c1", l.ID)
	assert.Equal(t, "Sara Ali", l.FullName)
}
