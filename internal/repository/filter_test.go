package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates_Empty(t *testing.T) {
	p := OfferingFilter{}.predicates()
	assert.Empty(t, p.clause())
	assert.Empty(t, p.arguments())
}

func TestPredicates_Placeholders(t *testing.T) {
	catID := uuid.New()
	skillID := uuid.New()

	p := OfferingFilter{CategoryID: catID, SkillID: skillID, Mode: "remote"}.predicates()
	assert.Equal(t, " AND c.id = $1 AND s.id = $2 AND o.mode = $3", p.clause())
	require.Len(t, p.arguments(), 3)
	assert.Equal(t, catID, p.arguments()[0])
	assert.Equal(t, skillID, p.arguments()[1])
	assert.Equal(t, "remote", p.arguments()[2])
}

func TestPredicates_ValuesNeverInSQL(t *testing.T) {
	// A hostile filter value must stay in the argument list; the clause text
	// only ever contains fixed column names and placeholders.
	p := RequestFilter{Urgency: "high'; DROP TABLE skill_requests; --"}.predicates()
	assert.Equal(t, " AND r.urgency = $1", p.clause())
	require.Len(t, p.arguments(), 1)
}

func TestRequestFilter_SkipsBlankUrgency(t *testing.T) {
	p := RequestFilter{Urgency: "   "}.predicates()
	assert.Empty(t, p.clause())
}
