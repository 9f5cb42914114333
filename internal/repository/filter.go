package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// predicates accumulates parameterized WHERE conditions. Column names are
// fixed by the callers; user input only ever travels through the argument
// slice, never into the SQL text.
type predicates struct {
	exprs []string
	args  []any
}

func (p *predicates) equal(column string, value any) {
	p.args = append(p.args, value)
	p.exprs = append(p.exprs, fmt.Sprintf("%s = $%d", column, len(p.args)))
}

// clause returns the conditions joined with AND, prefixed so it can be
// appended after an existing WHERE condition. Empty when no predicates.
func (p *predicates) clause() string {
	if len(p.exprs) == 0 {
		return ""
	}
	return " AND " + strings.Join(p.exprs, " AND ")
}

func (p *predicates) arguments() []any {
	return p.args
}

// OfferingFilter narrows the public offering listing. Zero values mean
// "no constraint".
type OfferingFilter struct {
	CategoryID uuid.UUID
	SkillID    uuid.UUID
	Mode       string
}

func (f OfferingFilter) predicates() *predicates {
	p := &predicates{}
	if f.CategoryID != uuid.Nil {
		p.equal("c.id", f.CategoryID)
	}
	if f.SkillID != uuid.Nil {
		p.equal("s.id", f.SkillID)
	}
	if m := strings.TrimSpace(f.Mode); m != "" {
		p.equal("o.mode", m)
	}
	return p
}

// RequestFilter narrows the public request listing.
type RequestFilter struct {
	CategoryID uuid.UUID
	SkillID    uuid.UUID
	Urgency    string
}

func (f RequestFilter) predicates() *predicates {
	p := &predicates{}
	if f.CategoryID != uuid.Nil {
		p.equal("c.id", f.CategoryID)
	}
	if f.SkillID != uuid.Nil {
		p.equal("s.id", f.SkillID)
	}
	if u := strings.TrimSpace(f.Urgency); u != "" {
		p.equal("r.urgency", u)
	}
	return p
}
