package query

import (
	"maps"
	"strings"

	"cloud.google.com/go/spanner"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// orderTerm is one ORDER BY key. Expressions such as SCORE(...) may carry
// their own named parameters, which are dropped together with the term.
type orderTerm struct {
	expr   string
	dir    Direction
	params map[string]any
}

// Builder assembles a Spanner SELECT over a single table. WHERE conditions
// are ANDed and receive positional parameter names (@p0, @p1, ...) at Build
// time, so callers never name parameters themselves.
//
// A Builder is a value: every method returns a modified copy and the
// receiver can be reused, e.g. for a page query and its Count twin.
type Builder struct {
	table   string
	columns []string
	where   []Condition
	groupBy []string
	orderBy []orderTerm
	limit   int64
	offset  int64
}

func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns. With none the query selects *.
func (b *Builder) Select(columns ...string) *Builder {
	return b.with(func(c *Builder) { c.columns = append(c.columns, columns...) })
}

func (b *Builder) Where(condition Condition) *Builder {
	return b.WhereAll(condition)
}

func (b *Builder) WhereAll(conditions ...Condition) *Builder {
	return b.with(func(c *Builder) { c.where = append(c.where, conditions...) })
}

func (b *Builder) GroupBy(columns ...string) *Builder {
	return b.with(func(c *Builder) { c.groupBy = append([]string(nil), columns...) })
}

// OrderBy discards any earlier sort keys.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	return b.with(func(c *Builder) { c.orderBy = []orderTerm{{expr: column, dir: direction}} })
}

func (b *Builder) ThenBy(column string, direction Direction) *Builder {
	return b.ThenByExpr(column, direction, nil)
}

// ThenByExpr appends a sort key whose expression references named
// parameters, e.g. "SCORE(search_tokens, @score_query)".
func (b *Builder) ThenByExpr(expr string, direction Direction, params map[string]any) *Builder {
	return b.with(func(c *Builder) {
		c.orderBy = append(c.orderBy, orderTerm{expr: expr, dir: direction, params: params})
	})
}

// Limit of zero means unlimited.
func (b *Builder) Limit(limit int64) *Builder {
	return b.with(func(c *Builder) { c.limit = limit })
}

func (b *Builder) Offset(offset int64) *Builder {
	return b.with(func(c *Builder) { c.offset = offset })
}

// Count keeps FROM and WHERE and selects COUNT(*) with no ordering,
// grouping or paging.
func (b *Builder) Count() *Builder {
	return &Builder{
		table:   b.table,
		columns: []string{"COUNT(*)"},
		where:   append([]Condition(nil), b.where...),
	}
}

func (b *Builder) Build() spanner.Statement {
	params := map[string]any{}
	var sql strings.Builder

	sql.WriteString("SELECT ")
	if len(b.columns) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.columns, ", "))
	}
	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.where) > 0 {
		parts := make([]string, 0, len(b.where))
		next := 0
		for _, cond := range b.where {
			fragment, condParams := cond.SQL(next)
			parts = append(parts, fragment)
			maps.Copy(params, condParams)
			next += len(condParams)
		}
		sql.WriteString(" WHERE ")
		sql.WriteString(strings.Join(parts, " AND "))
	}

	if len(b.groupBy) > 0 {
		sql.WriteString(" GROUP BY ")
		sql.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.orderBy) > 0 {
		keys := make([]string, 0, len(b.orderBy))
		for _, term := range b.orderBy {
			keys = append(keys, term.expr+" "+term.dir.String())
			maps.Copy(params, term.params)
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(keys, ", "))
	}

	if b.limit > 0 {
		sql.WriteString(" LIMIT @limit")
		params["limit"] = b.limit
	}
	if b.offset > 0 {
		sql.WriteString(" OFFSET @offset")
		params["offset"] = b.offset
	}

	return spanner.Statement{SQL: sql.String(), Params: params}
}

// with applies mutate to a copy of b. Slices are copied so that appends on
// the copy never alias the original's backing arrays.
func (b *Builder) with(mutate func(*Builder)) *Builder {
	c := *b
	c.columns = append([]string(nil), b.columns...)
	c.where = append([]Condition(nil), b.where...)
	c.groupBy = append([]string(nil), b.groupBy...)
	c.orderBy = append([]orderTerm(nil), b.orderBy...)
	mutate(&c)
	return &c
}
