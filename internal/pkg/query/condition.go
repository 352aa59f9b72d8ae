package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(paramIndex int) string {
	return fmt.Sprintf("p%d", paramIndex)
}

// compareCondition implements binary comparisons (field <op> value).
type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("category", "coffee") generates "category = @p0"
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Gte creates a "field >= value" condition.
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// Lte creates a "field <= value" condition.
func Lte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<=", value: value}
}

// Gt creates a "field > value" condition.
func Gt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, name)
	return sql, map[string]interface{}{name: c.value}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("archived_at") generates "archived_at IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql := fmt.Sprintf("%s IS NOT NULL", c.field)
	return sql, map[string]interface{}{}
}

// IsTrue creates a "field = TRUE" condition for BOOL columns.
func IsTrue(field string) Condition {
	return &isTrueCondition{field: field}
}

type isTrueCondition struct {
	field string
}

func (c *isTrueCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s = TRUE", c.field), map[string]interface{}{}
}

// ArrayIncludesAny matches rows whose ARRAY<STRING> column shares at least
// one element with values. A NULL column is treated as an empty array.
// Example: ArrayIncludesAny("dietary_tags", []string{"vegan"}) generates
// "ARRAY_INCLUDES_ANY(IFNULL(dietary_tags, ARRAY<STRING>[]), @p0)"
func ArrayIncludesAny(field string, values []string) Condition {
	return &arrayIncludesAnyCondition{field: field, values: values}
}

type arrayIncludesAnyCondition struct {
	field  string
	values []string
}

func (c *arrayIncludesAnyCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("ARRAY_INCLUDES_ANY(IFNULL(%s, ARRAY<STRING>[]), @%s)", c.field, name)
	return sql, map[string]interface{}{name: c.values}
}

// Not negates a condition.
func Not(cond Condition) Condition {
	return &notCondition{inner: cond}
}

type notCondition struct {
	inner Condition
}

func (c *notCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	sql, params := c.inner.SQL(paramIndex)
	return fmt.Sprintf("NOT (%s)", sql), params
}

// Search creates a full-text condition over a TOKENLIST column.
// Example: Search("search_tokens", "oat latte") generates
// "SEARCH(search_tokens, @p0)"
func Search(tokenlist string, text string) Condition {
	return &searchCondition{tokenlist: tokenlist, text: text}
}

type searchCondition struct {
	tokenlist string
	text      string
}

func (c *searchCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	sql := fmt.Sprintf("SEARCH(%s, @%s)", c.tokenlist, name)
	return sql, map[string]interface{}{name: c.text}
}
