package main

import (
	"regexp"
	"strings"
)

// splitDDLStatements drops full-line comments and splits on semicolons.
func splitDDLStatements(content string) []string {
	var kept []string
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		kept = append(kept, line)
	}

	var out []string
	for stmt := range strings.SplitSeq(strings.Join(kept, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

var createObject = regexp.MustCompile(`(?is)^CREATE\s+(?:UNIQUE\s+)?(?:NULL_FILTERED\s+)?(TABLE|SEARCH\s+INDEX|INDEX|VIEW|CHANGE\s+STREAM)\s+` + "`?" + `([A-Za-z_][A-Za-z0-9_]*)`)

// createdObject returns "KIND name" for a CREATE statement, e.g.
// "SEARCH INDEX idx_menu_items_search". Other statements return "".
func createdObject(stmt string) string {
	m := createObject.FindStringSubmatch(strings.TrimSpace(stmt))
	if m == nil {
		return ""
	}
	kind := strings.Join(strings.Fields(strings.ToUpper(m[1])), " ")
	return kind + " " + strings.ToLower(m[2])
}

// pendingStatements filters statements down to those whose CREATE target is
// not already in the live schema. Non-CREATE statements are always kept.
func pendingStatements(statements, existing []string) []string {
	have := make(map[string]bool, len(existing))
	for _, stmt := range existing {
		if obj := createdObject(stmt); obj != "" {
			have[obj] = true
		}
	}

	var pending []string
	for _, stmt := range statements {
		if obj := createdObject(stmt); obj != "" && have[obj] {
			continue
		}
		pending = append(pending, stmt)
	}
	return pending
}
