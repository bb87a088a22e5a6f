// Package lookup implements the tiered search primitive shared by all
// knowledge domains: exact name match first, then name substring match,
// then keyword overlap, stable within each tier by the input order.
package lookup

import (
	"strings"

	"github.com/mad-satoru/madai/pkg/model"
)

// Tokenize lowercases text and splits it on whitespace into a keyword set.
func Tokenize(text string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		tokens[w] = struct{}{}
	}
	return tokens
}

// Search ranks records against the query and returns at most limit of them.
//
// A record is a candidate if its keyword set intersects the query's keyword
// set, or its name contains the whole query as a substring
// (case-insensitive). Candidates are bucketed into three tiers: exact name
// match, name substring match, keyword overlap only. There is no secondary
// scoring; ties keep the order of the records slice, which is the store's
// natural order.
func Search(records []*model.KnowledgeRecord, query string, limit int) []*model.KnowledgeRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	tokens := Tokenize(q)

	var exact, substr, keyword []*model.KnowledgeRecord
	for _, r := range records {
		name := strings.ToLower(r.Name)
		switch {
		case name == q:
			exact = append(exact, r)
		case strings.Contains(name, q):
			substr = append(substr, r)
		case overlaps(tokens, r.Keywords):
			keyword = append(keyword, r)
		}
	}

	ranked := make([]*model.KnowledgeRecord, 0, len(exact)+len(substr)+len(keyword))
	ranked = append(ranked, exact...)
	ranked = append(ranked, substr...)
	ranked = append(ranked, keyword...)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func overlaps(tokens map[string]struct{}, keywords []string) bool {
	for _, k := range keywords {
		if _, ok := tokens[strings.ToLower(k)]; ok {
			return true
		}
	}
	return false
}
