package textutil

import (
	"regexp"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

type NameMatch struct {
	Name       string
	Similarity float64
}

// ClosestNames ranks candidates by Jaro-Winkler similarity to target after
// normalizing both sides. Candidates with no similarity at all are dropped.
// A limit <= 0 returns every match.
func ClosestNames(target string, candidates []string, limit int) []NameMatch {
	normalizedTarget := NormalizeName(target)

	var matches []NameMatch
	for _, candidate := range candidates {
		normalized := NormalizeName(candidate)

		var similarity float64
		if normalized == normalizedTarget {
			similarity = 1
		} else {
			similarity = matchr.JaroWinkler(normalizedTarget, normalized, false)
		}
		if similarity <= 0 {
			continue
		}
		matches = append(matches, NameMatch{Name: candidate, Similarity: similarity})
	}

	// stable so that equally similar names keep roster order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
