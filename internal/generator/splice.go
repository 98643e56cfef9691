package generator

import (
	"regexp"
)

// Splice replaces everything from start through end (inclusive) with
// start + "\n" + body + "\n" + end. The interior match is greedy, so it runs
// from the first start marker to the last end marker. found is false when
// the markers are absent, in which case doc is returned unchanged.
func Splice(doc, start, end, body string) (result string, found bool) {
	re := regexp.MustCompile(regexp.QuoteMeta(start) + `(?s:.*)` + regexp.QuoteMeta(end))
	loc := re.FindStringIndex(doc)
	if loc == nil {
		return doc, false
	}
	return doc[:loc[0]] + start + "\n" + body + "\n" + end + doc[loc[1]:], true
}
