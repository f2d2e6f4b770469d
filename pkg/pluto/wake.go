package pluto

import (
	"regexp"
	"strings"
)

// Wake phrases match on word boundaries so "platoon" and "ghostbusters"
// never trigger. The fuzzy patterns absorb common recognizer misspellings.
var wakePhrases = []string{
	"pluto",
	"ghost",
	"hey pluto",
	"hey ghost",
	"pluto anna",
	"ghost anna",
}

var fuzzyWakePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(pluto|bluto|puto)\b`),
	regexp.MustCompile(`\b(ghost|gost|goast)\b`),
	regexp.MustCompile(`\bhey\s+(pluto|ghost)\b`),
}

// Direct commands bypass the wake word: an English action verb with an
// object, or a Tamil trailing action particle.
var directPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bopen\s+\w+`),
	regexp.MustCompile(`\bclose\s+\w+`),
	regexp.MustCompile(`\bsearch\s+`),
	regexp.MustCompile(`\w+\s+thorakku`),
	regexp.MustCompile(`\w+\s+muddu`),
	regexp.MustCompile(`\w+\s+pannu`),
}

var wakeExact = compileWakePhrases(wakePhrases)

func compileWakePhrases(phrases []string) *regexp.Regexp {
	parts := make([]string, len(phrases))
	for i, p := range phrases {
		parts[i] = strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`)
	}
	return regexp.MustCompile(`\b(` + strings.Join(parts, "|") + `)\b`)
}

// Detection reports what an idle-loop utterance contained. Both flags can be
// set at once; the loop gives the wake word precedence.
type Detection struct {
	Wake   bool
	Direct bool
}

// DetectUtterance classifies raw recognizer text. Pure; empty or whitespace
// text detects nothing.
func DetectUtterance(text string) Detection {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return Detection{}
	}

	var d Detection
	if wakeExact.MatchString(t) {
		d.Wake = true
	} else {
		for _, re := range fuzzyWakePatterns {
			if re.MatchString(t) {
				d.Wake = true
				break
			}
		}
	}
	for _, re := range directPatterns {
		if re.MatchString(t) {
			d.Direct = true
			break
		}
	}
	return d
}
