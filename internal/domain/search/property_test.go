package search

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genFragments produces short runs of letters, separators and a few
// non-ASCII runes, which is where normalization does its work.
func genFragments() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(
		"a", "B", "z", "Q", "1", "-", "_", " ", "--", " _ ", "É", "ß", ".", "/",
	))
}

func TestNormalize_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("canonical form has no separators or ASCII uppercase", prop.ForAll(
		func(parts []string) bool {
			out := Normalize(strings.Join(parts, ""))
			if strings.ContainsAny(out, "-_ ") {
				return false
			}
			for _, r := range out {
				if r >= 'A' && r <= 'Z' {
					return false
				}
			}
			return true
		},
		genFragments(),
	))

	properties.Property("normalize is idempotent", prop.ForAll(
		func(s string) bool {
			once := Normalize(s)
			return Normalize(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("separator-only input normalizes to empty", prop.ForAll(
		func(parts []string) bool {
			return Normalize(strings.Join(parts, "")) == ""
		},
		gen.SliceOf(gen.OneConstOf("-", "_", " ")),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMatches_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("empty query matches every candidate", prop.ForAll(
		func(c string) bool {
			return Matches(c, "")
		},
		gen.AnyString(),
	))

	properties.Property("any substring of the canonical candidate matches", prop.ForAll(
		func(parts []string, from, length int) bool {
			canon := Normalize(strings.Join(parts, ""))
			if canon == "" {
				return true
			}
			start := from % len(canon)
			end := start + length%(len(canon)-start+1)
			return Matches(strings.Join(parts, ""), canon[start:end])
		},
		genFragments(),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("matching agrees with containment of both canonical forms", prop.ForAll(
		func(candidate, query []string) bool {
			c := strings.Join(candidate, "")
			q := strings.Join(query, "")
			return Matches(c, Normalize(q)) == strings.Contains(Normalize(c), Normalize(q))
		},
		genFragments(),
		genFragments(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
