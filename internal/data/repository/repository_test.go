package repository

import (
	"strings"
	"testing"

	"kennel-registry/internal/data/entity"
)

func TestContainsPatternEscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"Rex":      `%Rex%`,
		"_":        `%\_%`,
		"50%":      `%50\%%`,
		`vom\Berg`: `%vom\\Berg%`,
		"a_b%c":    `%a\_b\%c%`,
	}
	for in, want := range cases {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDogWhereSearchUsesEscapedPattern(t *testing.T) {
	where, args := dogWhere(entity.DogFilter{Query: " _ "})
	if len(args) != 1 || args[0] != `%\_%` {
		t.Fatalf("expected escaped pattern, got %v", args)
	}
	if strings.Count(where, `ESCAPE '\'`) != 4 {
		t.Fatalf("expected every ILIKE to declare its escape, got %s", where)
	}
}
