package bleu

import (
	"fmt"
	"testing"
)

func TestReferences(t *testing.T) {
	got := References([]string{"a", "b"}, []string{"c"}, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	want := []string{"a", "b", "c"}
	for i, ref := range got {
		if len(ref) != len(want) {
			t.Fatalf("copy %d = %q, want %q", i, ref, want)
		}
		for j := range want {
			if ref[j] != want[j] {
				t.Errorf("copy %d[%d] = %q, want %q", i, j, ref[j], want[j])
			}
		}
	}
}

func TestReferencesCopiesAreIndependent(t *testing.T) {
	first := []string{"a", "b"}
	second := []string{"c"}
	got := References(first, second, 3)

	got[0][0] = "x"
	got[1] = append(got[1], "d")

	if got[1][0] != "a" || got[2][0] != "a" {
		t.Errorf("mutating copy 0 leaked into siblings: %q", got)
	}
	if len(got[2]) != 3 {
		t.Errorf("appending to copy 1 changed copy 2: %q", got[2])
	}
	if first[0] != "a" || second[0] != "c" {
		t.Errorf("inputs mutated: first=%q second=%q", first, second)
	}
}

func TestReferencesDoNotAliasFirstCapacity(t *testing.T) {
	first := make([]string, 2, 8)
	first[0], first[1] = "a", "b"
	got := References(first, []string{"c"}, 2)

	got[0][2] = "x"
	if got[1][2] != "c" {
		t.Errorf("copies share spare capacity of first: %q", got)
	}
	if ext := first[:3]; ext[2] == "x" || ext[2] == "c" {
		t.Errorf("References wrote into first's spare capacity: %q", ext)
	}
}

func TestReferencesZeroAndNegativeCount(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		got := References([]string{"a"}, []string{"b"}, count)
		if got == nil {
			t.Errorf("References(count=%d) = nil, want empty slice", count)
		}
		if len(got) != 0 {
			t.Errorf("References(count=%d) = %q, want empty", count, got)
		}
	}
}

func TestReferencesEmptyInputs(t *testing.T) {
	got := References[string](nil, nil, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i, ref := range got {
		if ref == nil || len(ref) != 0 {
			t.Errorf("copy %d = %#v, want empty non-nil slice", i, ref)
		}
	}
}

func TestReferencesOfSentences(t *testing.T) {
	first := [][]string{{"the", "cat"}}
	second := [][]string{{"a", "cat"}, {"one", "cat"}}
	got := References(first, second, 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i, refs := range got {
		if len(refs) != 3 {
			t.Fatalf("copy %d has %d references, want 3", i, len(refs))
		}
		if refs[0][0] != "the" || refs[2][0] != "one" {
			t.Errorf("copy %d = %q", i, refs)
		}
	}

	got[0][1] = []string{"replaced"}
	if got[1][1][0] != "a" {
		t.Errorf("replacing a reference in copy 0 changed copy 1: %q", got[1])
	}
}

func ExampleReferences() {
	fmt.Printf("%q\n", References([]string{"a", "b"}, []string{"c"}, 3))
	fmt.Printf("%q\n", References([]string{"a", "b"}, []string{"c"}, 0))
	// Output:
	// [["a" "b" "c"] ["a" "b" "c"] ["a" "b" "c"]]
	// []
}
