package practice

import (
	"fmt"
	"testing"
)

func TestGenerateEnglishBands(t *testing.T) {
	cases := []struct {
		grade string
		min   int
		max   int
		class string
	}{
		{"lower", 1, 3, "Noun"},
		{"middle", 4, 6, "Verb"},
		{"upper", 7, 12, "Adjective"},
	}

	for _, tc := range cases {
		for grade := tc.min; grade <= tc.max; grade++ {
			qs := GenerateEnglish(grade, 5)
			if len(qs) != 5 {
				t.Fatalf("grade %d: got %d questions, want 5", grade, len(qs))
			}
			for _, q := range qs {
				word := wordFromPrompt(q.Prompt)
				if word == "" {
					t.Fatalf("grade %d: prompt %q has no quoted word", grade, q.Prompt)
				}
				if got := Classify(word); got != tc.class {
					t.Fatalf("grade %d (%s band): word %q classified %q, want %q",
						grade, tc.grade, word, got, tc.class)
				}
				if len(q.Options) != 4 {
					t.Fatalf("grade %d: %d options, want 4", grade, len(q.Options))
				}
			}
		}
	}
}

func TestGenerateEnglishIDsSequential(t *testing.T) {
	qs := GenerateEnglish(5, 3)
	for i, q := range qs {
		if q.ID != i+1 {
			t.Fatalf("question %d has ID %d", i, q.ID)
		}
	}
}

func TestGradeAnswers(t *testing.T) {
	answers := []Answer{
		{Prompt: "'dog' is a ____", Choice: "Noun"},
		{Prompt: "'run' is a ____", Choice: "Noun"},
		{Prompt: "'happy' is a ____", Choice: "Adjective"},
		{Prompt: "no quoted word here", Choice: "Noun"},
		{Prompt: "'quantum' is a ____", Choice: "Noun"},
	}

	if got := GradeAnswers(answers); got != 2 {
		t.Fatalf("GradeAnswers = %d, want 2", got)
	}

	if got := GradeAnswers(nil); got != 0 {
		t.Fatalf("GradeAnswers(nil) = %d, want 0", got)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"dog":     "Noun",
		"Read":    "Verb",
		"tall":    "Adjective",
		"quantum": "",
	}
	for word, want := range cases {
		if got := Classify(word); got != want {
			t.Fatalf("Classify(%q) = %q, want %q", word, got, want)
		}
	}
}

func ExampleGenerateEnglish() {
	qs := GenerateEnglish(2, 1)
	fmt.Println(len(qs))
	// Output: 1
}
