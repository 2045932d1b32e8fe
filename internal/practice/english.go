// Package practice generates simple self-study questions. Question
// difficulty follows the student's class level: younger grades identify
// nouns, middle grades verbs, senior grades adjectives.
package practice

import (
	"fmt"
	"math/rand"
	"strings"
)

var (
	nouns      = []string{"dog", "cat", "teacher", "school", "book"}
	verbs      = []string{"run", "eat", "play", "read", "write"}
	adjectives = []string{"big", "happy", "fast", "blue", "tall"}

	optionSet = []string{"Noun", "Verb", "Adjective", "Adverb"}
)

// Question is one multiple-choice grammar question.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Answer is one submitted answer: the prompt it responds to and the
// chosen option. Grading is stateless; the server re-derives the
// correct answer from the word embedded in the prompt.
type Answer struct {
	Prompt string `json:"prompt"`
	Choice string `json:"choice"`
}

// GenerateEnglish produces n word-class questions for the given grade.
func GenerateEnglish(grade, n int) []Question {
	if n <= 0 {
		n = 1
	}

	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		var word string
		switch {
		case grade <= 3:
			word = nouns[rand.Intn(len(nouns))]
		case grade <= 6:
			word = verbs[rand.Intn(len(verbs))]
		default:
			word = adjectives[rand.Intn(len(adjectives))]
		}

		options := make([]string, len(optionSet))
		copy(options, optionSet)
		rand.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		questions = append(questions, Question{
			ID:      i + 1,
			Prompt:  fmt.Sprintf("'%s' is a ____", word),
			Options: options,
		})
	}
	return questions
}

// GradeAnswers counts correct submissions. Prompts that don't parse or
// reference an unknown word count as wrong rather than erroring: the
// client controls that field, and a mangled submission is just a miss.
func GradeAnswers(answers []Answer) (correct int) {
	for _, a := range answers {
		word := wordFromPrompt(a.Prompt)
		if word == "" {
			continue
		}
		if Classify(word) == a.Choice {
			correct++
		}
	}
	return correct
}

// Classify returns the word class for a known practice word, or "" for
// a word outside the question vocabulary.
func Classify(word string) string {
	word = strings.ToLower(word)
	for _, n := range nouns {
		if word == n {
			return "Noun"
		}
	}
	for _, v := range verbs {
		if word == v {
			return "Verb"
		}
	}
	for _, adj := range adjectives {
		if word == adj {
			return "Adjective"
		}
	}
	return ""
}

// wordFromPrompt pulls the quoted word out of "'dog' is a ____".
func wordFromPrompt(prompt string) string {
	start := strings.Index(prompt, "'")
	if start < 0 {
		return ""
	}
	end := strings.Index(prompt[start+1:], "'")
	if end < 0 {
		return ""
	}
	return prompt[start+1 : start+1+end]
}
