package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizerBasic(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the", "a", "and", "of"})

	tokens := tokenizer.Tokenize("The quick brown fox jumps over the lazy dog")

	want := []string{"quick", "brown", "fox", "jumps", "over", "lazy", "dog"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize = %v, want %v", tokens, want)
	}
}

func TestTokenizerCases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t\n\r   ", nil},
		{"hyphens preserved", "machine-learning and deep-learning", []string{"machine-learning", "and", "deep-learning"}},
		{"lowercased", "BERT Transformer", []string{"bert", "transformer"}},
		{"punctuation splits", "hello! world? test... end.", []string{"hello", "world", "test", "end"}},
		{"numbers filtered", "machine learning 2023 gpt-4 utf-8", []string{"machine", "learning", "gpt-4", "utf-8"}},
		{"single characters dropped", "a b c topic", []string{"topic"}},
		{"leading hyphen trimmed", "text -patch-would linux", []string{"text", "patch-would", "linux"}},
		{"consecutive hyphens collapsed", "test---word", []string{"test-word"}},
		{"hyphen only", "--- -", nil},
		{"unicode letters", "café résumé", []string{"café", "résumé"}},
	}

	tokenizer := NewTokenizer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizer.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizerVeryLongWord(t *testing.T) {
	tokenizer := NewTokenizer([]string{})

	longWord := strings.Repeat("verylongword", 20)
	tokens := tokenizer.Tokenize("normal " + longWord + " text")

	if len(tokens) != 3 {
		t.Errorf("Expected 3 tokens, got %d", len(tokens))
	}
}

func TestTokenizerStopwordCaseInsensitive(t *testing.T) {
	tokenizer := NewTokenizer([]string{"THE", "And"})

	tokens := tokenizer.Tokenize("The cat and the dog")
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokenize = %v, want %v", tokens, want)
	}
	if !tokenizer.IsStopword("the") {
		t.Error("IsStopword should be case-insensitive")
	}
}

func TestAddRemoveStopword(t *testing.T) {
	tokenizer := NewTokenizer([]string{"the"})

	tokens := tokenizer.Tokenize("the cat")
	if len(tokens) != 1 || tokens[0] != "cat" {
		t.Error("Should filter 'the'")
	}

	tokenizer.RemoveStopword("the")
	tokens = tokenizer.Tokenize("the cat")
	if len(tokens) != 2 {
		t.Error("'the' should not be filtered after removal")
	}

	tokenizer.AddStopword("THE")
	tokens = tokenizer.Tokenize("the cat")
	if len(tokens) != 1 || tokens[0] != "cat" {
		t.Error("Should filter 'the' after re-adding")
	}
}
