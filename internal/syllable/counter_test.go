package syllable

import "testing"

// TestCounterWord tests the per-word heuristic rules.
func TestCounterWord(t *testing.T) {
	t.Parallel()

	c := NewCounter()

	tests := []struct {
		word       string
		want       int
		derivation Derivation
	}{
		// Plain vowel-group counts
		{"cat", 1, DerivationCounted},
		{"haiku", 2, DerivationCounted},
		{"the", 1, DerivationCounted},
		{"today", 2, DerivationCounted},
		{"beautiful", 3, DerivationCounted},

		// Silent trailing "e"
		{"write", 1, DerivationCorrected},
		{"stone", 1, DerivationCorrected},
		{"silence", 2, DerivationCorrected},

		// Consonant + "le" ending
		{"table", 3, DerivationCorrected},
		{"little", 3, DerivationCorrected},

		// Lexicon entries
		{"people", 2, DerivationLexicon},
		{"fire", 1, DerivationLexicon},
		{"science", 2, DerivationLexicon},
		{"every", 2, DerivationLexicon},

		// Consonant-only fallback
		{"hmm", 1, DerivationFallback},
		{"pss", 1, DerivationFallback},

		// Punctuation stripping
		{"don't", 1, DerivationCounted},
		{"cat!", 1, DerivationCounted},
		{"SHOUTING", 2, DerivationCounted},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()

			got := c.Word(tt.word)
			if got.Count != tt.want {
				t.Errorf("Word(%q).Count = %d, want %d", tt.word, got.Count, tt.want)
			}
			if got.Derivation != tt.derivation {
				t.Errorf("Word(%q).Derivation = %s, want %s", tt.word, got.Derivation, tt.derivation)
			}
		})
	}
}

// TestCounterWordEmpty tests that letterless input counts zero.
func TestCounterWordEmpty(t *testing.T) {
	t.Parallel()

	c := NewCounter()

	for _, word := range []string{"", "123", "!?—", "''"} {
		if got := c.Word(word); got.Count != 0 {
			t.Errorf("Word(%q).Count = %d, want 0", word, got.Count)
		}
	}
}

// TestCounterWordNonNegative tests the floor invariant: any word with
// letters counts at least one syllable.
func TestCounterWordNonNegative(t *testing.T) {
	t.Parallel()

	c := NewCounter()

	words := []string{"a", "I", "strength", "rhythm", "e", "ye", "le", "queue"}
	for _, word := range words {
		if got := c.Word(word); got.Count < 1 {
			t.Errorf("Word(%q).Count = %d, want >= 1", word, got.Count)
		}
	}
}

// TestCounterOverrides tests user-supplied lexicon overrides.
func TestCounterOverrides(t *testing.T) {
	t.Parallel()

	c := NewCounter(WithOverrides(map[string]int{
		"Gonna":  2,
		"haiku":  3, // override beats the heuristic
		"":       5, // ignored
		"zeroed": 0, // ignored: non-positive
	}))

	if got := c.Word("gonna"); got.Count != 2 || got.Derivation != DerivationLexicon {
		t.Errorf("Word(gonna) = %+v, want 2 via lexicon", got)
	}
	if got := c.Word("haiku"); got.Count != 3 {
		t.Errorf("Word(haiku) = %d, want override 3", got.Count)
	}
	if got := c.Word("zeroed"); got.Derivation == DerivationLexicon {
		t.Error("non-positive override should be ignored")
	}
}

// TestCounterLine tests line-level counting.
func TestCounterLine(t *testing.T) {
	t.Parallel()

	c := NewCounter()

	tests := []struct {
		name string
		line string
		want int
	}{
		{"five ones", "the cat sat on mat", 5},
		{"seven ones", "the cat sat on the mat now", 7},
		{"empty", "", 0},
		{"whitespace only", "   \t ", 0},
		{"inline annotation removed", "rain falls [x2] on me", 4},
		{"parenthesised cue removed", "hello (yeah) darkness", 4},
		{"punctuation ignored", "stop, look -- listen!", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Line(tt.line)
			if got.Count != tt.want {
				t.Errorf("Line(%q).Count = %d, want %d", tt.line, got.Count, tt.want)
			}
		})
	}
}

// TestCounterLineDeterministic tests that repeated calls agree.
func TestCounterLineDeterministic(t *testing.T) {
	t.Parallel()

	c := NewCounter()
	line := "a lonely silhouette dances in the quiet rain"

	first := c.Line(line)
	for range 10 {
		if got := c.Line(line); got != first {
			t.Fatalf("Line is not deterministic: %+v != %+v", got, first)
		}
	}
}

// TestCounterLineDerivation tests that the weakest word dominates.
func TestCounterLineDerivation(t *testing.T) {
	t.Parallel()

	c := NewCounter()

	if got := c.Line("the cat sat"); got.Derivation != DerivationCounted {
		t.Errorf("plain line derivation = %s, want counted", got.Derivation)
	}
	if got := c.Line("write me a stone"); got.Derivation != DerivationCorrected {
		t.Errorf("corrected line derivation = %s, want corrected", got.Derivation)
	}
	if got := c.Line("hmm the cat sat"); got.Derivation != DerivationFallback {
		t.Errorf("fallback line derivation = %s, want fallback", got.Derivation)
	}
}

// TestFoldASCII tests Unicode folding.
func TestFoldASCII(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"café", "cafe"},
		{"naïve", "naive"},
		{"Beyoncé", "Beyonce"},
		{"don’t", "don't"},
		{"plain ascii", "plain ascii"},
		{"日本語 words", " words"},
	}

	for _, tt := range tests {
		if got := FoldASCII(tt.in); got != tt.want {
			t.Errorf("FoldASCII(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
