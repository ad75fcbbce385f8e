package config

// ScanProfile holds scan tuning for the haiku detector. A profile can apply
// globally (the Defaults block) or to a single artist, since lyric
// conventions differ: one discography may need extra noise patterns, another
// may need syllable overrides for invented words.
type ScanProfile struct {
	// StripAnnotations controls whether whole-line bracketed tags like
	// "[Chorus]" are excluded from matching. Nil means use the built-in
	// default (true).
	StripAnnotations *bool `yaml:"stripAnnotations,omitempty"`

	// NoisePatterns are additional regular expressions, matched against
	// trimmed lowercase lines, whose matches are excluded from scanning.
	NoisePatterns []string `yaml:"noisePatterns,omitempty"`

	// SyllableOverrides maps words to known syllable counts, consulted
	// before the heuristic. Useful for invented or slang words the
	// vowel-group rule gets wrong ("gonna", "outta", band-specific coinage).
	SyllableOverrides map[string]int `yaml:"syllableOverrides,omitempty"`
}

// File represents the structure of the .haikufinder configuration file.
type File struct {
	// Defaults contains the scan profile applied to every artist unless
	// overridden in the artist-specific profile.
	Defaults ScanProfile `yaml:"defaults,omitempty"`

	// Artists maps artist names (as they appear in the corpus) to their
	// scan profile overrides.
	Artists map[string]ScanProfile `yaml:"artists,omitempty"`
}

// GetProfile returns the effective scan profile for an artist, merging the
// artist-specific profile over the defaults. Noise patterns accumulate;
// syllable overrides merge with artist entries winning on conflicts.
func (cf *File) GetProfile(artist string) ScanProfile {
	result := cf.Defaults

	override, ok := cf.Artists[artist]
	if !ok {
		return result
	}

	if override.StripAnnotations != nil {
		result.StripAnnotations = override.StripAnnotations
	}
	if len(override.NoisePatterns) > 0 {
		merged := make([]string, 0, len(result.NoisePatterns)+len(override.NoisePatterns))
		merged = append(merged, result.NoisePatterns...)
		merged = append(merged, override.NoisePatterns...)
		result.NoisePatterns = merged
	}
	if len(override.SyllableOverrides) > 0 {
		merged := make(map[string]int, len(result.SyllableOverrides)+len(override.SyllableOverrides))
		for word, n := range result.SyllableOverrides {
			merged[word] = n
		}
		for word, n := range override.SyllableOverrides {
			merged[word] = n
		}
		result.SyllableOverrides = merged
	}

	return result
}
