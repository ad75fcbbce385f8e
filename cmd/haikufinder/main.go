// Package main provides the entry point for the haikufinder CLI.
//
// Haikufinder scans song lyric corpora for accidental haikus: three
// consecutive lines whose estimated syllable counts form the 5-7-5 pattern.
// Detected haikus are cached locally and can be posted to X one at a time.
//
// Usage:
//
//	haikufinder scan lyrics.csv
//	haikufinder post
//	haikufinder history
//
// See --help for all available options.
package main

// main is the entry point for haikufinder.
func main() {
	Execute()
}
