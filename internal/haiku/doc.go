// Package haiku detects 5-7-5 haiku patterns in lyric text.
//
// The scanner is a pure function of its input: it splits lyrics into lines,
// discards noise (blank lines, stage cues like "[Chorus]", sung filler),
// estimates the syllable count of each remaining line, and emits a candidate
// for every run of three consecutive lines counting exactly 5, 7, 5.
//
// Matching is non-overlapping: after a match at lines (i, i+1, i+2) scanning
// resumes at i+3, so overlapping windows never produce duplicate candidates.
// Lines that fail the pattern slide the window forward one line at a time.
package haiku
