// Package model defines the core data structures for haikufinder.
// It contains the lyric corpus entry, the detected haiku candidate,
// and the scan report types shared by the scanner, cache, and report writers.
package model
