// Package music reads chord symbols out of creative output and voices them as MIDI notes.
package music

import (
	"fmt"
	"regexp"
	"strings"
)

var semitones = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3,
	"E": 4, "F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8,
	"Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11,
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var chordPattern = regexp.MustCompile(`^([A-G][#b]?)(maj|min|m|dim|aug|sus2|sus4)?(7|9|11|13)?(add(?:9|11|13))?(?:/([A-G][#b]?))?$`)

// Chord is a parsed chord symbol such as Am7 or C/E
type Chord struct {
	Symbol  string
	Root    string
	Quality string
	Ext     string
	Add     string
	Bass    string
}

// ParseChord parses a chord symbol. Supported: triads, m/min/maj, dim, aug,
// sus2/sus4, 7/9/11/13 extensions, add tones and slash bass.
func ParseChord(symbol string) (Chord, error) {
	m := chordPattern.FindStringSubmatch(strings.TrimSpace(symbol))
	if m == nil {
		return Chord{}, fmt.Errorf("invalid chord symbol: %q", symbol)
	}
	return Chord{Symbol: m[0], Root: m[1], Quality: m[2], Ext: m[3], Add: m[4], Bass: m[5]}, nil
}

// intervals returns semitone offsets from the root
func (c Chord) intervals() []int {
	var iv []int
	switch c.Quality {
	case "m", "min":
		iv = []int{0, 3, 7}
	case "dim":
		iv = []int{0, 3, 6}
	case "aug":
		iv = []int{0, 4, 8}
	case "sus2":
		iv = []int{0, 2, 7}
	case "sus4":
		iv = []int{0, 5, 7}
	default:
		iv = []int{0, 4, 7}
	}

	if c.Ext != "" {
		seventh := 10
		if c.Quality == "maj" {
			seventh = 11
		} else if c.Quality == "dim" {
			seventh = 9
		}
		iv = append(iv, seventh)
		switch c.Ext {
		case "9":
			iv = append(iv, 14)
		case "11":
			iv = append(iv, 14, 17)
		case "13":
			iv = append(iv, 14, 21)
		}
	}

	switch c.Add {
	case "add9":
		iv = append(iv, 14)
	case "add11":
		iv = append(iv, 17)
	case "add13":
		iv = append(iv, 21)
	}
	return iv
}

// MIDI voices the chord in root position from the given octave (C4 = 60).
// A slash bass is placed one octave below.
func (c Chord) MIDI(octave int) []int {
	root := (octave+1)*12 + semitones[c.Root]
	notes := make([]int, 0, 6)
	if c.Bass != "" {
		if bass := octave*12 + semitones[c.Bass]; bass >= 0 {
			notes = append(notes, bass)
		}
	}
	for _, iv := range c.intervals() {
		if n := root + iv; n >= 0 && n <= 127 {
			notes = append(notes, n)
		}
	}
	return notes
}

// ChordToMIDI parses a symbol and voices it at octave
func ChordToMIDI(symbol string, octave int) ([]int, error) {
	c, err := ParseChord(symbol)
	if err != nil {
		return nil, err
	}
	return c.MIDI(octave), nil
}

// NoteName renders a MIDI note number as e.g. A3
func NoteName(n int) string {
	return fmt.Sprintf("%s%d", noteNames[n%12], n/12-1)
}
