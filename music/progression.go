package music

import (
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/maya-agents-go/prompt"
)

// DefaultOctave is the octave chords are voiced from
const DefaultOctave = 4

// separators between chords on a progression line
var progressionSeparator = strings.NewReplacer("|", " ", ",", " ", "-", " ", "→", " ")

// ExtractProgression returns the chord symbols found in the musical content
// block, in order of appearance. Only lines made entirely of chords count,
// after dropping an optional "Label:" prefix, so prose is never mistaken for
// a progression.
func ExtractProgression(content string) []string {
	if start := strings.Index(content, prompt.MusicalContentStart); start >= 0 {
		content = content[start+len(prompt.MusicalContentStart):]
	}
	if end := strings.Index(content, prompt.MusicalContentEnd); end >= 0 {
		content = content[:end]
	}

	var chords []string
	for _, line := range strings.Split(content, "\n") {
		if i := strings.Index(line, ":"); i >= 0 {
			line = line[i+1:]
		}
		fields := strings.Fields(progressionSeparator.Replace(line))
		if len(fields) == 0 {
			continue
		}
		ok := true
		for _, f := range fields {
			if _, err := ParseChord(f); err != nil {
				ok = false
				break
			}
		}
		if ok {
			chords = append(chords, fields...)
		}
	}
	return chords
}

// VoicingTable renders one line per distinct chord with its MIDI voicing.
// It returns "" when there are no chords.
func VoicingTable(chords []string) string {
	if len(chords) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Chord voicings (MIDI):\n")
	seen := make(map[string]bool, len(chords))
	for _, symbol := range chords {
		if seen[symbol] {
			continue
		}
		seen[symbol] = true

		notes, err := ChordToMIDI(symbol, DefaultOctave)
		if err != nil {
			continue
		}
		names := make([]string, len(notes))
		numbers := make([]string, len(notes))
		for i, n := range notes {
			names[i] = NoteName(n)
			numbers[i] = fmt.Sprint(n)
		}
		sb.WriteString(fmt.Sprintf("%s: %s (%s)\n", symbol, strings.Join(names, " "), strings.Join(numbers, " ")))
	}
	return sb.String()
}
