package music

import (
	"testing"

	"github.com/Conceptual-Machines/maya-agents-go/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordToMIDI(t *testing.T) {
	tests := []struct {
		symbol string
		want   []int
	}{
		{"C", []int{60, 64, 67}},
		{"Am", []int{69, 72, 76}},
		{"Em", []int{64, 67, 71}},
		{"G7", []int{67, 71, 74, 77}},
		{"Cmaj7", []int{60, 64, 67, 71}},
		{"Am7", []int{69, 72, 76, 79}},
		{"Bdim", []int{71, 74, 77}},
		{"Caug", []int{60, 64, 68}},
		{"Dsus4", []int{62, 67, 69}},
		{"Cadd9", []int{60, 64, 67, 74}},
		{"F#m", []int{66, 69, 73}},
		{"Bb", []int{70, 74, 77}},
		{"C/E", []int{52, 60, 64, 67}},
		{"Emin/G", []int{55, 64, 67, 71}},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := ChordToMIDI(tt.symbol, DefaultOctave)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChordToMIDI_Invalid(t *testing.T) {
	for _, symbol := range []string{"", "H", "Verse", "Cx", "the"} {
		_, err := ChordToMIDI(symbol, DefaultOctave)
		assert.Error(t, err, symbol)
	}
}

func TestNoteName(t *testing.T) {
	assert.Equal(t, "C4", NoteName(60))
	assert.Equal(t, "A3", NoteName(57))
	assert.Equal(t, "F#4", NoteName(66))
}

func TestExtractProgression(t *testing.T) {
	content := "Here's a moody idea.\n" +
		prompt.MusicalContentStart + "\n" +
		"Verse: Am | F | C | G\n" +
		"A melody floats over the top\n" +
		"Chorus: F - G - Am\n" +
		prompt.MusicalContentEnd + "\n" +
		"Outro: C G"

	assert.Equal(t, []string{"Am", "F", "C", "G", "F", "G", "Am"}, ExtractProgression(content))
}

func TestExtractProgression_NoChords(t *testing.T) {
	assert.Empty(t, ExtractProgression("Try layering pads under a dry vocal."))
}

func TestVoicingTable(t *testing.T) {
	got := VoicingTable([]string{"Am", "F", "Am"})
	assert.Equal(t, "Chord voicings (MIDI):\nAm: A4 C5 E5 (69 72 76)\nF: F4 A4 C5 (65 69 72)\n", got)
	assert.Equal(t, "", VoicingTable(nil))
}
