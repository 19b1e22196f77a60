package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"happy keyword", "I feel great today", Happy},
		{"stressed keywords", "I am so stressed and tired", Stressed},
		{"empty text", "", Neutral},
		{"no keywords", "the quick brown fox", Neutral},
		{"case insensitive", "SO HAPPY", Happy},
		{"sad", "feeling lonely and hopeless", Sad},
		{"neutral keyword", "meh", Neutral},
		{"wtf expands to stressed phrases", "wtf", Stressed},
		{"fml expands to stressed phrase", "fml", Stressed},
		{"substring match", "I manage", Stressed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_TieGoesToLaterCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		// one hit each: "joy" (Happy) vs "sad" (Sad)
		{"happy vs sad", "joy sad", Sad},
		// one hit each: "sad" (Sad) vs "panic" (Stressed)
		{"sad vs stressed", "sad panic", Stressed},
		// one hit each: "panic" (Stressed) vs "meh" (Neutral)
		{"stressed vs neutral", "panic meh", Neutral},
		// one hit each: "joy" (Happy) vs "meh" (Neutral)
		{"happy vs neutral", "joy meh", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := Scores(Normalize(tt.text))
			top := 0
			for _, s := range scores {
				if s > top {
					top = s
				}
			}
			tied := 0
			for _, s := range scores {
				if s == top {
					tied++
				}
			}
			assert.Equal(t, 2, tied, "fixture must produce a two-way tie, got %v", scores)
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "what the fuck", Normalize("WTF"))
	assert.Equal(t, "the fuck is this", Normalize("tf is this"))
	assert.Equal(t, "i don't know", Normalize("idk"))
	assert.Equal(t, "fuck my life", Normalize("FML"))
}

func TestScores(t *testing.T) {
	// "stressed" contains "stress", so both keywords hit; "tired" makes three.
	scores := Scores(Normalize("I am so stressed and tired"))
	assert.Equal(t, [4]int{0, 0, 3, 0}, scores)
}
