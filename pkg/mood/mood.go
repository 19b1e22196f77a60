// Package mood derives a mood label from free journal text.
//
// The heuristic is a keyword count: the text is lowercased, a few
// abbreviations are spelled out, and every category scores one point per
// keyword that appears anywhere in the text (substring match, so "man" also
// matches "manage"). The highest score wins. Categories are compared in the
// order Happy, Sad, Stressed, Neutral with a greater-or-equal test, so a tie
// goes to the category that comes later in that order. Text with no keyword
// at all is Neutral.
package mood

import "strings"

const (
	Happy    = "Happy"
	Sad      = "Sad"
	Stressed = "Stressed"
	Neutral  = "Neutral"
)

// Labels lists every label Classify can return, in scan order.
var Labels = []string{Happy, Sad, Stressed, Neutral}

// abbreviations are expanded in this order before scoring. "wtf" runs before
// "tf" so it is not split into "w" + "the fuck".
var abbreviations = []struct{ from, to string }{
	{"wtf", "what the fuck"},
	{"tf", "the fuck"},
	{"fml", "fuck my life"},
	{"idk", "i don't know"},
}

var keywords = [][]string{
	// Happy
	{
		"happy", "joy", "joyful", "grateful", "excited", "relaxed", "fun", "peaceful",
		"great", "amazing", "awesome", "good", "smile", "love", "yay", "yay!", "chill",
	},
	// Sad
	{
		"sad", "cry", "lonely", "depressed", "gloomy", "miserable", "down", "hurt", "die",
		"hopeless", "worthless", "sorrow", "tears", "lost", "numb", "blue", "suicide", "suicidal",
	},
	// Stressed
	{
		"stress", "stressed", "anxious", "panic", "grind", "burnout", "tired",
		"angry", "mad", "frustrated", "exhausted", "drained", "fuck", "fucked",
		"bullshit", "shit", "what the fuck", "wtf", "tf", "hate", "screaming",
		"useless", "trash", "overwhelmed", "rage", "fuck this", "fuck the world",
		"fuck my life", "burnt out", "done with everything", "idk", "man",
	},
	// Neutral
	{
		"okay", "fine", "meh", "normal", "average", "alright", "not bad", "so-so",
		"whatever", "idc", "mid",
	},
}

// Classify returns the mood label for text. It is pure and total.
func Classify(text string) string {
	normalized := Normalize(text)

	scores := Scores(normalized)

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] >= scores[best] {
			best = i
		}
	}
	if scores[best] == 0 {
		return Neutral
	}
	return Labels[best]
}

// Normalize lowercases text and expands the known abbreviations.
func Normalize(text string) string {
	s := strings.ToLower(text)
	for _, a := range abbreviations {
		s = strings.ReplaceAll(s, a.from, a.to)
	}
	return s
}

// Scores counts keyword hits per category for already normalized text.
// The result is indexed like Labels.
func Scores(normalized string) [4]int {
	var scores [4]int
	for i, words := range keywords {
		for _, w := range words {
			if strings.Contains(normalized, w) {
				scores[i]++
			}
		}
	}
	return scores
}
