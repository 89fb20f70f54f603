// Package lexicon holds the static keyword tables the analyzer matches
// against. Everything here is immutable configuration loaded at init;
// the declared orders are part of the contract because they break ties
// in dominant-emotion and theme reporting.
package lexicon

// EmotionOrder is the declared emotion category order. Iteration over
// emotions must use this slice, never map order.
var EmotionOrder = []string{
	"joy", "sadness", "fear", "anger",
	"surprise", "disgust", "trust", "anticipation",
}

// EmotionKeywords maps each emotion category to its trigger words.
// Matches are substring tests against lower-cased text, each keyword
// counting at most once.
var EmotionKeywords = map[string][]string{
	"joy": {
		"happy", "joyful", "excited", "delighted", "cheerful", "wonderful",
		"amazing", "love", "loved", "beautiful", "peaceful", "content",
	},
	"sadness": {
		"sad", "unhappy", "depressed", "lonely", "crying", "tears",
		"grief", "loss", "heartbroken", "miserable", "gloomy",
	},
	"fear": {
		"afraid", "scared", "terrified", "anxious", "worried", "panic",
		"nightmare", "horror", "frightened", "threatened", "danger",
	},
	"anger": {
		"angry", "mad", "furious", "rage", "frustrated", "irritated",
		"annoyed", "hostile", "aggressive", "violent",
	},
	"surprise": {
		"surprised", "shocked", "amazed", "astonished", "stunned",
		"unexpected", "sudden", "startled",
	},
	"disgust": {
		"disgusted", "revolted", "repulsed", "nasty", "gross",
		"horrible", "awful", "unpleasant",
	},
	"trust": {
		"trust", "safe", "secure", "comfortable", "protected",
		"confident", "reliable",
	},
	"anticipation": {
		"waiting", "expecting", "anticipating", "looking forward",
		"preparing", "ready", "hopeful",
	},
}

// StressCues are phrases that indicate stress content in a dream.
var StressCues = []string{
	"chased", "running", "late", "test", "exam", "unprepared",
	"falling", "drowning", "trapped", "lost", "naked", "public",
	"teeth falling", "unable to move", "paralyzed", "screaming",
}

// ThemeOrder is the declared theme order; identified themes are
// reported in this order.
var ThemeOrder = []string{
	"flying", "falling", "chase", "water", "death", "school",
	"work", "family", "romance", "animals", "travel", "home",
}

// ThemeKeywords maps each dream theme to its trigger words. A theme is
// present when any keyword appears as a substring of the lower-cased text.
var ThemeKeywords = map[string][]string{
	"flying":  {"flying", "floating", "soaring", "air"},
	"falling": {"falling", "dropping", "plunging"},
	"chase":   {"chased", "running from", "pursued", "escape"},
	"water":   {"water", "ocean", "sea", "river", "swimming", "drowning"},
	"death":   {"death", "dying", "dead", "funeral"},
	"school":  {"school", "class", "teacher", "exam", "test"},
	"work":    {"work", "office", "boss", "job", "meeting"},
	"family":  {"family", "mother", "father", "parent", "sibling"},
	"romance": {"love", "kiss", "romantic", "date", "partner"},
	"animals": {"dog", "cat", "animal", "bird", "snake"},
	"travel":  {"travel", "journey", "trip", "destination"},
	"home":    {"home", "house", "room", "apartment"},
}
