package sentiment

import (
	"regexp"
	"strings"
)

// LexiconScorer is a pattern-lexicon polarity model: each subjective
// word carries a fixed polarity, negators flip and dampen the following
// subjective word, intensifiers amplify it, and the text score is the
// mean over matched words. Algorithmically independent of VADER's
// rule/compound scoring.
type LexiconScorer struct{}

// NewLexiconScorer returns the default English polarity scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

var wordPattern = regexp.MustCompile(`[a-z']+`)

const (
	negationDamp    = -0.5
	intensifyFactor = 1.3
)

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true,
	"cannot": true, "can't": true, "don't": true, "didn't": true,
	"wasn't": true, "weren't": true, "isn't": true, "couldn't": true,
	"wouldn't": true, "won't": true, "without": true,
}

var intensifiers = map[string]bool{
	"very": true, "really": true, "so": true, "extremely": true,
	"incredibly": true, "absolutely": true, "totally": true, "deeply": true,
}

// Score returns the mean polarity of subjective words in [-1, 1],
// or 0 when no subjective word appears.
func (s *LexiconScorer) Score(text string) float64 {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	var total float64
	var matched int
	negate := false
	intensity := 1.0

	for _, w := range words {
		if negators[w] {
			negate = true
			continue
		}
		if intensifiers[w] {
			intensity = intensifyFactor
			continue
		}

		p, ok := polarity[w]
		if !ok {
			// Modifiers only reach across one intervening non-subjective
			// word, matching how short negation scopes behave in English.
			negate = false
			intensity = 1.0
			continue
		}

		p *= intensity
		if negate {
			p *= negationDamp
		}
		total += clamp(p)
		matched++
		negate = false
		intensity = 1.0
	}

	if matched == 0 {
		return 0
	}
	return clamp(total / float64(matched))
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// polarity is the subjective-word table. Scores follow the usual
// pattern-lexicon scale: strong evaluative words near ±1, mild ones
// near ±0.3. Dream-journal vocabulary is deliberately well covered.
var polarity = map[string]float64{
	// positive
	"good": 0.7, "great": 0.8, "wonderful": 1.0, "amazing": 0.8,
	"beautiful": 0.85, "lovely": 0.8, "happy": 0.8, "happiness": 0.8,
	"joy": 0.8, "joyful": 0.8, "delighted": 0.9, "delightful": 0.9,
	"cheerful": 0.7, "excited": 0.6, "exciting": 0.6, "love": 0.6,
	"loved": 0.7, "peaceful": 0.7, "calm": 0.5, "serene": 0.7,
	"content": 0.5, "pleasant": 0.6, "fun": 0.5, "nice": 0.6,
	"perfect": 1.0, "fantastic": 0.9, "incredible": 0.8, "awesome": 0.9,
	"bright": 0.4, "warm": 0.4, "gentle": 0.4, "safe": 0.5,
	"free": 0.4, "freedom": 0.5, "hope": 0.5, "hopeful": 0.6,
	"magical": 0.6, "vivid": 0.3, "friendly": 0.6, "comfort": 0.5,
	"comfortable": 0.5, "relieved": 0.5, "relief": 0.5, "laughing": 0.6,
	"laughed": 0.6, "smiling": 0.6, "smiled": 0.6, "glad": 0.6,
	"proud": 0.6, "triumphant": 0.7, "blissful": 0.9, "euphoric": 0.9,
	"best": 0.9, "better": 0.5, "success": 0.6, "win": 0.5, "won": 0.5,

	// negative
	"bad": -0.7, "terrible": -1.0, "horrible": -1.0, "awful": -1.0,
	"sad": -0.5, "sadness": -0.5, "unhappy": -0.6, "depressed": -0.8,
	"depressing": -0.7, "miserable": -0.8, "gloomy": -0.5, "lonely": -0.5,
	"crying": -0.6, "cried": -0.6, "tears": -0.4, "grief": -0.7,
	"heartbroken": -0.9, "afraid": -0.6, "scared": -0.6, "scary": -0.6,
	"terrified": -0.9, "terrifying": -0.9, "fear": -0.6, "anxious": -0.6,
	"anxiety": -0.6, "worried": -0.5, "worry": -0.5, "panic": -0.7,
	"nightmare": -0.8, "horror": -0.8, "frightened": -0.7, "dread": -0.7,
	"angry": -0.6, "mad": -0.5, "furious": -0.8, "rage": -0.8,
	"frustrated": -0.5, "frustrating": -0.5, "irritated": -0.4,
	"annoyed": -0.4, "annoying": -0.4, "hostile": -0.6, "violent": -0.7,
	"disgusted": -0.7, "disgusting": -0.8, "gross": -0.6, "nasty": -0.6,
	"unpleasant": -0.5, "dark": -0.3, "darkness": -0.3, "cold": -0.2,
	"dead": -0.6, "death": -0.6, "dying": -0.7, "kill": -0.7,
	"killed": -0.7, "hurt": -0.5, "pain": -0.6, "painful": -0.7,
	"trapped": -0.5, "helpless": -0.6, "hopeless": -0.8, "alone": -0.3,
	"danger": -0.5, "dangerous": -0.6, "threatening": -0.6, "menacing": -0.6,
	"screaming": -0.5, "screamed": -0.5, "strange": -0.2, "weird": -0.2,
	"confused": -0.3, "confusing": -0.3, "worst": -1.0, "worse": -0.5,
	"fail": -0.6, "failed": -0.6, "failure": -0.6, "broken": -0.4,
	"sick": -0.5, "ashamed": -0.6, "embarrassed": -0.5, "embarrassing": -0.5,
	"guilty": -0.5, "disturbing": -0.6, "creepy": -0.5, "eerie": -0.4,
	"ominous": -0.5, "sinister": -0.6, "drowning": -0.7, "falling": -0.3,
	"crash": -0.5, "crashed": -0.5, "storm": -0.3, "monster": -0.5,
}
