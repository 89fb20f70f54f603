package nlp

// stopwords is the set of common English words excluded from content
// word counts and symbol extraction.
var stopwords = map[string]bool{
	// Articles and determiners
	"a": true, "an": true, "the": true,
	"this": true, "that": true, "these": true, "those": true,
	"all": true, "each": true, "every": true, "any": true, "some": true,
	"no": true, "none": true, "few": true, "many": true, "much": true,
	"more": true, "most": true, "less": true, "least": true,
	"other": true, "another": true, "such": true, "same": true,
	"both": true, "either": true, "neither": true,

	// Pronouns
	"i": true, "me": true, "my": true, "mine": true, "myself": true,
	"you": true, "your": true, "yours": true, "yourself": true,
	"he": true, "him": true, "his": true, "himself": true,
	"she": true, "her": true, "hers": true, "herself": true,
	"it": true, "its": true, "itself": true,
	"we": true, "us": true, "our": true, "ours": true, "ourselves": true,
	"they": true, "them": true, "their": true, "theirs": true, "themselves": true,
	"what": true, "which": true, "who": true, "whom": true,
	"something": true, "nothing": true, "everything": true, "anything": true,
	"someone": true, "anyone": true, "everyone": true, "nobody": true,

	// Auxiliaries and modals
	"am": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "having": true,
	"do": true, "does": true, "did": true, "doing": true, "done": true,
	"will": true, "would": true, "shall": true, "should": true,
	"can": true, "could": true, "may": true, "might": true, "must": true,

	// High-frequency verbs
	"get": true, "got": true, "getting": true,
	"go": true, "goes": true, "going": true, "went": true, "gone": true,
	"make": true, "made": true, "making": true,
	"take": true, "took": true, "taken": true, "taking": true,
	"come": true, "came": true, "coming": true,
	"see": true, "saw": true, "seen": true, "seeing": true,
	"know": true, "knew": true, "known": true, "knowing": true,
	"think": true, "thought": true, "thinking": true,
	"say": true, "said": true, "saying": true,
	"tell": true, "told": true, "telling": true,
	"try": true, "tried": true, "trying": true,
	"use": true, "used": true, "using": true,
	"find": true, "found": true, "finding": true,
	"give": true, "gave": true, "given": true, "giving": true,
	"put": true, "puts": true, "putting": true,
	"keep": true, "kept": true, "keeping": true,
	"let": true, "lets": true, "letting": true,
	"seem": true, "seemed": true, "seeming": true,
	"start": true, "started": true, "starting": true,
	"turn": true, "turned": true, "turning": true,
	"look": true, "looked": true, "looking": true,
	"feel": true, "felt": true, "feeling": true,
	"want": true, "wanted": true, "wanting": true,
	"need": true, "needed": true, "needing": true,

	// Prepositions
	"to": true, "of": true, "in": true, "for": true, "on": true,
	"with": true, "at": true, "by": true, "from": true, "up": true,
	"about": true, "into": true, "over": true, "after": true, "before": true,
	"between": true, "under": true, "again": true, "out": true, "off": true,
	"down": true, "through": true, "during": true, "without": true,
	"around": true, "among": true, "along": true, "across": true,
	"behind": true, "beside": true, "inside": true, "outside": true,
	"onto": true, "upon": true, "toward": true, "towards": true,

	// Conjunctions and connectives
	"and": true, "but": true, "or": true, "nor": true, "so": true,
	"yet": true, "not": true, "only": true, "also": true, "just": true,
	"than": true, "then": true, "when": true, "where": true, "why": true,
	"how": true, "if": true, "because": true, "while": true, "although": true,
	"though": true, "unless": true, "until": true, "whether": true,
	"as": true, "once": true,

	// Adverbs
	"very": true, "really": true, "quite": true, "too": true,
	"always": true, "never": true, "often": true, "sometimes": true,
	"usually": true, "already": true, "still": true, "even": true,
	"now": true, "here": true, "there": true,
	"suddenly": true, "somehow": true, "somewhere": true,
	"maybe": true, "perhaps": true, "probably": true, "actually": true,

	// Contraction fragments left by tokenization
	"s": true, "t": true, "m": true, "d": true, "ll": true, "ve": true, "re": true,
	"nt": true, "don": true, "didn": true, "wasn": true, "couldn": true,
}

// IsStopword reports whether the lower-cased word is a stopword.
func IsStopword(word string) bool {
	return stopwords[word]
}
