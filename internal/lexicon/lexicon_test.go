package lexicon

import "testing"

func TestEmotionOrderMatchesKeywords(t *testing.T) {
	if len(EmotionOrder) != 8 {
		t.Fatalf("expected 8 emotion categories, got %d", len(EmotionOrder))
	}
	if EmotionOrder[0] != "joy" || EmotionOrder[7] != "anticipation" {
		t.Errorf("emotion order changed: %v", EmotionOrder)
	}

	for _, emotion := range EmotionOrder {
		kws, ok := EmotionKeywords[emotion]
		if !ok {
			t.Errorf("emotion %q has no keywords", emotion)
		}
		if len(kws) == 0 {
			t.Errorf("emotion %q has an empty keyword list", emotion)
		}
	}
	if len(EmotionKeywords) != len(EmotionOrder) {
		t.Errorf("keyword map has %d categories, order has %d", len(EmotionKeywords), len(EmotionOrder))
	}
}

func TestThemeOrderMatchesKeywords(t *testing.T) {
	if len(ThemeOrder) != 12 {
		t.Fatalf("expected 12 themes, got %d", len(ThemeOrder))
	}
	if ThemeOrder[0] != "flying" || ThemeOrder[11] != "home" {
		t.Errorf("theme order changed: %v", ThemeOrder)
	}

	for _, theme := range ThemeOrder {
		kws, ok := ThemeKeywords[theme]
		if !ok {
			t.Errorf("theme %q has no keywords", theme)
		}
		if len(kws) == 0 {
			t.Errorf("theme %q has an empty keyword list", theme)
		}
	}
	if len(ThemeKeywords) != len(ThemeOrder) {
		t.Errorf("keyword map has %d themes, order has %d", len(ThemeKeywords), len(ThemeOrder))
	}
}

func TestStressCues(t *testing.T) {
	if len(StressCues) != 16 {
		t.Errorf("expected 16 stress cues, got %d", len(StressCues))
	}
	seen := map[string]bool{}
	for _, cue := range StressCues {
		if cue == "" {
			t.Error("empty stress cue")
		}
		if seen[cue] {
			t.Errorf("duplicate stress cue %q", cue)
		}
		seen[cue] = true
	}
}
