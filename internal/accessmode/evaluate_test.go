package accessmode

import (
	"reflect"
	"testing"
)

var (
	setT   = NewModeSet(Textual)
	setV   = NewModeSet(Visual)
	setA   = NewModeSet(Auditory)
	setTV  = NewModeSet(Textual, Visual)
	setTA  = NewModeSet(Textual, Auditory)
	setVA  = NewModeSet(Visual, Auditory)
	setTVA = NewModeSet(Textual, Visual, Auditory)
)

// everyInput calls fn for each of the 16 x 32 flag combinations.
func everyInput(fn func(ContentFlags, AccommodationFlags)) {
	for c := ContentFlags(0); c < 1<<4; c++ {
		for a := AccommodationFlags(0); a < 1<<5; a++ {
			fn(c, a)
		}
	}
}

func TestEvaluateScenarios(t *testing.T) {
	cases := []struct {
		name    string
		content ContentFlags
		acc     AccommodationFlags
		minimal []ModeSet
		want    []ModeSet
	}{
		{
			name:    "text only",
			content: Text,
			minimal: []ModeSet{setT},
			want:    []ModeSet{setT},
		},
		{
			name:    "image without alt text",
			content: Image,
			minimal: []ModeSet{setV},
			want:    []ModeSet{setV},
		},
		{
			name:    "image with alt text",
			content: Image,
			acc:     AltText,
			minimal: []ModeSet{setT, setV},
			want:    []ModeSet{setT, setTV, setV},
		},
		{
			name:    "video without accommodations",
			content: Video,
			minimal: []ModeSet{setVA},
			want:    []ModeSet{setVA},
		},
		{
			name:    "video with captions and descriptive transcript",
			content: Video,
			acc:     Captions | DescTranscript,
			minimal: []ModeSet{setT, setV},
			want:    []ModeSet{setT, setTV, setTA, setV, setVA},
		},
		{
			name:    "audio with transcript",
			content: Audio,
			acc:     AudioTranscript,
			minimal: []ModeSet{setT, setA},
			want:    []ModeSet{setT, setTA, setA},
		},
		{
			name:    "video with audio description only",
			content: Video,
			acc:     AudioDescription,
			minimal: []ModeSet{setA},
			want:    []ModeSet{setA, setVA},
		},
		{
			name:    "text and image with alt text",
			content: Text | Image,
			acc:     AltText,
			minimal: []ModeSet{setT},
			want:    []ModeSet{setT, setTV},
		},
		{
			name:    "everything without accommodations",
			content: Text | Image | Audio | Video,
			minimal: []ModeSet{setTVA},
			want:    []ModeSet{setTVA},
		},
		{
			name:    "empty content",
			content: 0,
			acc:     AltText,
			minimal: nil,
			want:    nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eval := Analyze(tc.content, tc.acc)
			if !reflect.DeepEqual(eval.Minimal, tc.minimal) {
				t.Fatalf("minimal = %v, want %v", eval.Minimal, tc.minimal)
			}
			if !reflect.DeepEqual(eval.Sets, tc.want) {
				t.Fatalf("sets = %v, want %v", eval.Sets, tc.want)
			}
			if got := Evaluate(tc.content, tc.acc); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Evaluate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSufficientVideoTracksAreIndependent(t *testing.T) {
	// Captions cover the audio track for a sighted user but nothing covers the
	// picture for a listener.
	if Sufficient(setA, Video, Captions) {
		t.Fatalf("auditory alone must not cover video with captions only")
	}
	if !Sufficient(setV, Video, Captions) {
		t.Fatalf("visual with captions must cover video")
	}
	if Sufficient(setV, Video, AudioDescription) {
		t.Fatalf("audio description must not cover the audio track")
	}
	if !Sufficient(setT, Video, DescTranscript) {
		t.Fatalf("descriptive transcript must cover both tracks for textual")
	}
	if Sufficient(setT, Video, AudioTranscript) {
		t.Fatalf("audio transcript must not cover the visual track")
	}
}

func TestSufficientEmptyCandidate(t *testing.T) {
	everyInput(func(c ContentFlags, a AccommodationFlags) {
		got := Sufficient(0, c, a)
		if want := c.IsEmpty(); got != want {
			t.Fatalf("Sufficient(empty, %v, %v) = %v, want %v", c, a, got, want)
		}
	})
}

func TestEvaluateResultsAreSufficient(t *testing.T) {
	everyInput(func(c ContentFlags, a AccommodationFlags) {
		for _, set := range Evaluate(c, a) {
			if !Sufficient(set, c, a) {
				t.Fatalf("content=%v acc=%v: %v reported but not sufficient", c, a, set)
			}
		}
	})
}

func TestSufficientIsMonotone(t *testing.T) {
	everyInput(func(c ContentFlags, a AccommodationFlags) {
		for _, small := range universe {
			if !Sufficient(small, c, a) {
				continue
			}
			for _, big := range universe {
				if small.IsSubsetOf(big) && !Sufficient(big, c, a) {
					t.Fatalf("content=%v acc=%v: %v sufficient but superset %v is not", c, a, small, big)
				}
			}
		}
	})
}

func TestMinimalSetsAreIncomparable(t *testing.T) {
	everyInput(func(c ContentFlags, a AccommodationFlags) {
		minimal := MinimalSufficientSets(c, a)
		for i, x := range minimal {
			for j, y := range minimal {
				if i != j && x.IsProperSubsetOf(y) {
					t.Fatalf("content=%v acc=%v: %v is a proper subset of %v", c, a, x, y)
				}
			}
		}
	})
}

func TestNonEmptyContentAlwaysHasAResult(t *testing.T) {
	everyInput(func(c ContentFlags, a AccommodationFlags) {
		if c.IsEmpty() {
			return
		}
		if len(Evaluate(c, a)) == 0 {
			t.Fatalf("content=%v acc=%v: no sets", c, a)
		}
	})
}

func TestEvaluateHasNoDuplicatesAndIsStable(t *testing.T) {
	everyInput(func(c ContentFlags, a AccommodationFlags) {
		first := Evaluate(c, a)
		seen := map[ModeSet]bool{}
		for _, set := range first {
			if seen[set] {
				t.Fatalf("content=%v acc=%v: duplicate %v", c, a, set)
			}
			seen[set] = true
		}
		if second := Evaluate(c, a); !reflect.DeepEqual(first, second) {
			t.Fatalf("content=%v acc=%v: %v then %v", c, a, first, second)
		}
	})
}

// The relevance gate decides which extensions are offered; the sufficiency
// re-check can never reject one because sufficiency is monotone.
func TestExtensionRecheckNeverRejects(t *testing.T) {
	everyInput(func(c ContentFlags, a AccommodationFlags) {
		for _, set := range MinimalSufficientSets(c, a) {
			for _, ext := range extensions {
				if set.Has(ext.mode) || !ext.relevant(c, a) {
					continue
				}
				if !Sufficient(set.With(ext.mode), c, a) {
					t.Fatalf("content=%v acc=%v: %v + %v rejected", c, a, set, ext.mode)
				}
			}
		}
	})
}

func TestExpandDoesNotCompound(t *testing.T) {
	// Each extension adds exactly one mode to its base set.
	got := Expand([]ModeSet{setT}, Image|Audio, AltText|AudioTranscript)
	want := []ModeSet{setT, setTV, setTA}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
}

func TestExpandSkipsIrrelevantModes(t *testing.T) {
	// Transcripts make reading relevant even without text content.
	got := Expand([]ModeSet{setA}, Audio, AudioTranscript)
	want := []ModeSet{setA, setTA}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	// Captions alone do not make reading relevant.
	got = Expand([]ModeSet{setVA}, Video, Captions)
	want = []ModeSet{setVA}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
}
