package accessmode

// Sufficient reports whether candidate, together with the available
// accommodations, allows every format in content to be perceived. Formats
// absent from content impose no constraint, so empty content is satisfied by
// any candidate.
func Sufficient(candidate ModeSet, content ContentFlags, acc AccommodationFlags) bool {
	textual := candidate.Has(Textual)
	visual := candidate.Has(Visual)
	auditory := candidate.Has(Auditory)

	if content.Has(Text) && !textual {
		return false
	}
	if content.Has(Image) && !(visual || (textual && acc.Has(AltText))) {
		return false
	}
	if content.Has(Audio) && !(auditory || (textual && acc.Has(AudioTranscript))) {
		return false
	}
	if content.Has(Video) {
		// Both tracks of a video are separate obligations.
		audioTrack := auditory ||
			(visual && acc.Has(Captions)) ||
			(textual && acc.Has(AudioTranscript)) ||
			(textual && acc.Has(DescTranscript))
		if !audioTrack {
			return false
		}
		visualTrack := visual ||
			(textual && acc.Has(DescTranscript)) ||
			(auditory && acc.Has(AudioDescription))
		if !visualTrack {
			return false
		}
	}
	return true
}

// MinimalSufficientSets returns the sufficient candidates that have no
// sufficient proper subset, in candidate order.
func MinimalSufficientSets(content ContentFlags, acc AccommodationFlags) []ModeSet {
	var covered []ModeSet
	for _, candidate := range universe {
		if Sufficient(candidate, content, acc) {
			covered = append(covered, candidate)
		}
	}
	var minimal []ModeSet
	for _, set := range covered {
		redundant := false
		for _, other := range covered {
			if other.IsProperSubsetOf(set) {
				redundant = true
				break
			}
		}
		if !redundant {
			minimal = append(minimal, set)
		}
	}
	return minimal
}

// Expand emits each minimal set followed by its single-mode extensions that are
// relevant to the inputs and still sufficient. Each extension adds one mode to
// the minimal set it came from; extensions are tried in the order visual,
// auditory, textual. Sets already emitted are skipped.
func Expand(minimal []ModeSet, content ContentFlags, acc AccommodationFlags) []ModeSet {
	var (
		out  []ModeSet
		seen = make(map[ModeSet]struct{}, len(universe))
	)
	emit := func(set ModeSet) {
		if _, ok := seen[set]; ok {
			return
		}
		seen[set] = struct{}{}
		out = append(out, set)
	}
	for _, set := range minimal {
		emit(set)
		for _, ext := range extensions {
			if set.Has(ext.mode) || !ext.relevant(content, acc) {
				continue
			}
			if grown := set.With(ext.mode); Sufficient(grown, content, acc) {
				emit(grown)
			}
		}
	}
	return out
}

type extension struct {
	mode     Mode
	relevant func(ContentFlags, AccommodationFlags) bool
}

// extensions gates each extra mode on the inputs that give it a purpose: sight
// for images or video, hearing for audio or video, and reading for text or any
// text-based alternative.
var extensions = [...]extension{
	{
		mode: Visual,
		relevant: func(c ContentFlags, _ AccommodationFlags) bool {
			return c.HasAny(Image | Video)
		},
	},
	{
		mode: Auditory,
		relevant: func(c ContentFlags, _ AccommodationFlags) bool {
			return c.HasAny(Audio | Video)
		},
	},
	{
		mode: Textual,
		relevant: func(c ContentFlags, a AccommodationFlags) bool {
			return c.Has(Text) || a.HasAny(AltText|AudioTranscript|DescTranscript)
		},
	},
}

// Evaluation holds both stages of an evaluation.
type Evaluation struct {
	Content        ContentFlags
	Accommodations AccommodationFlags
	Minimal        []ModeSet
	Sets           []ModeSet
}

// IsEmpty reports whether no mode combination was found.
func (e Evaluation) IsEmpty() bool {
	return len(e.Sets) == 0
}

// Analyze runs the full pipeline and keeps the minimal stage alongside the
// reported sets. Empty content has nothing to evaluate and yields no sets.
func Analyze(content ContentFlags, acc AccommodationFlags) Evaluation {
	eval := Evaluation{Content: content, Accommodations: acc}
	if content.IsEmpty() {
		return eval
	}
	eval.Minimal = MinimalSufficientSets(content, acc)
	eval.Sets = Expand(eval.Minimal, content, acc)
	return eval
}

// Evaluate returns the accessModeSufficient sets for the inputs: minimal sets
// first, each followed by its extensions.
func Evaluate(content ContentFlags, acc AccommodationFlags) []ModeSet {
	return Analyze(content, acc).Sets
}
