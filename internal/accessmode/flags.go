package accessmode

import "strings"

// ContentFlags is the set of content formats present in a publication.
type ContentFlags uint8

const (
	Text ContentFlags = 1 << iota
	Image
	Audio
	Video
)

var contentOrder = [...]ContentFlags{Text, Image, Audio, Video}

// Has reports whether every format in f is present.
func (c ContentFlags) Has(f ContentFlags) bool {
	return f != 0 && c&f == f
}

// HasAny reports whether at least one format in f is present.
func (c ContentFlags) HasAny(f ContentFlags) bool {
	return c&f != 0
}

// IsEmpty reports whether no known format is present.
func (c ContentFlags) IsEmpty() bool {
	return c&(Text|Image|Audio|Video) == 0
}

// Strings returns the tag names of the present formats in declaration order.
func (c ContentFlags) Strings() []string {
	var out []string
	for _, f := range contentOrder {
		if c.Has(f) {
			out = append(out, f.name())
		}
	}
	return out
}

func (c ContentFlags) String() string {
	return strings.Join(c.Strings(), ",")
}

func (c ContentFlags) name() string {
	switch c {
	case Text:
		return "text"
	case Image:
		return "image"
	case Audio:
		return "audio"
	case Video:
		return "video"
	}
	return ""
}

// ParseContent maps tags to content flags. Tag names match case-insensitively;
// the single-letter codes T, I, A and V are accepted as well. Tags that match
// nothing are returned as ignored rather than treated as errors.
func ParseContent(tags []string) (ContentFlags, []string) {
	var (
		flags   ContentFlags
		ignored []string
	)
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		switch strings.ToLower(trimmed) {
		case "text", "t":
			flags |= Text
		case "image", "i":
			flags |= Image
		case "audio", "a":
			flags |= Audio
		case "video", "v":
			flags |= Video
		default:
			ignored = append(ignored, trimmed)
		}
	}
	return flags, ignored
}

// AccommodationFlags is the set of authored alternatives a publication
// declares.
type AccommodationFlags uint8

const (
	AltText AccommodationFlags = 1 << iota
	AudioTranscript
	Captions
	DescTranscript
	AudioDescription
)

var accommodationOrder = [...]AccommodationFlags{AltText, AudioTranscript, Captions, DescTranscript, AudioDescription}

// Has reports whether every accommodation in f is available.
func (a AccommodationFlags) Has(f AccommodationFlags) bool {
	return f != 0 && a&f == f
}

// HasAny reports whether at least one accommodation in f is available.
func (a AccommodationFlags) HasAny(f AccommodationFlags) bool {
	return a&f != 0
}

// IsEmpty reports whether no known accommodation is available.
func (a AccommodationFlags) IsEmpty() bool {
	return a&(AltText|AudioTranscript|Captions|DescTranscript|AudioDescription) == 0
}

// Strings returns the tag names of the available accommodations in
// declaration order.
func (a AccommodationFlags) Strings() []string {
	var out []string
	for _, f := range accommodationOrder {
		if a.Has(f) {
			out = append(out, f.name())
		}
	}
	return out
}

func (a AccommodationFlags) String() string {
	return strings.Join(a.Strings(), ",")
}

func (a AccommodationFlags) name() string {
	switch a {
	case AltText:
		return "altText"
	case AudioTranscript:
		return "audioTranscript"
	case Captions:
		return "captions"
	case DescTranscript:
		return "descTranscript"
	case AudioDescription:
		return "audioDescription"
	}
	return ""
}

// ParseAccommodations maps tags to accommodation flags, case-insensitively.
// Tags that match nothing are returned as ignored.
func ParseAccommodations(tags []string) (AccommodationFlags, []string) {
	var (
		flags   AccommodationFlags
		ignored []string
	)
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		matched := false
		for _, f := range accommodationOrder {
			if strings.EqualFold(trimmed, f.name()) {
				flags |= f
				matched = true
				break
			}
		}
		if !matched {
			ignored = append(ignored, trimmed)
		}
	}
	return flags, ignored
}

// EnabledAccommodations returns the accommodations that can apply to the given
// content: alt text needs images, a transcript needs audio or video, and
// captions and both description forms need video.
func EnabledAccommodations(content ContentFlags) AccommodationFlags {
	var enabled AccommodationFlags
	if content.Has(Image) {
		enabled |= AltText
	}
	if content.HasAny(Audio | Video) {
		enabled |= AudioTranscript
	}
	if content.Has(Video) {
		enabled |= Captions | DescTranscript | AudioDescription
	}
	return enabled
}

// Applicable drops the accommodations that cannot apply to content.
func (a AccommodationFlags) Applicable(content ContentFlags) AccommodationFlags {
	return a & EnabledAccommodations(content)
}
