package enums

import "fmt"

// VideoMediaKind names one of the five media slots on a video.
type VideoMediaKind string

const (
	VideoMediaKindThumbnail     VideoMediaKind = "thumbnail"
	VideoMediaKindThumbnailHalf VideoMediaKind = "thumbnail_half"
	VideoMediaKindBanner        VideoMediaKind = "banner"
	VideoMediaKindTrailer       VideoMediaKind = "trailer"
	VideoMediaKindVideo         VideoMediaKind = "video"
)

// VideoMediaKindsOrdered is the fixed order media slots are processed in.
var VideoMediaKindsOrdered = []VideoMediaKind{
	VideoMediaKindThumbnail,
	VideoMediaKindThumbnailHalf,
	VideoMediaKindBanner,
	VideoMediaKindTrailer,
	VideoMediaKindVideo,
}

// String returns the literal string for the kind.
func (k VideoMediaKind) String() string {
	return string(k)
}

// IsValid reports whether the kind is known.
func (k VideoMediaKind) IsValid() bool {
	for _, candidate := range VideoMediaKindsOrdered {
		if candidate == k {
			return true
		}
	}
	return false
}

// MediaType returns the payload type expected in this slot.
func (k VideoMediaKind) MediaType() MediaType {
	switch k {
	case VideoMediaKindTrailer, VideoMediaKindVideo:
		return MediaTypeVideo
	default:
		return MediaTypeImage
	}
}

// HasLifecycle reports whether the slot participates in the encoding lifecycle.
func (k VideoMediaKind) HasLifecycle() bool {
	return k == VideoMediaKindTrailer || k == VideoMediaKindVideo
}

// ParseVideoMediaKind converts raw input into a VideoMediaKind.
func ParseVideoMediaKind(value string) (VideoMediaKind, error) {
	for _, candidate := range VideoMediaKindsOrdered {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid video media kind %q", value)
}
