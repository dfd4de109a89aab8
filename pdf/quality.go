package pdf

// QualityProfile is a Ghostscript -dPDFSETTINGS preset
type QualityProfile string

const (
	// ProfileScreen targets 72 dpi images, maximum compression
	ProfileScreen QualityProfile = "/screen"

	// ProfileEbook targets 150 dpi images, balanced
	ProfileEbook QualityProfile = "/ebook"

	// ProfilePrinter targets 300 dpi images, minimal compression
	ProfilePrinter QualityProfile = "/printer"
)

// DefaultQuality is used for empty or unrecognised quality tokens
const DefaultQuality = "medium"

var qualityProfiles = map[string]QualityProfile{
	"low":    ProfileScreen,
	"medium": ProfileEbook,
	"high":   ProfilePrinter,
}

// ResolveQuality maps a quality token to its profile.
// Any token other than low, medium or high resolves to the medium profile.
func ResolveQuality(quality string) QualityProfile {
	if profile, ok := qualityProfiles[quality]; ok {
		return profile
	}
	return qualityProfiles[DefaultQuality]
}

// IsKnownQuality reports whether quality names a profile rather than falling back
func IsKnownQuality(quality string) bool {
	_, ok := qualityProfiles[quality]
	return ok
}
