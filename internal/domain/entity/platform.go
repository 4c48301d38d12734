package entity

// Platform identifies an external social platform a creator can link.
type Platform string

const (
	// PlatformInstagram is the Instagram Graph integration.
	PlatformInstagram Platform = "instagram"
	// PlatformTikTok is reserved for the TikTok integration.
	PlatformTikTok Platform = "tiktok"
)

// ParsePlatform validates a raw platform string.
func ParsePlatform(raw string) (Platform, bool) {
	switch Platform(raw) {
	case PlatformInstagram, PlatformTikTok:
		return Platform(raw), true
	default:
		return "", false
	}
}

// String returns the platform identifier as stored in the database.
func (p Platform) String() string {
	return string(p)
}
