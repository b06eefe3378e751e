package server

import (
	"net/http"
	"regexp"
	"slices"
)

// DefaultAPIVersion is served when the client does not ask for a version.
const DefaultAPIVersion = "v1"

// HeaderAPIVersion carries the negotiated API version on responses.
const HeaderAPIVersion = "X-API-Version"

var (
	supportedAPIVersions = []string{"v1"}

	// application/vnd.nvidia.ffv.v1+json
	vendorMediaType = regexp.MustCompile(`application/vnd\.nvidia\.ffv\.(v[0-9]+)\+json`)
)

// negotiateAPIVersion reads the version from a vendor media type in the
// Accept header, falling back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaType.FindStringSubmatch(r.Header.Get("Accept"))
	if m == nil || !isValidAPIVersion(m[1]) {
		return DefaultAPIVersion
	}
	return m[1]
}

func isValidAPIVersion(v string) bool {
	return slices.Contains(supportedAPIVersions, v)
}
