// Package reference classifies user-submitted URLs into repository or
// organization references. Classification is a pure string operation; whether
// the referenced resource actually exists is only known after a fetch.
package reference

import "strings"

// Kind discriminates the classification result.
type Kind int

const (
	// KindInvalid means the URL matched neither reference shape.
	KindInvalid Kind = iota
	// KindRepo means the URL names a single repository (owner/repo).
	KindRepo
	// KindOrg means the URL names an organization.
	KindOrg
)

// RepoReference identifies a single repository. Both fields are non-empty.
type RepoReference struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// OrgReference identifies an organization.
type OrgReference struct {
	Org string `json:"org"`
}

// Classification is the immutable result of classifying one submitted URL.
// Exactly one of Repo/Org is set when Kind is not KindInvalid.
type Classification struct {
	Kind Kind
	Repo RepoReference
	Org  OrgReference
}

// OrgName returns the organization name of an org classification, or "".
func (c Classification) OrgName() string {
	if c.Kind != KindOrg {
		return ""
	}
	return c.Org.Org
}

// Classify parses a URL-shaped string. One path segment after the host is an
// organization, two segments are a repository, anything else is invalid.
// Trailing slashes and the http/https scheme never change the result.
func Classify(raw string) Classification {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" {
		return Classification{Kind: KindInvalid}
	}

	// Scheme and host are tolerated but not required; only the path counts.
	raw = strings.TrimPrefix(raw, "http://")
	raw = strings.TrimPrefix(raw, "https://")

	segments := make([]string, 0, 4)
	for _, seg := range strings.Split(raw, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return Classification{Kind: KindInvalid}
	}

	// The first segment is the host when it looks like one ("github.com").
	// Bare "owner/repo" input keeps all segments as path.
	if strings.Contains(segments[0], ".") {
		segments = segments[1:]
	}

	switch len(segments) {
	case 1:
		return Classification{Kind: KindOrg, Org: OrgReference{Org: segments[0]}}
	case 2:
		return Classification{Kind: KindRepo, Repo: RepoReference{Owner: segments[0], Repo: segments[1]}}
	default:
		return Classification{Kind: KindInvalid}
	}
}
