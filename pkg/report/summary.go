package report

import (
	"slices"
	"time"

	"github.com/matzehuels/cargo-info/pkg/errors"
	"github.com/matzehuels/cargo-info/pkg/integrations/crates"
)

// Summary is a normalized, read-only view of one crate.
//
// Optional text fields are never nil: absent values read as "". Keywords and
// versions read as empty slices when the registry omitted them. Versions keep
// the registry's newest-first order.
type Summary struct {
	name          string
	latestVersion string
	description   string
	homepage      string
	documentation string
	repository    string
	license       string
	downloads     uint64
	keywords      []string
	createdAt     time.Time
	updatedAt     time.Time
	versions      []Version
}

// Version is one published release of a crate.
type Version struct {
	Number    string
	CreatedAt time.Time
	Downloads uint64
	Yanked    bool
	Features  map[string][]string
	License   string
}

// NewSummary normalizes a crates.io response.
//
// It fails with [errors.ErrCodeMalformedRecord] when the crate object, its
// name or its max_version is missing; such a record cannot be reported at all.
func NewSummary(raw *crates.Response) (*Summary, error) {
	if raw == nil || raw.Crate == nil {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "response has no crate object")
	}
	c := raw.Crate
	name := str(c.Name)
	if name == "" {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "crate %q: missing name", c.ID)
	}
	latest := str(c.MaxVersion)
	if latest == "" {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "crate %s: missing max_version", name)
	}

	s := &Summary{
		name:          name,
		latestVersion: latest,
		description:   str(c.Description),
		homepage:      str(c.Homepage),
		documentation: str(c.Documentation),
		repository:    str(c.Repository),
		downloads:     c.Downloads,
		keywords:      keywords(c.Keywords, raw.Keywords),
		createdAt:     instant(c.CreatedAt),
		updatedAt:     instant(c.UpdatedAt),
		versions:      make([]Version, 0, len(raw.Versions)),
	}
	for _, v := range raw.Versions {
		s.versions = append(s.versions, Version{
			Number:    v.Num,
			CreatedAt: instant(v.CreatedAt),
			Downloads: v.Downloads,
			Yanked:    v.Yanked,
			Features:  cloneFeatures(v.Features),
			License:   str(v.License),
		})
	}

	s.license = str(c.License)
	if c.License == nil {
		if v, ok := s.latest(); ok {
			s.license = v.License
		}
	}
	return s, nil
}

// keywords prefers the crate's own keyword list and falls back to the
// top-level keyword objects.
func keywords(own []string, objs []crates.Keyword) []string {
	if own != nil {
		return slices.Clone(own)
	}
	out := make([]string, 0, len(objs))
	for _, k := range objs {
		out = append(out, k.Keyword)
	}
	return out
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func instant(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}

// cloneFeatures deep-copies a feature map so the summary shares no memory
// with the decoded response or its callers.
func cloneFeatures(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for name, deps := range m {
		out[name] = slices.Clone(deps)
	}
	return out
}

// Name returns the crate name.
func (s *Summary) Name() string { return s.name }

// LatestVersion returns the registry's max_version.
func (s *Summary) LatestVersion() string { return s.latestVersion }

// Description returns the crate description, or "".
func (s *Summary) Description() string { return s.description }

// Homepage returns the homepage URL, or "".
func (s *Summary) Homepage() string { return s.homepage }

// Documentation returns the documentation URL, or "".
func (s *Summary) Documentation() string { return s.documentation }

// Repository returns the source repository URL, or "".
func (s *Summary) Repository() string { return s.repository }

// Downloads returns the all-time download count.
func (s *Summary) Downloads() uint64 { return s.downloads }

// CreatedAt returns when the crate was first published, or the zero time.
func (s *Summary) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns when the crate was last updated, or the zero time.
func (s *Summary) UpdatedAt() time.Time { return s.updatedAt }

// License returns the crate license, falling back to the license recorded on
// the latest version when the crate-level value is absent.
func (s *Summary) License() string { return s.license }

// Keywords returns a copy of the keyword list in registry order.
func (s *Summary) Keywords() []string { return slices.Clone(s.keywords) }

// Versions returns a copy of the version list, newest first. Feature maps
// are copied too.
func (s *Summary) Versions() []Version {
	out := slices.Clone(s.versions)
	for i := range out {
		out[i].Features = cloneFeatures(out[i].Features)
	}
	return out
}

// Features returns a copy of the feature map of the latest version, or nil
// if no version record matches [Summary.LatestVersion].
func (s *Summary) Features() map[string][]string {
	if v, ok := s.latest(); ok {
		return cloneFeatures(v.Features)
	}
	return nil
}

func (s *Summary) latest() (Version, bool) {
	for _, v := range s.versions {
		if v.Number == s.latestVersion {
			return v, true
		}
	}
	return Version{}, false
}
