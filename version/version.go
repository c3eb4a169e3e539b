// Package version describes the library version and the build it came from.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-audiobuf/device/portaudio"
)

// rawVersion is the release version in dotted hex. Release builds override it with
// -ldflags "-X github.com/cwbudde/algo-audiobuf/version.rawVersion=1.00.01.00".
var rawVersion = "1.00.00.01"

// Version packs major.minor.patch.test into one byte each, most significant first.
type Version uint32

// New assembles a Version from its four parts.
func New(major, minor, patch, test uint8) Version {
	return Version(uint32(major)<<24 | uint32(minor)<<16 | uint32(patch)<<8 | uint32(test))
}

// Current returns the version of this build.
func Current() Version { return Parse(rawVersion) }

// Parse reads up to four dot-separated hex parts. Missing parts are zero, as
// are parts that are not valid hex; only the low byte of each part is kept.
func Parse(s string) Version {
	var v uint32
	for i, part := range strings.Split(s, ".") {
		if i >= 4 {
			break
		}
		n, err := strconv.ParseUint(strings.TrimSpace(part), 16, 32)
		if err != nil {
			n = 0
		}
		v |= uint32(n&0xff) << ((3 - i) * 8)
	}
	return Version(v)
}

// Major returns the first part.
func (v Version) Major() uint8 { return uint8(v >> 24) }

// Minor returns the second part.
func (v Version) Minor() uint8 { return uint8(v >> 16) }

// Patch returns the third part.
func (v Version) Patch() uint8 { return uint8(v >> 8) }

// Test returns the fourth part.
func (v Version) Test() uint8 { return uint8(v) }

// String formats v in hex: "Unknown" for zero, "X.YY" when patch and test
// are zero, "X.YY.ZZ.WW" otherwise.
func (v Version) String() string {
	switch {
	case v == 0:
		return "Unknown"
	case v&0xFFFF == 0:
		return fmt.Sprintf("%X.%02X", v.Major(), v.Minor())
	default:
		return fmt.Sprintf("%X.%02X.%02X.%02X", v.Major(), v.Minor(), v.Patch(), v.Test())
	}
}

// WithoutTestNumber clears the test part.
func (v Version) WithoutTestNumber() Version { return v & 0xFFFFFF00 }

// WithoutPatchOrTestNumbers clears the patch and test parts.
func (v Version) WithoutPatchOrTestNumbers() Version { return v & 0xFFFF0000 }

// IsTestVersion reports whether v names a test build. Test builds carry a
// non-zero test part; versions between 1.17.02.54 and 1.18.02.00 follow the
// older scheme where every build except 1.18.00.00 was a test build.
func (v Version) IsTestVersion() bool {
	legacy := v > New(0x01, 0x17, 0x02, 0x54) && v < New(0x01, 0x18, 0x02, 0x00) && v != New(0x01, 0x18, 0x00, 0x00)
	return legacy || (v > New(0x01, 0x18, 0x02, 0x00) && v.WithoutTestNumber() != v)
}

// SourceInfo describes the source tree a binary was built from.
type SourceInfo struct {
	URL      string
	Revision string
	Date     string
	Dirty    bool
	Mixed    bool // built against replaced modules
	Package  bool // built from a module archive rather than a checkout
}

// CurrentSourceInfo reads the VCS stamps the Go toolchain embeds in the binary.
func CurrentSourceInfo() SourceInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return SourceInfo{}
	}
	return sourceInfoFrom(bi)
}

func sourceInfoFrom(bi *debug.BuildInfo) SourceInfo {
	info := SourceInfo{
		URL:   bi.Main.Path,
		Mixed: bi.Main.Replace != nil,
	}
	hasVCS := false
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
			hasVCS = true
		case "vcs.time":
			info.Date = s.Value
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	info.Package = !hasVCS && bi.Main.Version != "" && bi.Main.Version != "(devel)"
	return info
}

// URLWithRevision returns "url@revision", or "" when either is unknown.
func (s SourceInfo) URLWithRevision() string {
	if s.URL == "" || s.Revision == "" {
		return ""
	}
	return s.URL + "@" + s.Revision
}

// StateString summarises the tree state: "+dirty" and/or "+mixed", or
// "clean" when neither applies, followed by "-pkg" for module archives.
func (s SourceInfo) StateString() string {
	var b strings.Builder
	if s.Dirty {
		b.WriteString("+dirty")
	}
	if s.Mixed {
		b.WriteString("+mixed")
	}
	if b.Len() == 0 {
		b.WriteString("clean")
	}
	if s.Package {
		b.WriteString("-pkg")
	}
	return b.String()
}

// BuildFeatures lists optional components compiled into this build.
func BuildFeatures() string {
	return feature("PORTAUDIO", portaudio.Enabled)
}

func feature(name string, enabled bool) string {
	if enabled {
		return "+" + name
	}
	return "-" + name
}

// String returns a one-line description of the build: version, platform,
// source, state and features.
func String() string {
	src := CurrentSourceInfo()
	parts := []string{
		Current().String(),
		runtime.GOOS + "/" + runtime.GOARCH,
	}
	if u := src.URLWithRevision(); u != "" {
		parts = append(parts, u)
	}
	if src.Date != "" {
		parts = append(parts, "("+src.Date+")")
	}
	parts = append(parts, src.StateString(), BuildFeatures())
	return strings.Join(parts, " ")
}
