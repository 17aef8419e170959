// Package versioning computes monotonically increasing version numbers for
// output artifacts.
package versioning

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jeujai/ScenarioCreativeAutomation/internal/storage"
)

// Allocator resolves the next unused version suffix per (product, aspect).
// When a remote store is configured it is the source of truth; any listing
// failure degrades to the local scan, never to a hard error. Versions are
// computed freshly for every artifact write: no caching across calls.
type Allocator struct {
	remote       storage.BlobStore
	remotePrefix string
	logger       zerolog.Logger
}

// NewAllocator builds an allocator. remote may be nil for local-only runs;
// remotePrefix is the object-key prefix mirroring the outputs tree.
func NewAllocator(remote storage.BlobStore, remotePrefix string, logger zerolog.Logger) *Allocator {
	return &Allocator{
		remote:       remote,
		remotePrefix: remotePrefix,
		logger:       logger.With().Str("component", "versioning").Logger(),
	}
}

// NextVersion returns max(existing versions)+1 for baseFilename in
// productDir, or 1 when nothing matches.
func (a *Allocator) NextVersion(ctx context.Context, productDir, baseFilename string) int {
	pattern := versionPattern(baseFilename)

	if a.remote != nil {
		prefix := path.Join(a.remotePrefix, filepath.Base(productDir)) + "/"
		objects, err := a.remote.List(ctx, prefix)
		if err != nil {
			a.logger.Warn().Err(err).Str("prefix", prefix).Msg("remote listing failed, falling back to local scan")
		} else {
			max := 0
			for _, obj := range objects {
				if v, ok := matchVersion(pattern, path.Base(obj.Name)); ok && v > max {
					max = v
				}
			}
			return max + 1
		}
	}

	return a.localNext(productDir, pattern)
}

func (a *Allocator) localNext(productDir string, pattern *regexp.Regexp) int {
	entries, err := os.ReadDir(productDir)
	if err != nil {
		return 1
	}
	max := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if v, ok := matchVersion(pattern, entry.Name()); ok && v > max {
			max = v
		}
	}
	return max + 1
}

func versionPattern(baseFilename string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(baseFilename) + `_v(\d+)\.png$`)
}

func matchVersion(pattern *regexp.Regexp, name string) (int, bool) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// VersionedName formats the artifact filename for a version.
func VersionedName(baseFilename string, version int) string {
	return fmt.Sprintf("%s_v%d.png", baseFilename, version)
}
