// Package candies extracts and tracks candy archives: jars packaging the
// TypeScript definitions and JavaScript for third-party APIs used by
// transpiled code. Processing pulls the .d.ts and js payloads out of every
// candy on the classpath, and a small store in the working directory
// remembers what was processed so an unchanged classpath is a no-op.
package candies

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nagarajutv11/jsweet/internal/config"
)

// Descriptor is the candy metadata read from META-INF/candy-metadata.json.
type Descriptor struct {
	Name              string   `json:"name"`
	Version           string   `json:"version"`
	TranspilerVersion string   `json:"transpilerVersion"`
	JsDir             string   `json:"jsDir,omitempty"`
	JsFiles           []string `json:"jsFiles,omitempty"`

	// Signature fingerprints the archive contents; computed at scan time,
	// not part of the metadata file.
	Signature string `json:"-"`
}

// IsCandy reports whether the archive declares itself a candy, either via
// the metadata entry or the candies maven group directory.
func IsCandy(r *zip.Reader) bool {
	for _, f := range r.File {
		if f.Name == config.CandyMetadataEntry {
			return true
		}
		if strings.HasPrefix(f.Name, config.CandyMavenGroupEntry) {
			return true
		}
	}
	return false
}

// ReadDescriptor reads and fingerprints the candy metadata of an archive.
// Archives carrying only the maven group marker get a descriptor derived
// from the archive name passed in.
func ReadDescriptor(r *zip.Reader, archiveName string) (*Descriptor, error) {
	var desc *Descriptor
	for _, f := range r.File {
		if f.Name != config.CandyMetadataEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", config.CandyMetadataEntry, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", config.CandyMetadataEntry, err)
		}
		desc = &Descriptor{}
		if err := json.Unmarshal(data, desc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", config.CandyMetadataEntry, err)
		}
		break
	}
	if desc == nil {
		desc = &Descriptor{Name: archiveName}
	}
	if desc.Name == "" {
		desc.Name = archiveName
	}
	desc.Signature = signature(r)
	return desc, nil
}

// signature hashes entry names and checksums, so any content change in the
// archive changes the fingerprint.
func signature(r *zip.Reader) string {
	entries := make([]string, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, fmt.Sprintf("%s:%d:%d", f.Name, f.CRC32, f.UncompressedSize64))
	}
	sort.Strings(entries)
	h := sha256.New()
	for _, e := range entries {
		io.WriteString(h, e)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
