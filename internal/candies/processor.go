package candies

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/nagarajutv11/jsweet/internal/config"
	"github.com/nagarajutv11/jsweet/internal/diagnostics"
	"github.com/nagarajutv11/jsweet/internal/java"
)

// Processor extracts what transpilation needs from the candy archives on
// the classpath: the embedded TypeScript definitions and the JavaScript
// payloads. Results are cached via the Store; an unchanged classpath skips
// extraction entirely.
type Processor struct {
	workingDir string
	classpath  []string
	handler    *diagnostics.Handler

	tsdefsDir string
	jsOutDir  string
	storePath string
}

// NewProcessor creates a processor. jsOutDir may be empty; extracted
// JavaScript then lands under the working directory.
func NewProcessor(workingDir string, classpath []string, jsOutDir string, handler *diagnostics.Handler) *Processor {
	if jsOutDir == "" {
		jsOutDir = filepath.Join(workingDir, filepath.FromSlash(config.CandiesJsDirName))
	}
	return &Processor{
		workingDir: workingDir,
		classpath:  classpath,
		handler:    handler,
		tsdefsDir:  filepath.Join(workingDir, filepath.FromSlash(config.CandiesTsdefsDirName)),
		jsOutDir:   jsOutDir,
		storePath:  filepath.Join(workingDir, filepath.FromSlash(config.CandiesStoreFileName)),
	}
}

// TsdefsDir returns the directory receiving extracted TypeScript definitions.
func (p *Processor) TsdefsDir() string { return p.tsdefsDir }

// Process scans the classpath for candy archives and extracts their
// payloads unless the store says nothing changed. Unreadable archives are
// reported and skipped; only store and filesystem failures abort.
func (p *Processor) Process() error {
	descs, archives := p.scanClasspath()

	store, err := OpenStore(p.storePath)
	if err != nil {
		return err
	}
	defer store.Close()

	same, err := store.Matches(descs)
	if err != nil {
		return err
	}
	if same {
		return nil
	}

	if err := p.extractAll(archives, descs); err != nil {
		return err
	}
	return store.Replace(descs)
}

// Touch clears the store so the next Process re-extracts everything.
func (p *Processor) Touch() error {
	store, err := OpenStore(p.storePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Clear()
}

func (p *Processor) scanClasspath() ([]*Descriptor, []string) {
	var descs []*Descriptor
	var archives []string
	for _, entry := range p.classpath {
		if !strings.HasSuffix(entry, ".jar") && !strings.HasSuffix(entry, ".zip") {
			continue
		}
		rc, err := zip.OpenReader(entry)
		if err != nil {
			p.handler.Report(diagnostics.NewError(diagnostics.ErrC001, java.Pos{File: entry},
				fmt.Sprintf("cannot read candy archive: %v", err)))
			continue
		}
		if !IsCandy(&rc.Reader) {
			rc.Close()
			continue
		}
		base := strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
		desc, err := ReadDescriptor(&rc.Reader, base)
		rc.Close()
		if err != nil {
			p.handler.Report(diagnostics.NewError(diagnostics.ErrC001, java.Pos{File: entry},
				fmt.Sprintf("cannot read candy metadata: %v", err)))
			continue
		}
		p.checkVersion(entry, desc)
		descs = append(descs, desc)
		archives = append(archives, entry)
	}
	return descs, archives
}

// checkVersion warns when a candy was built against another transpiler
// minor version. The candy is still processed; mismatches degrade, they
// do not fail.
func (p *Processor) checkVersion(archive string, desc *Descriptor) {
	candyVersion := desc.TranspilerVersion
	if candyVersion != "" && !strings.HasPrefix(candyVersion, "v") {
		candyVersion = "v" + candyVersion
	}
	if !semver.IsValid(candyVersion) || semver.MajorMinor(candyVersion) != semver.MajorMinor(config.Version) {
		p.handler.Report(diagnostics.NewWarning(diagnostics.WarnC002, java.Pos{File: archive},
			fmt.Sprintf("candy %s %s was built for transpiler %s, current is %s",
				desc.Name, desc.Version, desc.TranspilerVersion, config.Version)))
	}
}

// extractAll re-extracts every candy into fresh output directories. The
// extraction happens in a uniquely named staging directory that replaces
// the live one only on success, so a failed run never leaves half-written
// definitions behind.
func (p *Processor) extractAll(archives []string, descs []*Descriptor) error {
	staging := filepath.Join(p.workingDir, config.CandiesDirName, "staging-"+uuid.NewString())
	stagingTsdefs := filepath.Join(staging, "typings")
	stagingJs := filepath.Join(staging, "js")
	if err := os.MkdirAll(stagingTsdefs, 0o755); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	if err := os.MkdirAll(stagingJs, 0o755); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	for i, archive := range archives {
		if err := p.extractCandy(archive, descs[i], stagingTsdefs, stagingJs); err != nil {
			p.handler.Report(diagnostics.NewError(diagnostics.ErrC001, java.Pos{File: archive},
				fmt.Sprintf("cannot extract candy: %v", err)))
		}
	}

	if err := replaceDir(stagingTsdefs, p.tsdefsDir); err != nil {
		return err
	}
	return replaceDir(stagingJs, p.jsOutDir)
}

func (p *Processor) extractCandy(archive string, desc *Descriptor, tsdefsDir, jsDir string) error {
	rc, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer rc.Close()

	candyBase := strings.TrimSuffix(filepath.Base(archive), filepath.Ext(archive))
	for _, f := range rc.File {
		if strings.HasSuffix(f.Name, config.TsDefFileExt) &&
			(strings.HasPrefix(f.Name, config.CandySourcePrefix) || strings.HasPrefix(f.Name, config.CandyResourcePrefix)) {
			rel, ok := safeRel(f.Name)
			if !ok {
				return fmt.Errorf("entry %s escapes the extraction directory", f.Name)
			}
			if err := extractEntry(f, filepath.Join(tsdefsDir, rel)); err != nil {
				return err
			}
		}
	}
	for _, jsPath := range desc.JsFiles {
		f := findEntry(&rc.Reader, jsPath)
		if f == nil {
			return fmt.Errorf("declared js file %s missing from archive", jsPath)
		}
		rel, ok := safeRel(strings.TrimPrefix(strings.TrimPrefix(jsPath, desc.JsDir), "/"))
		if !ok {
			return fmt.Errorf("entry %s escapes the extraction directory", jsPath)
		}
		if err := extractEntry(f, filepath.Join(jsDir, candyBase, rel)); err != nil {
			return err
		}
	}
	return nil
}

// safeRel validates an archive entry name and converts it to a relative
// filesystem path under the extraction directory. Absolute names and names
// whose cleaned form climbs out of the directory are rejected, so a hostile
// archive cannot write outside the staging tree.
func safeRel(name string) (string, bool) {
	if strings.Contains(name, `\`) {
		return "", false
	}
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return rel, true
}

func findEntry(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func extractEntry(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func replaceDir(staged, live string) error {
	if err := os.RemoveAll(live); err != nil {
		return fmt.Errorf("clearing %s: %w", live, err)
	}
	if err := os.MkdirAll(filepath.Dir(live), 0o755); err != nil {
		return fmt.Errorf("preparing %s: %w", live, err)
	}
	if err := os.Rename(staged, live); err != nil {
		// Rename fails across filesystems (a user-configured output dir on
		// another mount); copy instead.
		if copyErr := copyTree(staged, live); copyErr != nil {
			return fmt.Errorf("installing %s: %w", live, copyErr)
		}
	}
	return nil
}

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
