// Package cleanup prunes a freshly rendered project tree: it deletes the files of
// the feature that was not selected and then removes every directory left empty.
package cleanup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	cerrors "shireesh.com/cutter/internal/errors"
	"shireesh.com/cutter/internal/output"
)

// Report lists what a cleanup run removed, relative to the project root.
type Report struct {
	Set     string
	Removed []string
	Missing []string
	Pruned  []string
}

// Cleaner removes paths below Root on Fs.
type Cleaner struct {
	Fs   afero.Fs
	Root string

	// DryRun records what would be removed without touching Fs.
	DryRun bool

	// gone tracks paths removed (or, in dry-run mode, planned for removal) so
	// that emptiness checks see the post-removal state.
	gone map[string]bool
}

// New returns a Cleaner operating on the real file system.
func New(root string) *Cleaner {
	return &Cleaner{Fs: afero.NewOsFs(), Root: root}
}

// Run deletes the feature set that grpcEnabled deselects and prunes empty directories.
func (c *Cleaner) Run(grpcEnabled bool) (*Report, error) {
	if err := CheckDisjoint(GRPC, OpenAPI); err != nil {
		return nil, err
	}

	set := Select(grpcEnabled)
	output.Debug("selected feature set for removal", "set", set.Name, "root", c.Root)

	report := &Report{Set: set.Name}

	removed, missing, err := c.RemoveObjects(set.Paths)
	report.Removed, report.Missing = removed, missing
	if err != nil {
		return report, err
	}

	pruned, err := c.PruneEmptyDirs()
	report.Pruned = pruned
	if err != nil {
		return report, err
	}

	return report, nil
}

// RemoveObjects deletes each path, which may be a file or a directory tree.
// Paths that do not exist are skipped and returned as missing.
func (c *Cleaner) RemoveObjects(paths []string) (removed, missing []string, err error) {
	for _, p := range paths {
		rel, err := cleanRelative(p)
		if err != nil {
			return removed, missing, err
		}

		if err := c.checkParents(rel); err != nil {
			return removed, missing, err
		}

		full := filepath.Join(c.Root, filepath.FromSlash(rel))
		if c.isGone(full) {
			missing = append(missing, rel)
			continue
		}

		info, err := lstat(c.Fs, full)
		if errors.Is(err, fs.ErrNotExist) {
			output.Debug("path already absent", "path", rel)
			missing = append(missing, rel)
			continue
		}
		if err != nil {
			return removed, missing, removalError(rel, err)
		}

		if !c.DryRun {
			if info.IsDir() {
				err = c.Fs.RemoveAll(full)
			} else {
				err = c.Fs.Remove(full)
			}
			if err != nil {
				return removed, missing, removalError(rel, err)
			}
		}

		c.markGone(full)
		output.Debug("removed", "path", rel, "dir", info.IsDir(), "dryRun", c.DryRun)
		removed = append(removed, rel)
	}

	return removed, missing, nil
}

// PruneEmptyDirs removes every directory below Root that has no entries once its
// own subdirectories have been pruned. Root itself is kept.
func (c *Cleaner) PruneEmptyDirs() ([]string, error) {
	var pruned []string
	if _, err := c.prune(c.Root, &pruned); err != nil {
		return pruned, err
	}
	sort.Strings(pruned)
	return pruned, nil
}

// prune reports whether dir is empty after its children were processed.
func (c *Cleaner) prune(dir string, pruned *[]string) (bool, error) {
	entries, err := afero.ReadDir(c.Fs, dir)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", dir, err)
	}

	remaining := 0
	for _, e := range entries {
		child := filepath.Join(dir, e.Name())
		if c.isGone(child) {
			continue
		}

		if !e.IsDir() || e.Mode()&os.ModeSymlink != 0 {
			remaining++
			continue
		}

		empty, err := c.prune(child, pruned)
		if err != nil {
			return false, err
		}
		if !empty {
			remaining++
			continue
		}

		if !c.DryRun {
			if err := c.Fs.Remove(child); err != nil {
				return false, removalError(c.rel(child), err)
			}
		}
		c.markGone(child)
		*pruned = append(*pruned, c.rel(child))
	}

	return remaining == 0, nil
}

func (c *Cleaner) markGone(p string) {
	if c.gone == nil {
		c.gone = make(map[string]bool)
	}
	c.gone[filepath.Clean(p)] = true
}

// isGone reports whether p or one of its ancestors was removed.
func (c *Cleaner) isGone(p string) bool {
	for cur := filepath.Clean(p); ; {
		if c.gone[cur] {
			return true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return false
		}
		cur = parent
	}
}

func (c *Cleaner) rel(p string) string {
	r, err := filepath.Rel(c.Root, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(r)
}

// cleanRelative rejects paths that are absolute or climb out of the root.
func cleanRelative(p string) (string, error) {
	slashed := filepath.ToSlash(p)
	if slashed == "" || path.IsAbs(slashed) || filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: %q is not relative to the project root", cerrors.ErrUnsafePath, p)
	}

	clean := path.Clean(slashed)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q leaves the project root", cerrors.ErrUnsafePath, p)
	}
	return clean, nil
}

// checkParents rejects rel when a directory between Root and rel is a symlink,
// since removal would then act on whatever the link points to.
func (c *Cleaner) checkParents(rel string) error {
	parts := strings.Split(rel, "/")
	cur := c.Root
	for _, part := range parts[:len(parts)-1] {
		cur = filepath.Join(cur, part)
		info, err := lstat(c.Fs, cur)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return removalError(rel, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %q passes through symlink %q", cerrors.ErrUnsafePath, rel, c.rel(cur))
		}
	}
	return nil
}

func lstat(fsys afero.Fs, name string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return fsys.Stat(name)
}

func removalError(rel string, err error) error {
	return &cerrors.DetailError{
		Type:     "removal failed",
		Message:  err.Error(),
		Location: rel,
		Hint:     "check file permissions in the generated project",
		Cause:    errors.Join(cerrors.ErrRemoval, err),
	}
}
