package archive

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// vcsDirs are left out of packages built from a working tree.
var vcsDirs = []string{".git", ".jj", ".hg", ".svn"}

// walkEntry is one file, directory or link below the walk root.
type walkEntry struct {
	path string // on disk
	name string // slash-separated, relative to the root
	d    fs.DirEntry
}

// walker yields the entries of a directory tree in lexical order.
type walker struct {
	// ignores are filepath.Match patterns tested against entry base names.
	// A matching directory is skipped with everything below it.
	ignores []string
}

func (w walker) entries(root string) iter.Seq2[walkEntry, error] {
	return func(yield func(walkEntry, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}

			if w.ignored(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(walkEntry{path: path, name: filepath.ToSlash(rel), d: d}, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield(walkEntry{}, err)
		}
	}
}

func (w walker) ignored(name string) bool {
	for _, pattern := range w.ignores {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
