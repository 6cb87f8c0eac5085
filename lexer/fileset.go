package lexer

import (
	"time"

	"github.com/tidwall/btree"
)

// FileRecord describes one file opened during a compilation.
type FileRecord struct {
	Path    string
	ModTime time.Time
	// Opens counts how many times the file was opened; headers without
	// include guards show up here with Opens > 1.
	Opens int
}

// FileSet is an ordered registry of every file a Stream has opened,
// keyed and iterated by path. The zero value is ready to use.
//
// The preprocessor uses it to answer "was this already included", and
// drivers use it to emit make-style dependency lists.
type FileSet struct {
	tree btree.Map[string, *FileRecord]
}

func (fs *FileSet) record(path string, mtime time.Time) {
	if rec, ok := fs.tree.Get(path); ok {
		rec.Opens++
		return
	}
	fs.tree.Set(path, &FileRecord{Path: path, ModTime: mtime, Opens: 1})
}

// Contains reports whether path was ever opened.
func (fs *FileSet) Contains(path string) bool {
	_, ok := fs.tree.Get(path)
	return ok
}

// Lookup returns the record for path, if any.
func (fs *FileSet) Lookup(path string) (FileRecord, bool) {
	rec, ok := fs.tree.Get(path)
	if !ok {
		return FileRecord{}, false
	}
	return *rec, true
}

func (fs *FileSet) Len() int {
	return fs.tree.Len()
}

// Range calls fn for each record in ascending path order until fn
// returns false.
func (fs *FileSet) Range(fn func(FileRecord) bool) {
	fs.tree.Scan(func(_ string, rec *FileRecord) bool {
		return fn(*rec)
	})
}
