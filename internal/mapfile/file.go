package mapfile

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

const (
	defaultExt   = ".json"
	saveFileMode = 0o644
)

// ResolvePath joins the save directory and a file name. Absolute names are
// returned as is; names without an extension get ".json".
func ResolvePath(dir, name string) string {
	if filepath.Ext(name) == "" {
		name += defaultExt
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// Save writes doc to path atomically, creating the parent directory. A failed
// save leaves any existing file intact.
func Save(path string, doc Document) error {
	bz, err := Encode(doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(ErrIOFailure, "create %s: %v", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return eris.Wrapf(ErrIOFailure, "create temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(saveFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrapf(ErrIOFailure, "chmod %s: %v", tmpName, err)
	}
	if _, err := tmp.Write(bz); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return eris.Wrapf(ErrIOFailure, "write %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(ErrIOFailure, "close %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return eris.Wrapf(ErrIOFailure, "rename to %s: %v", path, err)
	}
	return nil
}

// Load reads and decodes the document at path.
func Load(path string) (Document, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return Document{}, eris.Wrapf(ErrIOFailure, "read %s: %v", path, err)
	}
	doc, err := Decode(bz)
	if err != nil {
		return Document{}, eris.Wrapf(err, "load %s", path)
	}
	return doc, nil
}
