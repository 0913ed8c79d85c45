package editor

import (
	"github.com/atotto/clipboard"
	"github.com/rotisserie/eris"

	"github.com/Garsondee/Symbol-Sense/internal/mapfile"
)

// copyDocument puts the encoded document on the system clipboard.
func copyDocument(doc mapfile.Document) error {
	bz, err := mapfile.Encode(doc)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(string(bz)); err != nil {
		return eris.Wrapf(mapfile.ErrIOFailure, "clipboard write: %v", err)
	}
	return nil
}

// pasteDocument decodes a document from the system clipboard.
func pasteDocument() (mapfile.Document, error) {
	s, err := clipboard.ReadAll()
	if err != nil {
		return mapfile.Document{}, eris.Wrapf(mapfile.ErrIOFailure, "clipboard read: %v", err)
	}
	return mapfile.Decode([]byte(s))
}
