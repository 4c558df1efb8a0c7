package pixelfont

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/bodgit/pixelfont/archive"
	"github.com/bodgit/pixelfont/bitmap"
)

func isJSON(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".json")
}

// ReadArchive reads an archive from file, in JSON if the file name ends in
// .json and binary otherwise.
func ReadArchive(file string) (*archive.Archive, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	a := archive.New()
	if isJSON(file) {
		err = json.Unmarshal(b, a)
	} else {
		err = a.UnmarshalBinary(b)
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

// WriteArchive writes a to file, in JSON if the file name ends in .json and
// binary otherwise.
func WriteArchive(file string, a *archive.Archive) error {
	var b []byte
	var err error
	if isJSON(file) {
		b, err = json.MarshalIndent(a, "", "\t")
	} else {
		b, err = a.MarshalBinary()
	}
	if err != nil {
		return err
	}

	return ioutil.WriteFile(file, b, 0o644)
}

// Open reads a font from an archive file. Every glyph must be the size
// configured for p.
func (p *PixelFont) Open(file string) (*Font, error) {
	a, err := ReadArchive(file)
	if err != nil {
		return nil, err
	}

	f := p.NewFont()
	if err := f.Load(a, bitmap.WithAllocator(p.alloc)); err != nil {
		return nil, err
	}
	p.logger.Printf("Read %d glyphs from \"%s\"\n", f.Len(), file)

	return f, nil
}

// Save writes f to an archive file.
func (p *PixelFont) Save(file string, f *Font) error {
	if err := WriteArchive(file, f.Archive()); err != nil {
		return err
	}
	p.logger.Printf("Wrote %d glyphs to \"%s\"\n", f.Len(), file)
	return nil
}
