package pixelfont

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bodgit/pixelfont/archive"
	"github.com/bodgit/pixelfont/bitmap"
	"golang.org/x/image/bmp"
)

// Format is an image file format glyphs can be exported as.
type Format string

// Supported export formats.
const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

var imageExts = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

type glyph struct {
	key    string
	file   string
	bitmap *bitmap.Bitmap
}

// GlyphKey returns the key a glyph image file name stands for. The base name
// without extension is either the character itself or its code point
// written as U+XXXX, so "." is found in "..png" or "U+002E.png".
func GlyphKey(file string) (string, bool) {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	if archive.ValidKey(name) {
		return name, true
	}

	if len(name) > 2 && strings.EqualFold(name[:2], "U+") {
		n, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return "", false
		}
		if key := string(rune(n)); archive.ValidKey(key) {
			return key, true
		}
	}

	return "", false
}

// GlyphFilename returns the file name a glyph is exported under. Code points
// are used so that keys differing only in case don't collide.
func GlyphFilename(key string, format Format) string {
	r, _ := utf8.DecodeRuneInString(key)
	return fmt.Sprintf("U+%04X.%s", r, format)
}

func (p *PixelFont) findGlyphFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		return nil, nil, errors.New("not a directory")
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, apart from the
			// glyph for "." itself
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				if key, _ := GlyphKey(file); key != "." {
					return nil
				}
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := imageExts[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *PixelFont) decodeGlyph(file string) (*bitmap.Bitmap, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return toBitmap(m, p.size, bitmap.WithAllocator(p.alloc))
}

func (p *PixelFont) glyphWorker(ctx context.Context, in <-chan string, out chan<- glyph) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			key, ok := GlyphKey(file)
			if !ok {
				p.logger.Printf("Skipping \"%s\", name is not a single character\n", file)
				continue
			}

			b, err := p.decodeGlyph(file)
			switch err {
			case nil:
			case errWrongSize:
				p.logger.Printf("Skipping \"%s\", glyphs must be %dx%d\n", file, p.size, p.size)
				continue
			default:
				errc <- err
				return
			}

			select {
			case out <- glyph{key, file, b}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc
}

func (p *PixelFont) collectGlyphs(in <-chan glyph, f *Font) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		files := make(map[string]string)
		for g := range in {
			if other, ok := files[g.key]; ok {
				g.bitmap.Release()
				errc <- fmt.Errorf("pixelfont: glyph %q found in both \"%s\" and \"%s\"", g.key, other, g.file)
				return
			}
			if err := f.Set(g.key, g.bitmap); err != nil {
				errc <- err
				return
			}
			files[g.key] = g.file
			p.logger.Printf("Imported %q from \"%s\"\n", g.key, g.file)
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Import builds a font from every glyph image found under dir. Files are
// named after the character they draw, see GlyphKey. Images that are the
// wrong size or aren't named after a character are skipped.
func (p *PixelFont) Import(ctx context.Context, dir string) (*Font, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := p.findGlyphFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	glyphs := make(chan glyph)
	workers := make([]<-chan error, 0, p.workers)
	for i := 0; i < p.workers; i++ {
		workers = append(workers, p.glyphWorker(ctx, files, glyphs))
	}

	// Close glyphs once every worker has finished, passing their errors on
	done := make(chan error, len(workers))
	go func() {
		defer close(done)
		defer close(glyphs)
		for err := range mergeErrors(workers...) {
			done <- err
		}
	}()
	errcList = append(errcList, done)

	f := p.NewFont()
	errcList = append(errcList, p.collectGlyphs(glyphs, f))

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	return f, nil
}

// Export writes every glyph of f to dir as an image in the given format,
// creating dir if needed.
func (p *PixelFont) Export(ctx context.Context, f *Font, dir string, format Format) error {
	var encode func(*os.File, image.Image) error
	switch format {
	case FormatPNG:
		encode = func(w *os.File, m image.Image) error { return png.Encode(w, m) }
	case FormatBMP:
		encode = func(w *os.File, m image.Image) error { return bmp.Encode(w, m) }
	default:
		return fmt.Errorf("pixelfont: unsupported format %q", format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, k := range f.Keys() {
		if err := ctx.Err(); err != nil {
			return err
		}

		b, _ := f.Glyph(k)
		file := filepath.Join(dir, GlyphFilename(k, format))
		if err := writeImage(file, b, encode); err != nil {
			return err
		}
		p.logger.Printf("Exported %q to \"%s\"\n", k, file)
	}

	return nil
}

func writeImage(file string, m image.Image, encode func(*os.File, image.Image) error) error {
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := encode(w, m); err != nil {
		return err
	}
	return w.Close()
}
