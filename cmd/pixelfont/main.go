package main

import (
	"context"
	"fmt"
	"image/png"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/pixelfont"
	"github.com/bodgit/pixelfont/codec"
	"github.com/bodgit/pixelfont/pool"
	"github.com/urfave/cli/v2"
)

const defaultSize = 16

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newPixelFont(c *cli.Context) (*pixelfont.PixelFont, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		if c.App.ErrWriter != nil {
			logger.SetOutput(c.App.ErrWriter)
		} else {
			logger.SetOutput(os.Stderr)
		}
	}

	opts := []pixelfont.Option{
		pixelfont.WithWorkers(c.Int("workers")),
	}
	if c.Bool("pool") {
		opts = append(opts, pixelfont.WithAllocator(pool.New(pool.DefaultMaxFree)))
	}

	return pixelfont.New(c.Int("size"), logger, opts...)
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "pixelfont"
	app.Usage = "Pixel font archive utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "size",
			EnvVars: []string{"PIXELFONT_SIZE"},
			Value:   defaultSize,
			Usage:   "glyph size in pixels, one of 8, 16, 32 or 64",
		},
		&cli.BoolFlag{
			Name:    "pool",
			EnvVars: []string{"PIXELFONT_POOL"},
			Usage:   "recycle glyph buffers",
		},
		&cli.IntFlag{
			Name:    "workers",
			EnvVars: []string{"PIXELFONT_WORKERS"},
			Usage:   "number of images to decode at once, defaults to the number of CPUs",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Build an archive from a directory of glyph images",
			Description: "Each image is named after its character, either the character itself or U+XXXX. The archive is written as JSON if its name ends in .json.",
			ArgsUsage:   "DIRECTORY ARCHIVE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := newPixelFont(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := p.Import(context.Background(), c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := p.Save(c.Args().Get(1), f); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Write every glyph in an archive as an image",
			Description: "",
			ArgsUsage:   "ARCHIVE DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: string(pixelfont.FormatPNG),
					Usage: "image format, png or bmp",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := newPixelFont(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := p.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := p.Export(context.Background(), f, c.Args().Get(1), pixelfont.Format(c.String("format"))); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Draw a line of text as a PNG image",
			Description: "",
			ArgsUsage:   "ARCHIVE TEXT FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "device pixels per glyph pixel",
				},
				&cli.IntFlag{
					Name:  "spacing",
					Value: 1,
					Usage: "glyph pixels between characters",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := newPixelFont(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := p.Open(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := pixelfont.Render(f, c.Args().Get(1), &pixelfont.FaceOptions{
					Scale:   c.Int("scale"),
					Spacing: c.Int("spacing"),
				})
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				w, err := os.Create(c.Args().Get(2))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer w.Close()

				if err := png.Encode(w, m); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "dump",
			Usage:       "Print every glyph in an archive as hex",
			Description: "",
			ArgsUsage:   "ARCHIVE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				p, err := newPixelFont(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := p.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, k := range f.Keys() {
					b, _ := f.Glyph(k)
					fmt.Fprintf(c.App.Writer, "%q\t%s\n", k, codec.ToHex(b))
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an archive between binary and JSON",
			Description: "The output format is JSON if the file name ends in .json, binary otherwise.",
			ArgsUsage:   "ARCHIVE FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				a, err := pixelfont.ReadArchive(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := pixelfont.WriteArchive(c.Args().Get(1), a); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
