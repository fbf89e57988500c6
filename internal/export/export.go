package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/hyperview/internal/logger"
)

// Format is one output file type.
type Format string

const (
	FormatSTL Format = "stl"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// AllFormats lists every supported format.
var AllFormats = []Format{FormatSTL, FormatSVG, FormatPNG}

// ParseFormat maps a file extension or name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatSTL, FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", name)
	}
}

// Exporter writes snapshots into a directory.
type Exporter struct {
	Dir           string
	Width, Height int
	Formats       []Format
}

// Write stores the snapshot as <Dir>/<base>.<format> for every configured
// format, writing the files concurrently. It returns the written paths in
// format order.
func (e *Exporter) Write(base string, s Snapshot) ([]string, error) {
	if err := e.mkdir(); err != nil {
		return nil, err
	}
	formats := e.Formats
	if len(formats) == 0 {
		formats = AllFormats
	}

	start := time.Now()
	paths := make([]string, len(formats))
	var g errgroup.Group
	for i, f := range formats {
		paths[i] = filepath.Join(e.Dir, base+"."+string(f))
		g.Go(func() error {
			return e.writeFile(paths[i], f, base, s)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("snapshot exported",
		zap.Strings("files", paths),
		zap.Duration("took", time.Since(start)))
	return paths, nil
}

func (e *Exporter) mkdir() error {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return fmt.Errorf("export dir: %w", err)
	}
	return nil
}

func (e *Exporter) writeFile(path string, f Format, name string, s Snapshot) error {
	return create(path, func(w io.Writer) error {
		switch f {
		case FormatSTL:
			return WriteSTL(w, name, s.Buffers)
		case FormatSVG:
			return WriteSVG(w, s, e.Width, e.Height)
		case FormatPNG:
			return WritePNG(w, s, e.Width, e.Height)
		default:
			return fmt.Errorf("unknown export format %q", f)
		}
	})
}

// create writes a file through a buffered writer.
func create(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	if err := write(w); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return w.Flush()
}

// BaseName returns a timestamped file stem for interactive exports.
func BaseName(t time.Time) string {
	return "hyperview-" + t.Format("20060102-150405")
}
