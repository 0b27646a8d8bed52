package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"kolibri/listcontent/internal/clock"
)

// Format selects an output writer.
type Format int

const (
	// FormatPlain is a human-readable listing.
	FormatPlain Format = iota
	// FormatINI is the key-file format read by image builders.
	FormatINI
)

// ErrUnknownFormat is returned for an unrecognised format name.
var ErrUnknownFormat = errors.New("unknown output format")

var formatNames = map[Format]string{
	FormatPlain: "plain",
	FormatINI:   "ini",
}

var _ pflag.Value = (*Format)(nil)

// FormatNames returns the accepted format names.
func FormatNames() []string {
	return []string{formatNames[FormatPlain], formatNames[FormatINI]}
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(name, n) {
			return f, nil
		}
	}
	return FormatPlain, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(FormatNames(), ", "))
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Set implements pflag.Value so an unknown format fails during flag parsing.
func (f *Format) Set(name string) error {
	parsed, err := ParseFormat(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// Writer renders a report.
type Writer interface {
	Write(w io.Writer, r *Report) error
}

// WriterOptions configures the writers; each writer reads only its own fields.
type WriterOptions struct {
	Color bool        // plain
	Clock clock.Clock // ini header timestamp
}

// NewWriter returns the writer for f.
func NewWriter(f Format, opts WriterOptions) (Writer, error) {
	switch f {
	case FormatPlain:
		return &PlainWriter{Color: opts.Color}, nil
	case FormatINI:
		c := opts.Clock
		if c == nil {
			c = clock.RealClock{}
		}
		return &KeyFileWriter{Clock: c}, nil
	default:
		return nil, fmt.Errorf("%w %s", ErrUnknownFormat, f)
	}
}
