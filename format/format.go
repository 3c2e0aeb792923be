package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	CBORFormat
)

var ErrBadFormat = errors.New("bad format")

// formats is indexed by Format.  The first alias is the canonical name.
var formats = []struct {
	aliases []string
	suffix  string
	binary  bool
}{
	JSONFormat: {aliases: []string{"json", "j"}, suffix: ".json"},
	YAMLFormat: {aliases: []string{"yaml", "y", "yml"}, suffix: ".yaml"},
	CBORFormat: {aliases: []string{"cbor", "c"}, suffix: ".cbor", binary: true},
}

func (f Format) valid() bool { return f >= 0 && int(f) < len(formats) }

// ParseFormat accepts a format name or one of its short aliases, in any
// case.
func ParseFormat(v string) (Format, error) {
	lv := strings.ToLower(v)
	for _, f := range AllFormats() {
		for _, a := range formats[f].aliases {
			if a == lv {
				return f, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
	return []byte(formats[f].aliases[0]), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }
func (f Format) IsCBOR() bool { return f == CBORFormat }

// IsBinary reports whether output in f should not be written to a terminal.
func (f Format) IsBinary() bool { return f.valid() && formats[f].binary }

// Suffix returns the file extension for this format, including the dot.
func (f Format) Suffix() string {
	if !f.valid() {
		return ""
	}
	return formats[f].suffix
}

// FromSuffix returns the format a file name's extension denotes, or
// JSONFormat when it denotes none.
func FromSuffix(name string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	if err != nil {
		return JSONFormat
	}
	return f
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, YAMLFormat, CBORFormat}
}
