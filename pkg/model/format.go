package model

import (
	"fmt"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/validate"
)

// Format describes a SAS display or input format. It is immutable
// once constructed; equality is structural.
type Format struct {
	name   string
	width  int
	digits int
}

// UnspecifiedFormat is the distinguished sentinel denoting "no
// format".
var UnspecifiedFormat = Format{}

// NewFormat validates and constructs a Format. name must be 0-8 ASCII
// characters; width and digits must be in [0, 32767].
func NewFormat(name string, width, digits int) (Format, error) {
	if err := validate.MaxLen("format name", name, consts.MaxFormatNameLength); err != nil {
		return Format{}, err
	}
	if !validate.ASCII(name) {
		return Format{}, fmt.Errorf("format name must be ASCII")
	}
	if width < 0 || width > 32767 {
		return Format{}, fmt.Errorf("format width %d out of range 0..32767", width)
	}
	if digits < 0 || digits > 32767 {
		return Format{}, fmt.Errorf("format digits %d out of range 0..32767", digits)
	}
	return Format{name: name, width: width, digits: digits}, nil
}

// Name returns the format's name, 0-8 ASCII characters.
func (f Format) Name() string { return f.name }

// Width returns the format's display width.
func (f Format) Width() int { return f.width }

// Digits returns the format's digit count.
func (f Format) Digits() int { return f.digits }

// IsUnspecified reports whether f is the UNSPECIFIED sentinel.
func (f Format) IsUnspecified() bool {
	return f == UnspecifiedFormat
}

// String renders the format the way SAS prints it: "namew.d", or
// "name." if width and digits are both zero. Used only for logging.
func (f Format) String() string {
	if f.IsUnspecified() {
		return ""
	}
	if f.width == 0 && f.digits == 0 {
		return f.name + "."
	}
	return fmt.Sprintf("%s%d.%d", f.name, f.width, f.digits)
}
