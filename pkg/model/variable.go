package model

import (
	"fmt"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/validate"
)

// VariableType is the NAMESTR ntype tag: 1 for NUMERIC, 2 for
// CHARACTER. There is no third kind.
type VariableType int

const (
	// Numeric variables occupy an IBM-360 double slot 2-8 bytes wide.
	Numeric VariableType = 1
	// Character variables occupy a fixed-width blank-padded ASCII slot.
	Character VariableType = 2
)

func (t VariableType) String() string {
	switch t {
	case Numeric:
		return "NUMERIC"
	case Character:
		return "CHARACTER"
	default:
		return "UNKNOWN"
	}
}

// Variable describes one column of a dataset: its name, storage
// width, and display/input formats. Variable is immutable once
// constructed by NewVariable.
type Variable struct {
	name         string
	number       int
	typ          VariableType
	length       int
	label        string
	outputFormat Format
	justify      Justification
	inputFormat  Format
}

// VariableSpec is the constructor input for NewVariable. It exists
// because Variable has more optional fields than NewVariable's
// positional-argument form could keep readable.
type VariableSpec struct {
	Name         string
	Number       int
	Type         VariableType
	Length       int
	Label        string
	OutputFormat Format
	Justify      Justification
	InputFormat  Format
}

// NewVariable validates spec and constructs a Variable. strictness
// governs whether label must be ASCII and whether CHARACTER length is
// capped at 200 (FDASubmission) or 32767 (Basic).
func NewVariable(spec VariableSpec, strictness Strictness) (Variable, error) {
	if err := validate.Name("variable", spec.Name); err != nil {
		return Variable{}, err
	}
	if spec.Number < 1 || spec.Number > consts.MaxVariables {
		return Variable{}, fmt.Errorf("variable number %d out of range 1..%d", spec.Number, consts.MaxVariables)
	}
	switch spec.Type {
	case Numeric:
		if spec.Length < consts.MinNumericLength || spec.Length > consts.MaxNumericLength {
			return Variable{}, fmt.Errorf("NUMERIC variable %q length %d out of range %d..%d",
				spec.Name, spec.Length, consts.MinNumericLength, consts.MaxNumericLength)
		}
	case Character:
		maxLen := consts.MaxCharacterLengthBasic
		if strictness == FDASubmission {
			maxLen = consts.MaxCharacterLengthFDA
		}
		if spec.Length < 1 || spec.Length > maxLen {
			return Variable{}, fmt.Errorf("CHARACTER variable %q length %d out of range 1..%d",
				spec.Name, spec.Length, maxLen)
		}
	default:
		return Variable{}, fmt.Errorf("variable %q has unrecognized type %d", spec.Name, spec.Type)
	}
	if err := validate.MaxLen("variable label", spec.Label, consts.MaxLabelLength); err != nil {
		return Variable{}, err
	}
	if strictness == FDASubmission {
		if err := validate.RequireASCII("variable label", spec.Label); err != nil {
			return Variable{}, err
		}
	}
	return Variable{
		name:         spec.Name,
		number:       spec.Number,
		typ:          spec.Type,
		length:       spec.Length,
		label:        spec.Label,
		outputFormat: spec.OutputFormat,
		justify:      spec.Justify,
		inputFormat:  spec.InputFormat,
	}, nil
}

func (v Variable) Name() string               { return v.name }
func (v Variable) Number() int                 { return v.number }
func (v Variable) Type() VariableType          { return v.typ }
func (v Variable) Length() int                 { return v.length }
func (v Variable) Label() string               { return v.label }
func (v Variable) OutputFormat() Format        { return v.outputFormat }
func (v Variable) Justify() Justification      { return v.justify }
func (v Variable) InputFormat() Format         { return v.inputFormat }
