package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/validate"
)

// DatasetDescription is the immutable metadata for one dataset
// embedded in an XPORT library: its name, variables, and provenance.
// Exactly one DatasetDescription exists per file under this package's
// supported scope (spec.md's MultipleDatasetsNotSupported boundary).
type DatasetDescription struct {
	name             string
	label            string
	datasetType      string
	sourceOS         string
	sourceSASVersion string
	variables        []Variable
	createTime       time.Time
	modifiedTime     time.Time
}

// DatasetSpec is the constructor input for NewDatasetDescription.
type DatasetSpec struct {
	Name             string
	Label            string
	DatasetType      string
	SourceOS         string
	SourceSASVersion string
	Variables        []Variable
	CreateTime       time.Time
	ModifiedTime     time.Time
}

// NewDatasetDescription validates spec and constructs a
// DatasetDescription. Variable names must be unique
// case-insensitively and the variable count must not exceed
// consts.MaxVariables.
func NewDatasetDescription(spec DatasetSpec, strictness Strictness) (DatasetDescription, error) {
	if err := validate.Name("dataset", spec.Name); err != nil {
		return DatasetDescription{}, err
	}
	if err := validate.MaxLen("dataset label", spec.Label, consts.MaxLabelLength); err != nil {
		return DatasetDescription{}, err
	}
	if err := validate.MaxLen("dataset type", spec.DatasetType, consts.MaxDatasetTypeLength); err != nil {
		return DatasetDescription{}, err
	}
	if err := validate.MaxLen("source OS", spec.SourceOS, consts.MaxSourceLength); err != nil {
		return DatasetDescription{}, err
	}
	if err := validate.MaxLen("source SAS version", spec.SourceSASVersion, consts.MaxSourceLength); err != nil {
		return DatasetDescription{}, err
	}
	if strictness == FDASubmission {
		for _, field := range []struct{ name, value string }{
			{"dataset label", spec.Label},
			{"dataset type", spec.DatasetType},
			{"source OS", spec.SourceOS},
			{"source SAS version", spec.SourceSASVersion},
		} {
			if err := validate.RequireASCII(field.name, field.value); err != nil {
				return DatasetDescription{}, err
			}
		}
	}
	if len(spec.Variables) > consts.MaxVariables {
		return DatasetDescription{}, fmt.Errorf("dataset %q has %d variables, exceeding the %d limit",
			spec.Name, len(spec.Variables), consts.MaxVariables)
	}
	seen := make(map[string]string, len(spec.Variables))
	for _, v := range spec.Variables {
		key := strings.ToUpper(v.Name())
		if prior, ok := seen[key]; ok {
			return DatasetDescription{}, fmt.Errorf("multiple variables have the same name: %s", prior)
		}
		seen[key] = v.Name()
	}
	vars := make([]Variable, len(spec.Variables))
	copy(vars, spec.Variables)
	return DatasetDescription{
		name:             spec.Name,
		label:            spec.Label,
		datasetType:      spec.DatasetType,
		sourceOS:         spec.SourceOS,
		sourceSASVersion: spec.SourceSASVersion,
		variables:        vars,
		createTime:       spec.CreateTime,
		modifiedTime:     spec.ModifiedTime,
	}, nil
}

func (d DatasetDescription) Name() string             { return d.name }
func (d DatasetDescription) Label() string             { return d.label }
func (d DatasetDescription) DatasetType() string       { return d.datasetType }
func (d DatasetDescription) SourceOS() string          { return d.sourceOS }
func (d DatasetDescription) SourceSASVersion() string  { return d.sourceSASVersion }
func (d DatasetDescription) CreateTime() time.Time     { return d.createTime }
func (d DatasetDescription) ModifiedTime() time.Time   { return d.modifiedTime }

// Variables returns the dataset's variables in NAMESTR order. The
// returned slice is a copy; callers may not mutate the description
// through it.
func (d DatasetDescription) Variables() []Variable {
	out := make([]Variable, len(d.variables))
	copy(out, d.variables)
	return out
}

// Variable returns the variable named name (case-insensitively), and
// reports whether one was found.
func (d DatasetDescription) Variable(name string) (Variable, bool) {
	upper := strings.ToUpper(name)
	for _, v := range d.variables {
		if strings.ToUpper(v.Name()) == upper {
			return v, true
		}
	}
	return Variable{}, false
}
