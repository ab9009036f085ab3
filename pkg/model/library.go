package model

import (
	"fmt"
	"time"

	"github.com/go-xport/xport-kit/pkg/consts"
	"github.com/go-xport/xport-kit/pkg/validate"
)

// LibraryDescription is the immutable metadata for an XPORT library:
// its real header provenance plus the single dataset it carries. This
// package models only the single-dataset case; a second MEMBER HEADER
// encountered on read is reported through
// xport.MultipleDatasetsError rather than represented here.
type LibraryDescription struct {
	dataset          DatasetDescription
	sourceOS         string
	sourceSASVersion string
	createTime       time.Time
	modifiedTime     time.Time
}

// LibrarySpec is the constructor input for NewLibraryDescription.
type LibrarySpec struct {
	Dataset          DatasetDescription
	SourceOS         string
	SourceSASVersion string
	CreateTime       time.Time
	ModifiedTime     time.Time
}

// NewLibraryDescription validates spec and constructs a
// LibraryDescription.
func NewLibraryDescription(spec LibrarySpec, strictness Strictness) (LibraryDescription, error) {
	if err := validate.MaxLen("library source OS", spec.SourceOS, consts.MaxSourceLength); err != nil {
		return LibraryDescription{}, err
	}
	if err := validate.MaxLen("library source SAS version", spec.SourceSASVersion, consts.MaxSourceLength); err != nil {
		return LibraryDescription{}, err
	}
	if strictness == FDASubmission {
		if err := validate.RequireASCII("library source OS", spec.SourceOS); err != nil {
			return LibraryDescription{}, err
		}
		if err := validate.RequireASCII("library source SAS version", spec.SourceSASVersion); err != nil {
			return LibraryDescription{}, err
		}
	}
	if spec.Dataset.Name() == "" {
		return LibraryDescription{}, fmt.Errorf("library must carry exactly one dataset")
	}
	return LibraryDescription{
		dataset:          spec.Dataset,
		sourceOS:         spec.SourceOS,
		sourceSASVersion: spec.SourceSASVersion,
		createTime:       spec.CreateTime,
		modifiedTime:     spec.ModifiedTime,
	}, nil
}

func (l LibraryDescription) Dataset() DatasetDescription { return l.dataset }
func (l LibraryDescription) SourceOS() string            { return l.sourceOS }
func (l LibraryDescription) SourceSASVersion() string     { return l.sourceSASVersion }
func (l LibraryDescription) CreateTime() time.Time        { return l.createTime }
func (l LibraryDescription) ModifiedTime() time.Time      { return l.modifiedTime }
