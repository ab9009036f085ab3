package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustVariable(t *testing.T, name string, number int) Variable {
	t.Helper()
	v, err := NewVariable(VariableSpec{Name: name, Number: number, Type: Numeric, Length: 8}, Basic)
	require.NoError(t, err)
	return v
}

func TestNewDatasetDescriptionRejectsDuplicateNamesCaseInsensitively(t *testing.T) {
	_, err := NewDatasetDescription(DatasetSpec{
		Name: "DEMO",
		Variables: []Variable{
			mustVariable(t, "REPEAT", 1),
			mustVariable(t, "repeat", 2),
		},
	}, Basic)
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple variables have the same name: REPEAT")
}

func TestNewDatasetDescriptionVariableLookupIsCaseInsensitive(t *testing.T) {
	d, err := NewDatasetDescription(DatasetSpec{
		Name:      "DEMO",
		Variables: []Variable{mustVariable(t, "AGE", 1)},
	}, Basic)
	require.NoError(t, err)

	v, ok := d.Variable("age")
	require.True(t, ok)
	require.Equal(t, "AGE", v.Name())

	_, ok = d.Variable("MISSING")
	require.False(t, ok)
}

func TestNewDatasetDescriptionVariablesReturnsCopy(t *testing.T) {
	d, err := NewDatasetDescription(DatasetSpec{
		Name:      "DEMO",
		Variables: []Variable{mustVariable(t, "AGE", 1)},
	}, Basic)
	require.NoError(t, err)

	vars := d.Variables()
	vars[0] = mustVariable(t, "SEX", 1)
	require.Equal(t, "AGE", d.Variables()[0].Name())
}

func TestNewDatasetDescriptionRejectsIllegalName(t *testing.T) {
	_, err := NewDatasetDescription(DatasetSpec{Name: "9BAD"}, Basic)
	require.Error(t, err)
}
