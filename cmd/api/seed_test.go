package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFixtures(t *testing.T) {
	dir := t.TempDir()
	patientsFile := filepath.Join(dir, "patients.json")
	staffFile := filepath.Join(dir, "medicalStaff.json")
	require.NoError(t, os.WriteFile(patientsFile, []byte(`[{"_id": 1, "first_name": "Ada"}, {"_id": 2, "first_name": "Grace"}]`), 0o600))
	require.NoError(t, os.WriteFile(staffFile, []byte(`[{"_id": 1, "second_name": "House", "role": "Doctor"}]`), 0o600))

	patients, doctors, err := readFixtures(patientsFile, staffFile)
	require.NoError(t, err)
	assert.Len(t, patients, 2)
	assert.Equal(t, "Grace", patients[1].FirstName)
	require.Len(t, doctors, 1)
	assert.Equal(t, "House", doctors[0].SecondName)
}

func TestReadFixturesOnlyStaff(t *testing.T) {
	staffFile := filepath.Join(t.TempDir(), "medicalStaff.json")
	require.NoError(t, os.WriteFile(staffFile, []byte(`[]`), 0o600))

	patients, doctors, err := readFixtures("", staffFile)
	require.NoError(t, err)
	assert.Nil(t, patients)
	assert.Empty(t, doctors)
}

func TestReadFixturesBadFile(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "patients.json")
	require.NoError(t, os.WriteFile(bad, []byte(`not json`), 0o600))

	_, _, err := readFixtures(bad, "")
	assert.ErrorContains(t, err, "patients.json")

	_, _, err = readFixtures(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)
}
