package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermID_String(t *testing.T) {
	assert.Equal(t, "HP:0000001", TermID(1).String())
	assert.Equal(t, "HP:0000118", TermID(118).String())
	assert.Equal(t, "HP:5200001", TermID(5200001).String())
}

func TestParseTermID(t *testing.T) {
	tests := []struct {
		in   string
		want TermID
		ok   bool
	}{
		{"HP:0000118", 118, true},
		{"hp:0000118", 118, true},
		{"HP_0000001", 1, true},
		{"42", 42, true},
		{" HP:0000007 ", 7, true},
		{"HP:", 0, false},
		{"HP:abc", 0, false},
		{"OMIM:123", 0, false},
		{"", 0, false},
		{"HP:99999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTermID(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTermID_RoundTrip(t *testing.T) {
	for _, id := range []TermID{1, 118, 3812, 4322, 5200001} {
		got, err := ParseTermID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestMustParseTermID_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseTermID("nope") })
}

func TestParseGeneID(t *testing.T) {
	id, err := ParseGeneID("NCBIGene:2200")
	require.NoError(t, err)
	assert.Equal(t, GeneID(2200), id)
	assert.Equal(t, "NCBIGene:2200", id.String())

	_, err = ParseGeneID("FBN1")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestParseDiseaseID(t *testing.T) {
	kind, id, err := ParseDiseaseID("ORPHA:558")
	require.NoError(t, err)
	assert.Equal(t, Orpha, kind)
	assert.Equal(t, DiseaseID(558), id)
	assert.Equal(t, "ORPHA:558", FormatDiseaseID(kind, id))

	kind, id, err = ParseDiseaseID("OMIM:154700")
	require.NoError(t, err)
	assert.Equal(t, Omim, kind)
	assert.Equal(t, DiseaseID(154700), id)

	kind, _, err = ParseDiseaseID("154700")
	require.NoError(t, err)
	assert.Equal(t, Omim, kind)

	_, _, err = ParseDiseaseID("ORPHA:x")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestDiseaseKind_InformationContentKind(t *testing.T) {
	assert.Equal(t, ICOmim, Omim.InformationContentKind())
	assert.Equal(t, ICOrpha, Orpha.InformationContentKind())
}

func TestInformationContent_GetSet(t *testing.T) {
	var ic InformationContent
	for i, kind := range []InformationContentKind{ICGene, ICOmim, ICOrpha, ICCustom} {
		ic.Set(kind, float32(i+1))
	}
	assert.Equal(t, float32(1), ic.Get(ICGene))
	assert.Equal(t, float32(2), ic.Get(ICOmim))
	assert.Equal(t, float32(3), ic.Get(ICOrpha))
	assert.Equal(t, float32(4), ic.Get(ICCustom))
	assert.Equal(t, float32(0), ic.Get(InformationContentKind(99)))
}

func TestParseReleaseVersion(t *testing.T) {
	r, err := ParseReleaseVersion("hp/releases/2024-04-26")
	require.NoError(t, err)
	assert.Equal(t, ReleaseVersion{Year: 2024, Month: 4, Day: 26}, r)
	assert.Equal(t, "2024-04-26", r.String())
	assert.False(t, r.IsZero())
	assert.True(t, ReleaseVersion{}.IsZero())

	_, err = ParseReleaseVersion("April 2024")
	require.ErrorIs(t, err, ErrInvalidID)
}
