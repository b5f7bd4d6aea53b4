package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpograph/testutil"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testutil.Small(), WithIndent(), WithInformationContent()))
	assert.True(t, strings.Contains(buf.String(), "\n  \"terms\""))

	doc, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-16", doc.Release)
	assert.Len(t, doc.Terms, len(testutil.SmallTerms))
	assert.Len(t, doc.Genes, len(testutil.SmallGenes))
	assert.Len(t, doc.Omim, len(testutil.SmallOmim))
	assert.Len(t, doc.Orpha, len(testutil.SmallOrpha))

	var fits *JSONTerm
	for i := range doc.Terms {
		if doc.Terms[i].ID == "HP:0009999" {
			fits = &doc.Terms[i]
		}
	}
	require.NotNil(t, fits)
	assert.True(t, fits.Obsolete)
	assert.Equal(t, "HP:0001250", fits.Replacement)
	assert.Equal(t, []string{"HP:0000707"}, fits.Parents)
	require.NotNil(t, fits.IC)

	assert.Equal(t, "ORPHA:166", doc.Orpha[0].ID)
	assert.Equal(t, []string{"HP:0011097"}, doc.Orpha[0].Terms)
	assert.Equal(t, "NCBIGene:5", doc.Genes[0].ID)
}

func TestWriteJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testutil.Chain()))
	assert.False(t, strings.Contains(strings.TrimSpace(buf.String()), "\n"))
	assert.NotContains(t, buf.String(), "\"ic\"")
}
