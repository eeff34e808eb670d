package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_RenderTo(t *testing.T) {
	color.NoColor = true

	table := NewTable([]string{"ID", "STATUS"})
	table.AddRow([]string{"calc-1", "success"})
	table.AddRow([]string{"c2", "failed"})

	var buf bytes.Buffer
	table.RenderTo(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID      STATUS   ", lines[0])
	assert.Equal(t, "------  -------  ", lines[1])
	assert.Equal(t, "calc-1  success  ", lines[2])
	assert.Equal(t, "c2      failed   ", lines[3])
}

func TestFprintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FprintJSON(&buf, []string{"SFO", "EWR"}))
	assert.JSONEq(t, `["SFO","EWR"]`, buf.String())
}
