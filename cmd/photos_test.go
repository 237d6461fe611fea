package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/mailgallery/config"
	"github.com/s0up4200/mailgallery/filter"
)

func TestPrintPresets(t *testing.T) {
	presets := map[string]config.FilterPreset{
		"large":  {Description: "Pictures over 1 MB", Expression: `isImage() and Size > 1000000`},
		"recent": {Expression: `Date > daysAgo(30)`},
	}

	m := filter.NewManager()
	require.NoError(t, m.RegisterFilters(map[string]string{
		"large":  presets["large"].Expression,
		"recent": presets["recent"].Expression,
	}))

	var buf bytes.Buffer
	require.NoError(t, printPresets(&buf, m, presets))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "large"))
	assert.Contains(t, lines[1], "Pictures over 1 MB")
	assert.Contains(t, lines[1], `isImage() and Size > 1000000`)
	assert.True(t, strings.HasPrefix(lines[2], "recent"))
	assert.Contains(t, lines[2], `Date > daysAgo(30)`)
}

func TestPrintPresetsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPresets(&buf, filter.NewManager(), nil))
	assert.Equal(t, "No filter presets configured.\n", buf.String())
}
