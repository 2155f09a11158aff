package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingKeyCompletions_Keys(t *testing.T) {
	keys, directive := settingKeyCompletions("card.")
	assert.Equal(t, []string{
		"card.actors=", "card.platform=", "card.rating=",
		"card.summary=", "card.title=", "card.year=",
	}, keys)
	assert.NotZero(t, directive&cobra.ShellCompDirectiveNoSpace)

	all, _ := settingKeyCompletions("")
	assert.Contains(t, all, "search.genres=")
	assert.Contains(t, all, "card.actors=")

	none, _ := settingKeyCompletions("footer")
	assert.Empty(t, none)
}

func TestSettingKeyCompletions_Values(t *testing.T) {
	values, directive := settingKeyCompletions("search.genres=")
	assert.Equal(t, []string{"search.genres=true", "search.genres=false"}, values)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestSettingKeyCompletions_RoundTripThroughSet(t *testing.T) {
	keys, _ := settingKeyCompletions("")
	require.NotEmpty(t, keys)

	s := &SettingsResponse{}
	for _, k := range keys {
		require.NoError(t, applySettingChanges(s, []string{k + "true"}), k)
	}
	assert.Len(t, s.SearchFields, 5)
	assert.Len(t, s.CardFields, 6)
}

func TestCompleteTitleArgs(t *testing.T) {
	kinds, _ := completeTitleArgs(titleCmd, nil, "")
	assert.Equal(t, []string{"movie\tFeature film", "tv\tTV series"}, kinds)

	ids, directive := completeTitleArgs(titleCmd, []string{"movie"}, "")
	assert.Empty(t, ids)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCompleteConfigPaths(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))

	require.NoError(t, os.MkdirAll("data", 0755))
	require.NoError(t, os.WriteFile(filepath.Join("data", "config.toml"), []byte("[server]\n"), 0600))

	paths, directive := completeConfigPaths(configTestCmd, nil, "")
	assert.Equal(t, []string{filepath.Join("data", "config.toml")}, paths)
	assert.Equal(t, cobra.ShellCompDirectiveDefault, directive)
}
