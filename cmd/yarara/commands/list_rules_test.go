package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListRulesTable(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list-rules"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagRulesFiletype = ""
	}()

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	require.Contains(t, out, "ID")
	require.Contains(t, out, "YAML_API_VERSION_V1")
	require.Contains(t, out, "JSON_DEBUG_ENABLED")
	require.Contains(t, out, "2 rules loaded")
}

func TestListRulesFiletypeFilter(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list-rules", "--filetype", "json"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagRulesFiletype = ""
	}()

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	require.Contains(t, out, "JSON_DEBUG_ENABLED")
	require.NotContains(t, out, "YAML_API_VERSION_V1")
	require.Contains(t, out, "1 rules loaded")
}

func TestListRulesJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"list-rules", "--format", "json"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagRulesFiletype = ""
		flagFormat = "terminal"
	}()

	require.NoError(t, rootCmd.Execute())

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	require.Len(t, infos, 2)
	require.Equal(t, "JSON_DEBUG_ENABLED", infos[0].ID)
	require.Equal(t, "json", infos[0].Format)
	require.Equal(t, "WARNING", infos[0].Severity)
}

func TestListRulesInvalidFiletype(t *testing.T) {
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"list-rules", "--filetype", "toml"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		flagRulesFiletype = ""
	}()

	require.Error(t, rootCmd.Execute())
}
