package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat(OutputText))
	assert.True(t, IsValidOutputFormat(OutputJSON))

	assert.False(t, IsValidOutputFormat(""))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat("JSON"))
}

func TestValidOutputFormats(t *testing.T) {
	assert.Equal(t, []string{OutputText, OutputJSON}, ValidOutputFormats())
}

func TestExitCodeForError(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCodeForError(nil))
	assert.Equal(t, ExitError, ExitCodeForError(errors.New("boom")))
}

func TestAddGlobalFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)

	t.Run("defaults", func(t *testing.T) {
		require.NoError(t, cmd.PersistentFlags().Parse(nil))
		assert.Equal(t, OutputText, flags.Output)
		assert.False(t, flags.Verbose)
		assert.False(t, flags.Quiet)
	})

	t.Run("parses values", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		flags := &GlobalFlags{}
		AddGlobalFlags(cmd, flags)

		require.NoError(t, cmd.PersistentFlags().Parse([]string{"--output", "json", "--verbose"}))
		assert.Equal(t, OutputJSON, flags.Output)
		assert.True(t, flags.Verbose)
	})
}

func TestBindGlobalFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := &GlobalFlags{}
	AddGlobalFlags(cmd, flags)
	require.NoError(t, cmd.PersistentFlags().Parse([]string{"--output", "json"}))

	v := viper.New()
	require.NoError(t, BindGlobalFlags(v, cmd))

	assert.Equal(t, "json", v.GetString("output"))
	assert.False(t, v.GetBool("verbose"))
}
