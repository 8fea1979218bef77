package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyramidpush/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pyramidpush",
	Short: "Push-up pyramid workout timer",
	Long: `Pyramid Push guides a push-up pyramid: one rep, then two, up to the
peak and back down, with audio cues for every rep and timed rests
between sets. Without a subcommand it opens the desktop window.`,
	SilenceUsage: true,
	RunE:         runDesktop,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/pyramidpush/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/pyramidpush")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// e.g. PYRAMIDPUSH_AUDIO_BACKEND for audio.backend
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}
