package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kivybot-be",
	Short: "Backend gateway for the CodeKivy assistant",
	Long: `kivybot-be routes CodeKivy chat, voice and document-analysis
requests to the external AI providers (Gemini for vision, Groq for fast
text, Deepgram for speech) and keeps per-session document context in
memory.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}
