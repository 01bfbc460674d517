package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codekivy/kivybot-be/service"
)

// extractCmd runs the text extractor against a local file, useful for
// checking what a document will look like to the assistant before
// uploading it through the API.
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract text from a local document",
	Long: `Runs the PDF/DOCX/TXT extractor on a local file and prints the
character count together with the preview summary the server would log.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}

		extractService := service.NewExtractService(zap.NewNop())
		text, err := extractService.Extract(filepath.Base(path), "", data)
		if err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}

		preview := service.Summarize(text, 3000)
		fmt.Printf("File: %s\n", filepath.Base(path))
		fmt.Printf("Extracted: %d characters\n\n", len(text))
		fmt.Println(preview)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
