package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docqa-relay/internal/config"
	"docqa-relay/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	documentURL  string
	outputPath   string
	namesFile    string
	displayName  string
	pollInterval time.Duration
	timeout      time.Duration
	force        bool
)

// rootCmd uploads the source document once and records its file name
var rootCmd = &cobra.Command{
	Use:   "upload",
	Short: "Download the source PDF and upload it to the Gemini file store",
	Long: `Downloads the configured PDF (unless a local copy exists), uploads it to the
Gemini file store, waits until it is processed and writes the resulting file
name to the file names ledger read by the server.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUpload,
}

func init() {
	rootCmd.Flags().StringVar(&documentURL, "url", "", "document URL (http(s):// or supabase://bucket/path); defaults to DOCUMENT_URL")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "local PDF path; defaults to DOCUMENT_PATH")
	rootCmd.Flags().StringVar(&namesFile, "names-file", "", "file names ledger; defaults to FILE_NAMES_PATH")
	rootCmd.Flags().StringVar(&displayName, "display-name", "", "display name of the uploaded file; defaults to the PDF title")
	rootCmd.Flags().DurationVar(&pollInterval, "poll-interval", 0, "how often to check processing state; defaults to POLL_INTERVAL")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "maximum time to wait for processing; defaults to UPLOAD_TIMEOUT")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "download the PDF even if a local copy exists")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	if documentURL != "" {
		cfg.DocumentURL = documentURL
	}
	if outputPath != "" {
		cfg.DocumentPath = outputPath
	}
	if namesFile != "" {
		cfg.FileNamesPath = namesFile
	}
	if pollInterval > 0 {
		cfg.PollInterval = pollInterval
	}
	if timeout > 0 {
		cfg.UploadTimeout = timeout
	}
	if cfg.GetGeminiAPIKey() == "" {
		return fmt.Errorf("%w: set GEMINI_API_KEY in the environment or .env", domain.ErrAPIKeyMissing)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := config.NewUploadContainer(ctx, cfg)
	defer container.Sync()

	if container.UploadService == nil {
		return errors.New("upload service is not configured")
	}

	refs, err := container.UploadService.UploadDocument(ctx, domain.UploadOptions{
		ForceDownload: force,
		DisplayName:   displayName,
	})
	if err != nil {
		return err
	}

	for _, ref := range refs {
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s)\n", ref.Name, ref.URI)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nSUCCESS! File names written to %s. Deploy it alongside the server.\n", cfg.GetFileNamesPath())
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
