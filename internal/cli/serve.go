package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"wikiqa/internal/adapter/cache"
	"wikiqa/internal/server"
	"wikiqa/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve question answering over HTTP",
	Long: `Expose the QA pipeline as an HTTP service: POST /qa with a JSON body
{"question": "..."} returns {"answer": "..."}. Retrieval results are
cached per question for the configured TTL.

Examples:
  wikiqa serve
  wikiqa serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":5000", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	r, st, err := loadRetriever()
	if err != nil {
		return err
	}
	defer st.Close()

	generator, err := newGenerator()
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}

	cached := cache.New(r, cfg.Retrieve.CacheSize, time.Duration(cfg.Retrieve.CacheTTLSecs)*time.Second)
	uc := usecase.NewAnswerUseCase(cached, generator, cfg.Retrieve.PromptChars)

	fmt.Printf("Serving QA on %s (POST /qa)\n", serveAddr)
	return http.ListenAndServe(serveAddr, server.New(uc))
}
