package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"wikiqa/internal/usecase"
)

var askQuestion string

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question against the knowledge base",
	Long: `Answer a question from indexed article content. With -q the answer is
printed once; without it an interactive loop starts (q or exit quits).

Examples:
  wikiqa ask -q "什么是机器学习"
  wikiqa ask`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (omit for interactive mode)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	r, st, err := loadRetriever()
	if err != nil {
		return err
	}
	defer st.Close()

	generator, err := newGenerator()
	if err != nil {
		return fmt.Errorf("failed to create generation client: %w", err)
	}

	uc := usecase.NewAnswerUseCase(r, generator, cfg.Retrieve.PromptChars)

	if askQuestion != "" {
		answer, err := uc.Answer(askQuestion)
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Print("\n请输入技术问题（输入q退出）: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "q" || question == "exit" {
			break
		}

		answer, err := uc.Answer(question)
		if err != nil {
			fmt.Printf("发生错误: %v\n", err)
			continue
		}
		fmt.Printf("\n专业回答：\n%s\n", answer)
		fmt.Println(strings.Repeat("-", 60))
	}
	return scanner.Err()
}
