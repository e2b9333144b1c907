package usecase

import (
	"fmt"
	"strings"

	"wikiqa/internal/domain"
	"wikiqa/internal/port"
)

// FallbackAnswer is returned when retrieval finds nothing relevant.
// The remote model is not consulted in that case.
const FallbackAnswer = "根据现有知识库，暂时无法回答该问题"

const promptPreamble = `你现在是一个智能问答助手，请参考以下文档内容，简明扼要地回答用户问题。请严格参考原文的内容回答，如果文档内容与问题无关，请回答"暂无相关信息"。`

// AnswerUseCase assembles retrieved passages into a bounded prompt and
// delegates generation to the remote model.
type AnswerUseCase struct {
	retriever   port.Retriever
	generator   port.Generator
	promptChars int
}

// NewAnswerUseCase creates an answer use case. promptChars bounds each
// passage inside the prompt; zero selects the default of 1000 runes.
func NewAnswerUseCase(retriever port.Retriever, generator port.Generator, promptChars int) *AnswerUseCase {
	if promptChars <= 0 {
		promptChars = 1000
	}
	return &AnswerUseCase{
		retriever:   retriever,
		generator:   generator,
		promptChars: promptChars,
	}
}

// Answer resolves a question against the knowledge base. The error
// return covers retrieval failures only; generation-service failures
// come back as descriptive answer text, never as an error.
func (u *AnswerUseCase) Answer(query string) (string, error) {
	passages, err := u.retriever.Retrieve(query)
	if err != nil {
		return "", fmt.Errorf("retrieval failed: %w", err)
	}
	if len(passages) == 0 {
		return FallbackAnswer, nil
	}

	prompt := BuildPrompt(query, passages, u.promptChars)
	completion := u.generator.Generate(prompt)

	switch completion.Kind {
	case port.CompletionOK:
		return completion.Text, nil
	case port.CompletionAPIError:
		return fmt.Sprintf("抱歉，服务暂时不可用。错误信息：API请求失败，状态码：%d，响应：%s",
			completion.StatusCode, completion.Body), nil
	default:
		return fmt.Sprintf("请求失败: %v", completion.Err), nil
	}
}

// BuildPrompt formats passages and the question into the strict-answer
// prompt. Each passage is labeled by rank and cut to promptChars runes.
func BuildPrompt(query string, passages []domain.Passage, promptChars int) string {
	var context strings.Builder
	for i, p := range passages {
		if i > 0 {
			context.WriteString("\n")
		}
		fmt.Fprintf(&context, "[文档 %d] %s", i+1, domain.TruncateRunes(p.Excerpt, promptChars))
	}

	return fmt.Sprintf(`%s

相关文档：
%s

当前问题：%s
请基于上下文用中文给出专业回答：`, promptPreamble, context.String(), query)
}
