package summarize

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

type openAIClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var instance *openAIClient
var once sync.Once

func GetOpenAISummarizer(apiKey string, modelName string) Summarizer {
	once.Do(func() {
		logger = logger_i.NewLogger("summarizer_openai")
		if apiKey == "" {
			logger.Error("OpenAI API key not set")
			return
		}
		instance = &openAIClient{
			client:    openai.NewClient(option.WithAPIKey(apiKey)),
			modelName: modelName,
		}
		logger.Info("OpenAI summarizer created", "model", modelName)
	})

	if instance == nil {
		return nil
	}
	return instance
}

func (c *openAIClient) Summarize(ctx context.Context, text string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.SummaryPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		log.Error("summary call failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty summary response")
	}

	return completion.Choices[0].Message.Content, nil
}
