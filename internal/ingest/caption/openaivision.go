package caption

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

type visionClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var instance *visionClient
var once sync.Once

// GetOpenAIVisionClient builds the vision-capable describer. One
// shared client per process, reused across runs.
func GetOpenAIVisionClient(apiKey string, modelName string) Describer {
	once.Do(func() {
		logger = logger_i.NewLogger("vision_openai")
		if apiKey == "" {
			logger.Error("OpenAI API key not set")
			return
		}
		instance = &visionClient{
			client:    openai.NewClient(option.WithAPIKey(apiKey)),
			modelName: modelName,
		}
		logger.Info("OpenAI vision client created", "model", modelName)
	})

	if instance == nil {
		return nil
	}
	return instance
}

func (c *visionClient) DescribeImage(ctx context.Context, base64Image string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	dataURL := fmt.Sprintf("data:image/jpeg;base64,%s", base64Image)
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(config.CaptionPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		log.Error("vision call failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty vision response")
	}

	return completion.Choices[0].Message.Content, nil
}
