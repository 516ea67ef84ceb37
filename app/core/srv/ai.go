package srv

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	oai "github.com/sashabaranov/go-openai"

	"github.com/draftly-ai/draftly/pkg/ai"
	"github.com/draftly-ai/draftly/pkg/ai/openai"
	"github.com/draftly-ai/draftly/pkg/types"
)

type EmbeddingAI interface {
	EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error)
	EmbeddingForDocument(ctx context.Context, content []string) (ai.EmbeddingResult, error)
}

type ChatAI interface {
	Query(ctx context.Context, query []*types.MessageContext) (ai.GenerateResponse, error)
	QueryStream(ctx context.Context, query []*types.MessageContext) (*oai.ChatCompletionStream, error)
}

type AIDriver interface {
	EmbeddingAI
	ChatAI
	Lang() string
	MsgIsOverLimit(msgs []*types.MessageContext) bool
}

type AIConfig struct {
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"`
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

type AI struct {
	driver *openai.Driver
}

func SetupAI(cfg AIConfig) *AI {
	return &AI{
		driver: openai.New(cfg.Token, cfg.Endpoint, ai.ModelName{
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
		}),
	}
}

func (s *AI) Lang() string {
	return s.driver.Lang()
}

func (s *AI) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.driver.EmbeddingForQuery(ctx, content)
}

func (s *AI) EmbeddingForDocument(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.driver.EmbeddingForDocument(ctx, content)
}

func (s *AI) Query(ctx context.Context, query []*types.MessageContext) (ai.GenerateResponse, error) {
	return s.driver.Query(ctx, query)
}

func (s *AI) QueryStream(ctx context.Context, query []*types.MessageContext) (*oai.ChatCompletionStream, error) {
	return s.driver.QueryStream(ctx, query)
}

// MsgIsOverLimit 粗略估算上下文 token 是否超限
func (s *AI) MsgIsOverLimit(msgs []*types.MessageContext) bool {
	tokenNum, err := ai.NumTokens(lo.Map(msgs, func(item *types.MessageContext, _ int) oai.ChatCompletionMessage {
		return oai.ChatCompletionMessage{
			Role:    item.Role.String(),
			Content: item.Content,
		}
	}), "")
	if err != nil {
		slog.Error("Failed to tik request token", slog.String("error", err.Error()))
		return false
	}

	return tokenNum > 80000
}
