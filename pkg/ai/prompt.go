package ai

import (
	"fmt"
	"strings"

	"github.com/draftly-ai/draftly/pkg/types"
)

const PROMPT_CONTENT_ASSISTANT_EN = `You are a content writing assistant grounded in the project's knowledge base.
Below is reference material retrieved for the current request. It may contain previously published articles, uploaded documents and scraped pages.
--------------------------------------
${knowledge}
--------------------------------------
Ground your drafts in the reference material when it is relevant. Do not invent facts that contradict it.
When the user asks you to draft or revise an article, respond with the full article content in Markdown.`

const PROMPT_SCHEMA_SOLT = `
Structured site data that matches the request:
--------------------------------------
${schema}
--------------------------------------`

const PROMPT_SESSION_NAME_EN = `Name this conversation based on the user's first message. Respond with a short title only, no quotes, at most six words, in the same language as the message.`

// BuildChatContext 将 RAG 上下文与用户消息装配为模型消息序列
func BuildChatContext(ragCtx types.RAGContext, query string) []*types.MessageContext {
	system := strings.ReplaceAll(PROMPT_CONTENT_ASSISTANT_EN, "${knowledge}", renderKnowledge(ragCtx.RelevantKnowledge))
	if len(ragCtx.SchemaData) > 0 {
		system += strings.ReplaceAll(PROMPT_SCHEMA_SOLT, "${schema}", renderSchemaData(ragCtx.SchemaData))
	}

	msgs := []*types.MessageContext{
		{
			Role:    types.USER_ROLE_SYSTEM,
			Content: system,
		},
	}

	for _, v := range ragCtx.ChatHistory {
		msgs = append(msgs, &types.MessageContext{
			Role:    v.Role,
			Content: v.Message,
		})
	}

	msgs = append(msgs, &types.MessageContext{
		Role:    types.USER_ROLE_USER,
		Content: query,
	})

	return msgs
}

func renderKnowledge(entries []*types.KnowledgeBaseEntry) string {
	if len(entries) == 0 {
		return "No reference material found for this request."
	}

	var b strings.Builder
	for i, v := range entries {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		b.WriteString(fmt.Sprintf("[source: %s]\n", v.Source))
		b.WriteString(v.Content)
	}
	return b.String()
}

func renderSchemaData(results []types.SchemaSearchResult) string {
	var b strings.Builder
	for i, v := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("- %s: %s", v.TableName, v.Title))
		if v.Content != "" {
			b.WriteString(": ")
			b.WriteString(v.Content)
		}
	}
	return b.String()
}
