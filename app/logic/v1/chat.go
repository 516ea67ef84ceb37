package v1

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/pkg/ai"
	pkgerrors "github.com/draftly-ai/draftly/pkg/errors"
	"github.com/draftly-ai/draftly/pkg/i18n"
	"github.com/draftly-ai/draftly/pkg/safe"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type ChatLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	return &ChatLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *ChatLogic) CreateChatSession(projectID, userID string) (*types.ChatSession, error) {
	session := types.ChatSession{
		ID:        utils.GenUniqIDStr(),
		ProjectID: projectID,
		UserID:    userID,
		Title:     fmt.Sprintf("Session At: %s", time.Now().Format("02/01 15:04:05")),
		CreatedAt: types.GetCurrentTimestamp(),
	}
	if err := l.core.Store().ChatSessionStore().Create(l.ctx, session); err != nil {
		return nil, pkgerrors.New("ChatLogic.CreateChatSession.ChatSessionStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return &session, nil
}

func (l *ChatLogic) GetChatSession(projectID, sessionID string) (*types.ChatSession, error) {
	session, err := l.core.Store().ChatSessionStore().GetChatSession(l.ctx, projectID, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return nil, pkgerrors.New("ChatLogic.GetChatSession.ChatSessionStore.GetChatSession", i18n.ERROR_INTERNAL, err)
	}
	if session == nil || err == sql.ErrNoRows {
		return nil, pkgerrors.New("ChatLogic.GetChatSession.notfound", i18n.ERROR_SESSION_NOT_FOUND, nil).Code(http.StatusNotFound)
	}
	return session, nil
}

func (l *ChatLogic) ListChatSessions(projectID string, page, pageSize uint64) ([]types.ChatSession, error) {
	list, err := l.core.Store().ChatSessionStore().List(l.ctx, projectID, page, pageSize)
	if err != nil {
		return nil, pkgerrors.New("ChatLogic.ListChatSessions.ChatSessionStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *ChatLogic) DeleteChatSession(projectID, sessionID string) error {
	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().ChatSessionStore().Delete(ctx, projectID, sessionID); err != nil {
			return pkgerrors.New("ChatLogic.DeleteChatSession.ChatSessionStore.Delete", i18n.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ChatMessageStore().DeleteAll(ctx, sessionID); err != nil {
			return pkgerrors.New("ChatLogic.DeleteChatSession.ChatMessageStore.DeleteAll", i18n.ERROR_INTERNAL, err)
		}
		return nil
	})
}

func (l *ChatLogic) ListSessionMessages(sessionID string, page, pageSize uint64) ([]*types.ChatMessage, error) {
	list, err := l.core.Store().ChatMessageStore().ListSessionMessages(l.ctx, types.GetChatMessageOptions{
		SessionID: sessionID,
	}, page, pageSize)
	if err != nil {
		return nil, pkgerrors.New("ChatLogic.ListSessionMessages.ChatMessageStore.ListSessionMessages", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

type SendMessageArgs struct {
	ProjectID        string
	SessionID        string
	UserID           string
	Query            string
	HasAttachedFiles bool
	WithSchemaData   bool
}

// SendMessage 单轮问答：落库用户消息 → 装配 RAG 上下文 → 请求模型 → 落库助手消息
func (l *ChatLogic) SendMessage(args SendMessageArgs) (*types.ChatMessage, error) {
	session, userMsg, msgs, err := l.prepare(args)
	if err != nil {
		return nil, err
	}

	resp, err := l.core.Srv().AI().Query(l.ctx, msgs)
	if err != nil {
		return nil, pkgerrors.New("ChatLogic.SendMessage.AI.Query", i18n.ERROR_COMPLETION_MODEL_FAILED, err)
	}

	return l.finish(session, userMsg, resp.Message())
}

// StreamMessage 流式问答，onDelta 逐段回调增量内容，消费完毕后落库完整回复
func (l *ChatLogic) StreamMessage(args SendMessageArgs, onDelta func(delta string)) (*types.ChatMessage, error) {
	session, userMsg, msgs, err := l.prepare(args)
	if err != nil {
		return nil, err
	}

	stream, err := l.core.Srv().AI().QueryStream(l.ctx, msgs)
	if err != nil {
		return nil, pkgerrors.New("ChatLogic.StreamMessage.AI.QueryStream", i18n.ERROR_COMPLETION_MODEL_FAILED, err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, pkgerrors.New("ChatLogic.StreamMessage.stream.Recv", i18n.ERROR_COMPLETION_MODEL_FAILED, err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		sb.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}

	return l.finish(session, userMsg, sb.String())
}

func (l *ChatLogic) prepare(args SendMessageArgs) (*types.ChatSession, *types.ChatMessage, []*types.MessageContext, error) {
	if args.Query == "" {
		return nil, nil, nil, pkgerrors.New("ChatLogic.prepare.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	session, err := l.GetChatSession(args.ProjectID, args.SessionID)
	if err != nil {
		return nil, nil, nil, err
	}

	seq, err := core.NewSequenceGenerator(l.core.Store().ChatMessageStore()).GetChatMessageSequence(l.ctx, session.ID)
	if err != nil {
		return nil, nil, nil, pkgerrors.New("ChatLogic.prepare.GetChatMessageSequence", i18n.ERROR_INTERNAL, err)
	}

	userMsg := types.ChatMessage{
		ID:        utils.GenUniqIDStr(),
		SessionID: session.ID,
		ProjectID: session.ProjectID,
		UserID:    args.UserID,
		Role:      types.USER_ROLE_USER,
		Message:   args.Query,
		SendTime:  types.GetCurrentTimestamp(),
		Sequence:  seq,
	}
	if err = l.core.Store().ChatMessageStore().Create(l.ctx, userMsg); err != nil {
		return nil, nil, nil, pkgerrors.New("ChatLogic.prepare.ChatMessageStore.Create", i18n.ERROR_INTERNAL, err)
	}

	ragCtx := NewRAGLogic(l.ctx, l.core).BuildRAGContext(BuildRAGContextOptions{
		ProjectID:        session.ProjectID,
		SessionID:        session.ID,
		Query:            args.Query,
		HasAttachedFiles: args.HasAttachedFiles,
		WithSchemaData:   args.WithSchemaData,
	})

	// 刚写入的用户消息已在历史中，避免重复拼接
	ragCtx.ChatHistory = dropMessage(ragCtx.ChatHistory, userMsg.ID)

	msgs := ai.BuildChatContext(ragCtx, args.Query)
	if l.core.Srv().AI().MsgIsOverLimit(msgs) {
		// 截断最早的历史直至满足上下文预算
		for len(ragCtx.ChatHistory) > 0 && l.core.Srv().AI().MsgIsOverLimit(msgs) {
			ragCtx.ChatHistory = ragCtx.ChatHistory[1:]
			msgs = ai.BuildChatContext(ragCtx, args.Query)
		}
	}

	return session, &userMsg, msgs, nil
}

func (l *ChatLogic) finish(session *types.ChatSession, userMsg *types.ChatMessage, answer string) (*types.ChatMessage, error) {
	assistantMsg := types.ChatMessage{
		ID:        utils.GenUniqIDStr(),
		SessionID: session.ID,
		ProjectID: session.ProjectID,
		Role:      types.USER_ROLE_ASSISTANT,
		Message:   answer,
		SendTime:  types.GetCurrentTimestamp(),
		Sequence:  userMsg.Sequence + 1,
	}
	if err := l.core.Store().ChatMessageStore().Create(l.ctx, assistantMsg); err != nil {
		return nil, pkgerrors.New("ChatLogic.finish.ChatMessageStore.Create", i18n.ERROR_INTERNAL, err)
	}

	if err := l.core.Store().ChatSessionStore().UpdateLatestAccessTime(l.ctx, session.ProjectID, session.ID); err != nil {
		return nil, pkgerrors.New("ChatLogic.finish.ChatSessionStore.UpdateLatestAccessTime", i18n.ERROR_INTERNAL, err)
	}

	// 首轮对话后异步命名会话，失败不影响主链路
	if userMsg.Sequence == 1 {
		query := userMsg.Message
		safe.Run(func() {
			l.namedSession(session.ID, query)
		})
	}

	return &assistantMsg, nil
}

// namedSession 根据首条消息为会话生成标题，尽力而为
func (l *ChatLogic) namedSession(sessionID, firstMessage string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	prompt := l.core.Prompt().SessionName
	if prompt == "" {
		prompt = ai.PROMPT_SESSION_NAME_EN
	}

	resp, err := l.core.Srv().AI().Query(ctx, []*types.MessageContext{
		{Role: types.USER_ROLE_SYSTEM, Content: prompt},
		{Role: types.USER_ROLE_USER, Content: firstMessage},
	})
	if err != nil {
		return
	}

	title := strings.TrimSpace(strings.Trim(resp.Message(), `"`))
	if title == "" {
		return
	}

	_ = l.core.Store().ChatSessionStore().UpdateSessionTitle(ctx, sessionID, title)
}

func dropMessage(msgs []*types.ChatMessage, id string) []*types.ChatMessage {
	result := make([]*types.ChatMessage, 0, len(msgs))
	for _, v := range msgs {
		if v.ID == id {
			continue
		}
		result = append(result, v)
	}
	return result
}
