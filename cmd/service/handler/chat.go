package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	v1 "github.com/draftly-ai/draftly/app/logic/v1"
	"github.com/draftly-ai/draftly/app/response"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type CreateChatSessionRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	UserID    string `json:"user_id"`
}

func (s *HttpSrv) CreateChatSession(c *gin.Context) {
	var req CreateChatSessionRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	session, err := v1.NewChatLogic(c, s.Core).CreateChatSession(req.ProjectID, req.UserID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, session)
}

func (s *HttpSrv) GetChatSession(c *gin.Context) {
	projectID := c.Param("projectid")
	sessionID := c.Param("sessionid")

	session, err := v1.NewChatLogic(c, s.Core).GetChatSession(projectID, sessionID)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, session)
}

type ListChatSessionsRequest struct {
	Page     uint64 `form:"page" json:"page"`
	PageSize uint64 `form:"pagesize" json:"pagesize"`
}

func (s *HttpSrv) ListChatSessions(c *gin.Context) {
	var req ListChatSessionsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	list, err := v1.NewChatLogic(c, s.Core).ListChatSessions(c.Param("projectid"), req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) DeleteChatSession(c *gin.Context) {
	if err := v1.NewChatLogic(c, s.Core).DeleteChatSession(c.Param("projectid"), c.Param("sessionid")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

func (s *HttpSrv) ListSessionMessages(c *gin.Context) {
	var req ListChatSessionsRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 50
	}

	list, err := v1.NewChatLogic(c, s.Core).ListSessionMessages(c.Param("sessionid"), req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, list)
}

type ChatRequest struct {
	Query            string `json:"query" binding:"required"`
	UserID           string `json:"user_id"`
	HasAttachedFiles bool   `json:"has_attached_files"`
	WithSchemaData   bool   `json:"with_schema_data"`
	Stream           bool   `json:"stream"`
}

// Chat RAG 问答入口，stream=true 时走 SSE 流式返回
func (s *HttpSrv) Chat(c *gin.Context) {
	var req ChatRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	args := v1.SendMessageArgs{
		ProjectID:        c.Param("projectid"),
		SessionID:        c.Param("sessionid"),
		UserID:           req.UserID,
		Query:            req.Query,
		HasAttachedFiles: req.HasAttachedFiles,
		WithSchemaData:   req.WithSchemaData,
	}

	logic := v1.NewChatLogic(c, s.Core)

	if !req.Stream {
		msg, err := logic.SendMessage(args)
		if err != nil {
			response.APIError(c, err)
			return
		}
		response.APISuccess(c, msg)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher := c.Writer

	msg, err := logic.StreamMessage(args, func(delta string) {
		fmt.Fprintf(flusher, "data: %s\n\n", delta)
		flusher.Flush()
	})
	if err != nil {
		fmt.Fprintf(flusher, "event: error\ndata: %s\n\n", err.Error())
		flusher.Flush()
		return
	}

	fmt.Fprintf(flusher, "event: done\ndata: %s\n\n", msg.ID)
	flusher.Flush()
}

type RAGQueryRequest struct {
	Query            string `json:"query" binding:"required"`
	HasAttachedFiles bool   `json:"has_attached_files"`
	WithSchemaData   bool   `json:"with_schema_data"`
}

// RAGQuery 调试入口，只返回装配结果不请求模型
func (s *HttpSrv) RAGQuery(c *gin.Context) {
	var req RAGQueryRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	ragCtx := v1.NewRAGLogic(c, s.Core).BuildRAGContext(v1.BuildRAGContextOptions{
		ProjectID:        c.Param("projectid"),
		SessionID:        c.Query("session_id"),
		Query:            req.Query,
		HasAttachedFiles: req.HasAttachedFiles,
		WithSchemaData:   req.WithSchemaData,
	})
	response.APISuccess(c, ragCtx)
}
