package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/draftly-ai/draftly/app/logic/v1"
	"github.com/draftly-ai/draftly/app/response"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type UploadKnowledgeRequest struct {
	SessionID string         `json:"session_id"`
	Content   string         `json:"content" binding:"required"`
	Source    string         `json:"source" binding:"required"`
	Metadata  types.Metadata `json:"metadata"`
}

type UploadKnowledgeResponse struct {
	IDs []string `json:"ids"`
}

// UploadKnowledge 文档上传入口，切分向量化后入库
func (s *HttpSrv) UploadKnowledge(c *gin.Context) {
	var req UploadKnowledgeRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	ids, err := v1.NewKnowledgeLogic(c, s.Core).IngestDocument(
		c.Param("projectid"), req.SessionID, req.Content,
		types.KnowledgeSourceFromString(req.Source), req.Metadata)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, UploadKnowledgeResponse{IDs: ids})
}

type BulkStoreKnowledgeRequest struct {
	SessionID string         `json:"session_id"`
	Contents  []string       `json:"contents" binding:"required"`
	Source    string         `json:"source" binding:"required"`
	Metadata  types.Metadata `json:"metadata"`
}

// BulkStoreKnowledge 直接写入已切分内容块
func (s *HttpSrv) BulkStoreKnowledge(c *gin.Context) {
	var req BulkStoreKnowledgeRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	ids, err := v1.NewKnowledgeLogic(c, s.Core).BulkStore(
		c.Param("projectid"), req.SessionID, req.Contents,
		types.KnowledgeSourceFromString(req.Source), req.Metadata)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, UploadKnowledgeResponse{IDs: ids})
}

type ListKnowledgeRequest struct {
	SessionID string `form:"session_id" json:"session_id"`
	Source    string `form:"source" json:"source"`
	Page      uint64 `form:"page" json:"page"`
	PageSize  uint64 `form:"pagesize" json:"pagesize"`
}

type ListKnowledgeResponse struct {
	List  []*types.KnowledgeBaseEntry `json:"list"`
	Total uint64                      `json:"total"`
}

func (s *HttpSrv) ListKnowledge(c *gin.Context) {
	var req ListKnowledgeRequest
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

	opts := types.GetKnowledgeBaseOptions{
		ProjectID: c.Param("projectid"),
		SessionID: req.SessionID,
	}
	if req.Source != "" {
		opts.Source = types.KnowledgeSourceFromString(req.Source)
	}

	list, total, err := v1.NewKnowledgeLogic(c, s.Core).ListKnowledge(opts, req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, ListKnowledgeResponse{List: list, Total: total})
}

func (s *HttpSrv) DeleteKnowledge(c *gin.Context) {
	if err := v1.NewKnowledgeLogic(c, s.Core).DeleteKnowledge(c.Param("projectid"), c.Param("id")); err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, nil)
}

type CleanupGeneratedContentResponse struct {
	Deleted int64 `json:"deleted"`
}

// CleanupGeneratedContent 清理会话内 AI 草稿产生的知识条目
func (s *HttpSrv) CleanupGeneratedContent(c *gin.Context) {
	deleted, err := v1.NewKnowledgeLogic(c, s.Core).CleanupGeneratedContent(c.Param("projectid"), c.Param("sessionid"))
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, CleanupGeneratedContentResponse{Deleted: deleted})
}
