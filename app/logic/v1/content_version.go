package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/pgvector/pgvector-go"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/pkg/errors"
	"github.com/draftly-ai/draftly/pkg/i18n"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/draftly-ai/draftly/pkg/utils"
)

// sessionLocks 会话级互斥，保证版本号分配与发布切换串行
var sessionLocks = cmap.New[*sync.Mutex]()

func lockSession(sessionID string) func() {
	mu := sessionLocks.Upsert(sessionID, nil, func(exist bool, valueInMap, newValue *sync.Mutex) *sync.Mutex {
		if exist {
			return valueInMap
		}
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}

type ContentVersionLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewContentVersionLogic(ctx context.Context, core *core.Core) *ContentVersionLogic {
	return &ContentVersionLogic{
		ctx:  ctx,
		core: core,
	}
}

// CreateVersion 在会话锁内分配 max+1 版本号并落库
func (l *ContentVersionLogic) CreateVersion(projectID, sessionID, messageID, title, author, content string) (*types.ContentVersion, error) {
	if sessionID == "" || content == "" {
		return nil, errors.New("ContentVersionLogic.CreateVersion.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	unlock := lockSession(sessionID)
	defer unlock()

	max, err := l.core.Store().ContentVersionStore().MaxVersionNumber(l.ctx, sessionID)
	if err != nil {
		return nil, errors.New("ContentVersionLogic.CreateVersion.ContentVersionStore.MaxVersionNumber", i18n.ERROR_INTERNAL, err)
	}

	version := types.ContentVersion{
		ID:            utils.GenUniqIDStr(),
		SessionID:     sessionID,
		ProjectID:     projectID,
		MessageID:     messageID,
		VersionNumber: max + 1,
		Title:         title,
		Author:        author,
		Content:       content,
		CreatedAt:     types.GetCurrentTimestamp(),
		UpdatedAt:     types.GetCurrentTimestamp(),
	}

	if err = l.core.Store().ContentVersionStore().Create(l.ctx, version); err != nil {
		return nil, errors.New("ContentVersionLogic.CreateVersion.ContentVersionStore.Create", i18n.ERROR_INTERNAL, err)
	}

	return &version, nil
}

func (l *ContentVersionLogic) GetVersion(id string) (*types.ContentVersion, error) {
	version, err := l.core.Store().ContentVersionStore().Get(l.ctx, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ContentVersionLogic.GetVersion.ContentVersionStore.Get", i18n.ERROR_INTERNAL, err)
	}
	if version == nil || err == sql.ErrNoRows {
		return nil, errors.New("ContentVersionLogic.GetVersion.notfound", i18n.ERROR_VERSION_NOT_FOUND, nil).Code(http.StatusNotFound)
	}
	return version, nil
}

func (l *ContentVersionLogic) GetLatestVersion(sessionID string) (*types.ContentVersion, error) {
	version, err := l.core.Store().ContentVersionStore().GetLatest(l.ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("ContentVersionLogic.GetLatestVersion.ContentVersionStore.GetLatest", i18n.ERROR_INTERNAL, err)
	}
	if version == nil || err == sql.ErrNoRows {
		return nil, errors.New("ContentVersionLogic.GetLatestVersion.notfound", i18n.ERROR_VERSION_NOT_FOUND, nil).Code(http.StatusNotFound)
	}
	return version, nil
}

func (l *ContentVersionLogic) ListVersions(opts types.GetContentVersionOptions, page, pageSize uint64) ([]*types.ContentVersion, error) {
	list, err := l.core.Store().ContentVersionStore().List(l.ctx, opts, page, pageSize)
	if err != nil {
		return nil, errors.New("ContentVersionLogic.ListVersions.ContentVersionStore.List", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

// UpdateContent 更新版本正文，已发布版本同步刷新对应知识条目
// 知识同步失败只记录日志，不影响主链路
func (l *ContentVersionLogic) UpdateContent(id, content string) (*types.ContentVersion, error) {
	if content == "" {
		return nil, errors.New("ContentVersionLogic.UpdateContent.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	version, err := l.GetVersion(id)
	if err != nil {
		return nil, err
	}

	if err = l.core.Store().ContentVersionStore().UpdateContent(l.ctx, id, content); err != nil {
		return nil, errors.New("ContentVersionLogic.UpdateContent.ContentVersionStore.UpdateContent", i18n.ERROR_INTERNAL, err)
	}

	version.Content = content
	version.UpdatedAt = types.GetCurrentTimestamp()

	if version.Published {
		l.syncPublishedContent(version)
	}

	return version, nil
}

// PublishVersion 发布指定版本
// 会话锁内执行：下线该会话其余已发布版本 → 清理它们的知识条目（尽力而为）→
// 置位 published → 重建唯一的 published_content 知识条目
func (l *ContentVersionLogic) PublishVersion(projectID, sessionID, versionID, documentID string) (*types.ContentVersion, error) {
	unlock := lockSession(sessionID)
	defer unlock()

	version, err := l.GetVersion(versionID)
	if err != nil {
		return nil, err
	}
	if version.SessionID != sessionID || version.ProjectID != projectID {
		return nil, errors.New("ContentVersionLogic.PublishVersion.scope", i18n.ERROR_VERSION_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	superseded, err := l.core.Store().ContentVersionStore().UnpublishAll(l.ctx, sessionID, projectID, versionID)
	if err != nil {
		return nil, errors.New("ContentVersionLogic.PublishVersion.ContentVersionStore.UnpublishAll", i18n.ERROR_INTERNAL, err)
	}
	if superseded > 0 {
		slog.Info("Superseded previously published versions",
			slog.String("session_id", sessionID), slog.Int64("count", superseded))
	}

	// 旧发布条目的清理失败不阻断发布
	if _, err = l.core.Store().KnowledgeBaseStore().DeleteWithCount(l.ctx, types.GetKnowledgeBaseOptions{
		ProjectID: projectID,
		SessionID: sessionID,
		Source:    types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
	}); err != nil {
		slog.Error("Failed to delete stale published_content entries",
			slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}

	args := types.UpdatePublishStateArgs{
		Published:   true,
		PublishedAt: types.GetCurrentTimestamp(),
		DocumentID:  documentID,
		Touch:       true,
	}
	if err = l.core.Store().ContentVersionStore().UpdatePublishState(l.ctx, versionID, args); err != nil {
		return nil, errors.New("ContentVersionLogic.PublishVersion.ContentVersionStore.UpdatePublishState", i18n.ERROR_INTERNAL, err)
	}

	version.Published = true
	version.PublishedAt = args.PublishedAt
	version.DocumentID = documentID
	version.UpdatedAt = types.GetCurrentTimestamp()

	l.syncPublishedContent(version)

	return version, nil
}

// UnpublishVersion 下线版本并删除其知识条目
func (l *ContentVersionLogic) UnpublishVersion(projectID, sessionID, versionID string) error {
	unlock := lockSession(sessionID)
	defer unlock()

	version, err := l.GetVersion(versionID)
	if err != nil {
		return err
	}
	if version.SessionID != sessionID || version.ProjectID != projectID {
		return errors.New("ContentVersionLogic.UnpublishVersion.scope", i18n.ERROR_VERSION_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	if err = l.core.Store().ContentVersionStore().UpdatePublishState(l.ctx, versionID, types.UpdatePublishStateArgs{
		Published:   false,
		PublishedAt: 0,
		DocumentID:  "",
		Touch:       true,
	}); err != nil {
		return errors.New("ContentVersionLogic.UnpublishVersion.ContentVersionStore.UpdatePublishState", i18n.ERROR_INTERNAL, err)
	}

	if _, err = l.core.Store().KnowledgeBaseStore().DeleteWithCount(l.ctx, types.GetKnowledgeBaseOptions{
		ProjectID: projectID,
		SessionID: sessionID,
		Source:    types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
	}); err != nil {
		slog.Error("Failed to delete published_content entry on unpublish",
			slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}

	return nil
}

// syncPublishedContent 重建 (project, session) 下唯一的 published_content 知识条目
// 属于次级链路，所有失败只记录日志
func (l *ContentVersionLogic) syncPublishedContent(version *types.ContentVersion) {
	embedding, err := l.core.Srv().AI().EmbeddingForDocument(l.ctx, []string{version.Content})
	if err != nil || len(embedding.Data) == 0 {
		slog.Error("Failed to embed published content for knowledge sync",
			slog.String("version_id", version.ID), slog.Any("error", err))
		return
	}

	if _, err = l.core.Store().KnowledgeBaseStore().DeleteWithCount(l.ctx, types.GetKnowledgeBaseOptions{
		ProjectID: version.ProjectID,
		SessionID: version.SessionID,
		Source:    types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
	}); err != nil {
		slog.Error("Failed to delete old published_content entry before sync",
			slog.String("version_id", version.ID), slog.String("error", err.Error()))
	}

	if err = l.core.Store().KnowledgeBaseStore().Create(l.ctx, types.KnowledgeBaseEntry{
		ID:        utils.GenUniqIDStr(),
		ProjectID: version.ProjectID,
		SessionID: version.SessionID,
		Content:   version.Content,
		Source:    types.KNOWLEDGE_SOURCE_PUBLISHED_CONTENT,
		Metadata: types.Metadata{
			"version_id":     version.ID,
			"version_number": version.VersionNumber,
			"title":          version.Title,
			"document_id":    version.DocumentID,
		},
		Embedding: pgvector.NewVector(embedding.Data[0]),
		CreatedAt: types.GetCurrentTimestamp(),
	}); err != nil {
		slog.Error("Failed to create published_content entry",
			slog.String("version_id", version.ID), slog.String("error", err.Error()))
	}
}
