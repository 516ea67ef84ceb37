package v1

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	oai "github.com/sashabaranov/go-openai"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/app/core/srv"
	"github.com/draftly-ai/draftly/app/store"
	"github.com/draftly-ai/draftly/pkg/ai"
	"github.com/draftly-ai/draftly/pkg/types"
	"github.com/pgvector/pgvector-go"
)

func newTestCore(st store.Store, driver srv.AIDriver) *core.Core {
	return core.MustSetupCoreWithStore(core.CoreConfig{}, st, srv.SetupSrvs(srv.ApplyAIDriver(driver)))
}

type fakeStore struct {
	kb *fakeKnowledgeBaseStore
	cv *fakeContentVersionStore
	cs *fakeChatSessionStore
	cm *fakeChatMessageStore
	au *fakeAuthorStore
	ca *fakeCategoryStore
	bl *fakeBlogStore
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		kb: &fakeKnowledgeBaseStore{},
		cv: &fakeContentVersionStore{},
		cs: &fakeChatSessionStore{},
		cm: &fakeChatMessageStore{},
		au: &fakeAuthorStore{},
		ca: &fakeCategoryStore{},
		bl: &fakeBlogStore{},
	}
}

func (s *fakeStore) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (s *fakeStore) KnowledgeBaseStore() store.KnowledgeBaseStore   { return s.kb }
func (s *fakeStore) ContentVersionStore() store.ContentVersionStore { return s.cv }
func (s *fakeStore) ChatSessionStore() store.ChatSessionStore       { return s.cs }
func (s *fakeStore) ChatMessageStore() store.ChatMessageStore       { return s.cm }
func (s *fakeStore) AuthorStore() store.AuthorStore                 { return s.au }
func (s *fakeStore) CategoryStore() store.CategoryStore             { return s.ca }
func (s *fakeStore) BlogStore() store.BlogStore                     { return s.bl }

type fakeKnowledgeBaseStore struct {
	mu      sync.Mutex
	entries []*types.KnowledgeBaseEntry

	simResult []*types.KnowledgeBaseEntry
	simErr    error
	deleteErr error
	createErr error

	simCalls          int
	lastFallbackLimit uint64
}

func (s *fakeKnowledgeBaseStore) GetTable(...interface{}) string { return "knowledge_base" }

func (s *fakeKnowledgeBaseStore) Create(ctx context.Context, data types.KnowledgeBaseEntry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &data)
	return nil
}

func (s *fakeKnowledgeBaseStore) BatchCreate(ctx context.Context, datas []*types.KnowledgeBaseEntry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, datas...)
	return nil
}

func (s *fakeKnowledgeBaseStore) Get(ctx context.Context, opts types.GetKnowledgeBaseOptions) (*types.KnowledgeBaseEntry, error) {
	for _, v := range s.entries {
		if matchKnowledge(v, opts) {
			return v, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeKnowledgeBaseStore) Update(ctx context.Context, opts types.GetKnowledgeBaseOptions, args types.UpdateKnowledgeBaseArgs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.entries {
		if matchKnowledge(v, opts) {
			if args.Content != "" {
				v.Content = args.Content
			}
			if args.Metadata != nil {
				v.Metadata = args.Metadata
			}
			if args.Embedding != nil {
				v.Embedding = *args.Embedding
			}
		}
	}
	return nil
}

func (s *fakeKnowledgeBaseStore) Delete(ctx context.Context, opts types.GetKnowledgeBaseOptions) error {
	_, err := s.DeleteWithCount(ctx, opts)
	return err
}

func (s *fakeKnowledgeBaseStore) DeleteWithCount(ctx context.Context, opts types.GetKnowledgeBaseOptions) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*types.KnowledgeBaseEntry
	var removed int64
	for _, v := range s.entries {
		if matchKnowledge(v, opts) {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	s.entries = kept
	return removed, nil
}

func (s *fakeKnowledgeBaseStore) List(ctx context.Context, opts types.GetKnowledgeBaseOptions, page, pageSize uint64) ([]*types.KnowledgeBaseEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*types.KnowledgeBaseEntry
	for _, v := range s.entries {
		if matchKnowledge(v, opts) {
			result = append(result, v)
		}
	}
	return result, nil
}

func (s *fakeKnowledgeBaseStore) ListFallback(ctx context.Context, projectID, sessionID string, limit uint64) ([]*types.KnowledgeBaseEntry, error) {
	s.mu.Lock()
	s.lastFallbackLimit = limit
	s.mu.Unlock()
	result, _ := s.List(ctx, types.GetKnowledgeBaseOptions{ProjectID: projectID, SessionID: sessionID}, types.NO_PAGING, types.NO_PAGING)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Source != result[j].Source {
			return result[i].Source < result[j].Source
		}
		return result[i].CreatedAt > result[j].CreatedAt
	})
	if uint64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *fakeKnowledgeBaseStore) Total(ctx context.Context, opts types.GetKnowledgeBaseOptions) (uint64, error) {
	list, _ := s.List(ctx, opts, types.NO_PAGING, types.NO_PAGING)
	return uint64(len(list)), nil
}

func (s *fakeKnowledgeBaseStore) SimilaritySearch(ctx context.Context, projectID, sessionID string, embedding pgvector.Vector, threshold float64, limit uint64) ([]*types.KnowledgeBaseEntry, error) {
	s.mu.Lock()
	s.simCalls++
	s.mu.Unlock()
	if s.simErr != nil {
		return nil, s.simErr
	}
	return s.simResult, nil
}

func matchKnowledge(v *types.KnowledgeBaseEntry, opts types.GetKnowledgeBaseOptions) bool {
	if opts.ID != "" && v.ID != opts.ID {
		return false
	}
	if opts.ProjectID != "" && v.ProjectID != opts.ProjectID {
		return false
	}
	if opts.SessionID != "" && v.SessionID != opts.SessionID {
		return false
	}
	if opts.Source != "" && v.Source != opts.Source {
		return false
	}
	if len(opts.Sources) > 0 {
		var hit bool
		for _, src := range opts.Sources {
			if v.Source == src {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

type fakeContentVersionStore struct {
	mu       sync.Mutex
	versions []*types.ContentVersion

	createErr error
}

func (s *fakeContentVersionStore) GetTable(...interface{}) string { return "content_versions" }

func (s *fakeContentVersionStore) Create(ctx context.Context, data types.ContentVersion) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions = append(s.versions, &data)
	return nil
}

func (s *fakeContentVersionStore) Get(ctx context.Context, id string) (*types.ContentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions {
		if v.ID == id {
			clone := *v
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeContentVersionStore) GetLatest(ctx context.Context, sessionID string) (*types.ContentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *types.ContentVersion
	for _, v := range s.versions {
		if v.SessionID != sessionID {
			continue
		}
		if latest == nil || v.VersionNumber > latest.VersionNumber {
			latest = v
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (s *fakeContentVersionStore) MaxVersionNumber(ctx context.Context, sessionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, v := range s.versions {
		if v.SessionID == sessionID && v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max, nil
}

func (s *fakeContentVersionStore) List(ctx context.Context, opts types.GetContentVersionOptions, page, pageSize uint64) ([]*types.ContentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*types.ContentVersion
	for _, v := range s.versions {
		if opts.ID != "" && v.ID != opts.ID {
			continue
		}
		if opts.SessionID != "" && v.SessionID != opts.SessionID {
			continue
		}
		if opts.ProjectID != "" && v.ProjectID != opts.ProjectID {
			continue
		}
		if opts.Published != nil && v.Published != *opts.Published {
			continue
		}
		if opts.ExcludeID != "" && v.ID == opts.ExcludeID {
			continue
		}
		clone := *v
		result = append(result, &clone)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].VersionNumber > result[j].VersionNumber
	})
	return result, nil
}

func (s *fakeContentVersionStore) UpdateContent(ctx context.Context, id, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions {
		if v.ID == id {
			v.Content = content
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *fakeContentVersionStore) UpdatePublishState(ctx context.Context, id string, args types.UpdatePublishStateArgs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions {
		if v.ID == id {
			v.Published = args.Published
			v.PublishedAt = args.PublishedAt
			v.DocumentID = args.DocumentID
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *fakeContentVersionStore) UnpublishAll(ctx context.Context, sessionID, projectID, excludeID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for _, v := range s.versions {
		if v.SessionID != sessionID || v.ProjectID != projectID || !v.Published {
			continue
		}
		if excludeID != "" && v.ID == excludeID {
			continue
		}
		v.Published = false
		v.PublishedAt = 0
		v.DocumentID = ""
		affected++
	}
	return affected, nil
}

type fakeChatSessionStore struct {
	mu       sync.Mutex
	sessions []*types.ChatSession
}

func (s *fakeChatSessionStore) GetTable(...interface{}) string { return "chat_sessions" }

func (s *fakeChatSessionStore) Create(ctx context.Context, data types.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, &data)
	return nil
}

func (s *fakeChatSessionStore) GetChatSession(ctx context.Context, projectID, sessionID string) (*types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.sessions {
		if v.ProjectID == projectID && v.ID == sessionID {
			clone := *v
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeChatSessionStore) UpdateSessionTitle(ctx context.Context, sessionID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.sessions {
		if v.ID == sessionID {
			v.Title = title
		}
	}
	return nil
}

func (s *fakeChatSessionStore) UpdateLatestAccessTime(ctx context.Context, projectID, sessionID string) error {
	return nil
}

func (s *fakeChatSessionStore) Delete(ctx context.Context, projectID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*types.ChatSession
	for _, v := range s.sessions {
		if v.ProjectID == projectID && v.ID == sessionID {
			continue
		}
		kept = append(kept, v)
	}
	s.sessions = kept
	return nil
}

func (s *fakeChatSessionStore) List(ctx context.Context, projectID string, page, pageSize uint64) ([]types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.ChatSession
	for _, v := range s.sessions {
		if v.ProjectID == projectID {
			result = append(result, *v)
		}
	}
	return result, nil
}

type fakeChatMessageStore struct {
	mu       sync.Mutex
	messages []*types.ChatMessage
}

func (s *fakeChatMessageStore) GetTable(...interface{}) string { return "chat_messages" }

func (s *fakeChatMessageStore) Create(ctx context.Context, data types.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, &data)
	return nil
}

func (s *fakeChatMessageStore) GetMessage(ctx context.Context, sessionID, id string) (*types.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.messages {
		if v.SessionID == sessionID && v.ID == id {
			clone := *v
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeChatMessageStore) GetSessionLatestMessage(ctx context.Context, sessionID string) (*types.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *types.ChatMessage
	for _, v := range s.messages {
		if v.SessionID != sessionID {
			continue
		}
		if latest == nil || v.Sequence > latest.Sequence {
			latest = v
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (s *fakeChatMessageStore) ListSessionMessages(ctx context.Context, opts types.GetChatMessageOptions, page, pageSize uint64) ([]*types.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*types.ChatMessage
	for _, v := range s.messages {
		if opts.SessionID != "" && v.SessionID != opts.SessionID {
			continue
		}
		if opts.ProjectID != "" && v.ProjectID != opts.ProjectID {
			continue
		}
		if opts.Role != "" && v.Role != opts.Role {
			continue
		}
		clone := *v
		result = append(result, &clone)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Sequence > result[j].Sequence
	})
	if pageSize != types.NO_PAGING && uint64(len(result)) > pageSize {
		result = result[:pageSize]
	}
	return result, nil
}

func (s *fakeChatMessageStore) DeleteAll(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*types.ChatMessage
	for _, v := range s.messages {
		if v.SessionID == sessionID {
			continue
		}
		kept = append(kept, v)
	}
	s.messages = kept
	return nil
}

type fakeAuthorStore struct {
	mu      sync.Mutex
	authors []*types.Author
}

func (s *fakeAuthorStore) GetTable(...interface{}) string { return "author_schema" }

func (s *fakeAuthorStore) Upsert(ctx context.Context, data types.Author) (*types.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.authors {
		if v.Slug == data.Slug {
			v.Name = data.Name
			v.Bio = data.Bio
			v.ThumbnailImg = data.ThumbnailImg
			clone := *v
			return &clone, nil
		}
	}
	s.authors = append(s.authors, &data)
	clone := data
	return &clone, nil
}

func (s *fakeAuthorStore) GetBySlug(ctx context.Context, slug string) (*types.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.authors {
		if v.Slug == slug {
			clone := *v
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeAuthorStore) List(ctx context.Context) ([]types.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.Author
	for _, v := range s.authors {
		result = append(result, *v)
	}
	return result, nil
}

func (s *fakeAuthorStore) ListBySlugs(ctx context.Context, slugs []string) ([]types.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.Author
	for _, v := range s.authors {
		for _, slug := range slugs {
			if v.Slug == slug {
				result = append(result, *v)
				break
			}
		}
	}
	return result, nil
}

func (s *fakeAuthorStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*types.Author
	for _, v := range s.authors {
		if v.ID == id {
			continue
		}
		kept = append(kept, v)
	}
	s.authors = kept
	return nil
}

func (s *fakeAuthorStore) Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.SchemaSearchResult
	for _, v := range s.authors {
		if !containsFold(v.Name, keywords) && !containsFold(v.Bio, keywords) {
			continue
		}
		result = append(result, types.SchemaSearchResult{
			TableName: "author",
			ID:        v.ID,
			Title:     v.Name,
			Content:   v.Bio,
			Slug:      v.Slug,
			CreatedAt: v.CreatedAt,
		})
		if uint64(len(result)) >= limit {
			break
		}
	}
	return result, nil
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories []*types.Category
}

func (s *fakeCategoryStore) GetTable(...interface{}) string { return "category_schema" }

func (s *fakeCategoryStore) Upsert(ctx context.Context, data types.Category) (*types.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.categories {
		if v.Title == data.Title {
			v.Description = data.Description
			clone := *v
			return &clone, nil
		}
	}
	s.categories = append(s.categories, &data)
	clone := data
	return &clone, nil
}

func (s *fakeCategoryStore) GetByTitle(ctx context.Context, title string) (*types.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.categories {
		if v.Title == title {
			clone := *v
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeCategoryStore) List(ctx context.Context) ([]types.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.Category
	for _, v := range s.categories {
		result = append(result, *v)
	}
	return result, nil
}

func (s *fakeCategoryStore) ListByTitles(ctx context.Context, titles []string) ([]types.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.Category
	for _, v := range s.categories {
		for _, title := range titles {
			if v.Title == title {
				result = append(result, *v)
				break
			}
		}
	}
	return result, nil
}

func (s *fakeCategoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*types.Category
	for _, v := range s.categories {
		if v.ID == id {
			continue
		}
		kept = append(kept, v)
	}
	s.categories = kept
	return nil
}

func (s *fakeCategoryStore) Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.SchemaSearchResult
	for _, v := range s.categories {
		if !containsFold(v.Title, keywords) && !containsFold(v.Description, keywords) {
			continue
		}
		result = append(result, types.SchemaSearchResult{
			TableName: "category",
			ID:        v.ID,
			Title:     v.Title,
			Content:   v.Description,
			CreatedAt: v.CreatedAt,
		})
		if uint64(len(result)) >= limit {
			break
		}
	}
	return result, nil
}

type fakeBlogStore struct {
	mu    sync.Mutex
	blogs []*types.Blog
}

func (s *fakeBlogStore) GetTable(...interface{}) string { return "blog_schema" }

func (s *fakeBlogStore) Create(ctx context.Context, data types.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blogs = append(s.blogs, &data)
	return nil
}

func (s *fakeBlogStore) Update(ctx context.Context, id string, args types.UpdateBlogArgs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.blogs {
		if v.ID != id {
			continue
		}
		if args.Title != "" {
			v.Title = args.Title
		}
		if args.Content != "" {
			v.Content = args.Content
		}
		if args.Excerpt != "" {
			v.Excerpt = args.Excerpt
		}
		if args.ContentVersionID != "" {
			v.ContentVersionID = args.ContentVersionID
		}
		return nil
	}
	return sql.ErrNoRows
}

func (s *fakeBlogStore) Get(ctx context.Context, id string) (*types.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.blogs {
		if v.ID == id {
			clone := *v
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeBlogStore) GetBySlug(ctx context.Context, slug string) (*types.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.blogs {
		if v.Slug == slug {
			clone := *v
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeBlogStore) List(ctx context.Context, page, pageSize uint64) ([]types.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.Blog
	for _, v := range s.blogs {
		result = append(result, *v)
	}
	if pageSize != types.NO_PAGING && uint64(len(result)) > pageSize {
		result = result[:pageSize]
	}
	return result, nil
}

func (s *fakeBlogStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []*types.Blog
	for _, v := range s.blogs {
		if v.ID == id {
			continue
		}
		kept = append(kept, v)
	}
	s.blogs = kept
	return nil
}

func (s *fakeBlogStore) Search(ctx context.Context, keywords string, limit uint64) ([]types.SchemaSearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []types.SchemaSearchResult
	for _, v := range s.blogs {
		if !containsFold(v.Title, keywords) && !containsFold(v.Content, keywords) {
			continue
		}
		result = append(result, types.SchemaSearchResult{
			TableName: "blog",
			ID:        v.ID,
			Title:     v.Title,
			Content:   v.Content,
			Slug:      v.Slug,
			CreatedAt: v.CreatedAt,
		})
		if uint64(len(result)) >= limit {
			break
		}
	}
	return result, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

type fakeAIDriver struct {
	embedErr error
	queryErr error
	answer   string

	embedCalls int
}

func (d *fakeAIDriver) Lang() string { return ai.MODEL_BASE_LANGUAGE_EN }

func (d *fakeAIDriver) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return d.embed(content)
}

func (d *fakeAIDriver) EmbeddingForDocument(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return d.embed(content)
}

func (d *fakeAIDriver) embed(content []string) (ai.EmbeddingResult, error) {
	d.embedCalls++
	if d.embedErr != nil {
		return ai.EmbeddingResult{}, d.embedErr
	}
	data := make([][]float32, len(content))
	for i := range content {
		data[i] = []float32{0.1, 0.2, 0.3}
	}
	return ai.EmbeddingResult{Model: "fake-embedding", Usage: &oai.Usage{}, Data: data}, nil
}

func (d *fakeAIDriver) Query(ctx context.Context, query []*types.MessageContext) (ai.GenerateResponse, error) {
	if d.queryErr != nil {
		return ai.GenerateResponse{}, d.queryErr
	}
	answer := d.answer
	if answer == "" {
		answer = "fake answer"
	}
	return ai.GenerateResponse{Received: []string{answer}, Model: "fake-chat", Usage: &oai.Usage{}}, nil
}

func (d *fakeAIDriver) QueryStream(ctx context.Context, query []*types.MessageContext) (*oai.ChatCompletionStream, error) {
	return nil, d.queryErr
}

func (d *fakeAIDriver) MsgIsOverLimit(msgs []*types.MessageContext) bool { return false }
