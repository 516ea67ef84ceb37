package v1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchemaTestLogic(st *fakeStore) *SchemaLogic {
	return NewSchemaLogic(context.Background(), newTestCore(st, &fakeAIDriver{}))
}

func TestUpsertAuthorGeneratesSlug(t *testing.T) {
	st := newFakeStore()
	logic := newSchemaTestLogic(st)

	author, err := logic.UpsertAuthor("Jane Doe", "", "writes about Go", "")
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", author.Slug)

	// 相同 slug 再次提交走更新而不是新增
	updated, err := logic.UpsertAuthor("Jane Doe", "jane-doe", "updated bio", "")
	require.NoError(t, err)
	assert.Equal(t, author.ID, updated.ID)
	assert.Equal(t, "updated bio", updated.Bio)

	list, err := logic.ListAuthors()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpsertAuthorRequiresName(t *testing.T) {
	st := newFakeStore()
	logic := newSchemaTestLogic(st)

	_, err := logic.UpsertAuthor("", "", "", "")
	assert.Error(t, err)
}

func TestUpsertCategoryDeduplicatesByTitle(t *testing.T) {
	st := newFakeStore()
	logic := newSchemaTestLogic(st)

	first, err := logic.UpsertCategory("Engineering", "tech posts")
	require.NoError(t, err)

	second, err := logic.UpsertCategory("Engineering", "all tech posts")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "all tech posts", second.Description)

	list, err := logic.ListCategories()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateBlogSlugConflict(t *testing.T) {
	st := newFakeStore()
	logic := newSchemaTestLogic(st)

	_, err := logic.CreateBlog(CreateBlogArgs{Title: "Hello World", Content: "first"})
	require.NoError(t, err)

	_, err = logic.CreateBlog(CreateBlogArgs{Title: "Hello World", Content: "second"})
	assert.Error(t, err)

	list, err := logic.ListBlogs(1, 20)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSearchMergesSchemaTables(t *testing.T) {
	st := newFakeStore()
	logic := newSchemaTestLogic(st)

	_, err := logic.UpsertAuthor("Travel Writer", "", "covers travel topics", "")
	require.NoError(t, err)
	_, err = logic.UpsertCategory("Travel", "travel guides")
	require.NoError(t, err)
	_, err = logic.CreateBlog(CreateBlogArgs{Title: "Travel Notes", Content: "a trip report"})
	require.NoError(t, err)

	result, err := logic.Search("travel", 10)
	require.NoError(t, err)
	require.Len(t, result, 3)
	// 博客排在作者与分类之前
	assert.Equal(t, "blog", result[0].TableName)
}

func TestSearchCapsResultAtLimit(t *testing.T) {
	st := newFakeStore()
	logic := newSchemaTestLogic(st)

	for _, title := range []string{"Go Basics", "Go Concurrency", "Go Generics"} {
		_, err := logic.CreateBlog(CreateBlogArgs{Title: title, Content: "go article"})
		require.NoError(t, err)
	}

	result, err := logic.Search("go", 2)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestSearchEmptyKeywords(t *testing.T) {
	st := newFakeStore()
	logic := newSchemaTestLogic(st)

	result, err := logic.Search("", 10)
	require.NoError(t, err)
	assert.Nil(t, result)
}
