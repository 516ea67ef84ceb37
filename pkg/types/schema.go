package types

type Author struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Slug         string   `json:"slug" db:"slug"`
	Bio          string   `json:"bio" db:"bio"`
	ThumbnailImg string   `json:"thumbnail_img" db:"thumbnail_img"`
	ReferencedBy Metadata `json:"referenced_by" db:"referenced_by"`
	CreatedAt    int64    `json:"created_at" db:"created_at"`
	UpdatedAt    int64    `json:"updated_at" db:"updated_at"`
}

type Category struct {
	ID           string   `json:"id" db:"id"`
	Title        string   `json:"title" db:"title"`
	Description  string   `json:"description" db:"description"`
	ReferencedBy Metadata `json:"referenced_by" db:"referenced_by"`
	CreatedAt    int64    `json:"created_at" db:"created_at"`
	UpdatedAt    int64    `json:"updated_at" db:"updated_at"`
}

// Blog 已发布文档，content_version_id 指回权威版本行
type Blog struct {
	ID               string   `json:"id" db:"id"`
	Title            string   `json:"title" db:"title"`
	Slug             string   `json:"slug" db:"slug"`
	Content          string   `json:"content" db:"content"`
	Excerpt          string   `json:"excerpt" db:"excerpt"`
	Authors          Metadata `json:"authors" db:"authors"`
	Categories       Metadata `json:"categories" db:"categories"`
	ThumbnailImg     Metadata `json:"thumbnail_img" db:"thumbnail_img"`
	SEOFields        Metadata `json:"seo_fields" db:"seo_fields"`
	ContentVersionID string   `json:"content_version_id" db:"content_version_id"`
	CreatedAt        int64    `json:"created_at" db:"created_at"`
	UpdatedAt        int64    `json:"updated_at" db:"updated_at"`
}

type UpdateBlogArgs struct {
	Title            string
	Content          string
	Excerpt          string
	Authors          Metadata
	Categories       Metadata
	ThumbnailImg     Metadata
	SEOFields        Metadata
	ContentVersionID string
}

// SchemaSearchResult 跨 schema 表的统一检索结果
type SchemaSearchResult struct {
	TableName string `json:"table_name" db:"table_name"`
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	Slug      string `json:"slug" db:"slug"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
