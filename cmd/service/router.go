package service

import (
	"time"

	"github.com/draftly-ai/draftly/app/core"
	"github.com/draftly-ai/draftly/app/response"
	"github.com/draftly-ai/draftly/cmd/service/handler"
	"github.com/draftly-ai/draftly/cmd/service/middleware"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.RequestTimeout(time.Second * 30))

	apiV1 := s.Engine.Group("/api/v1")
	{
		project := apiV1.Group("/project/:projectid")
		{
			session := project.Group("/session")
			{
				session.POST("", s.CreateChatSession)
				session.GET("/list", s.ListChatSessions)
				session.GET("/:sessionid", s.GetChatSession)
				session.DELETE("/:sessionid", s.DeleteChatSession)
				session.GET("/:sessionid/messages", s.ListSessionMessages)

				session.POST("/:sessionid/chat", s.Chat)

				version := session.Group("/:sessionid/version")
				{
					version.POST("", s.CreateContentVersion)
					version.GET("/list", s.ListContentVersions)
					version.GET("/latest", s.GetLatestContentVersion)
				}

				session.POST("/:sessionid/publish", s.PublishBlog)
				session.POST("/:sessionid/unpublish", s.UnpublishBlog)
				session.DELETE("/:sessionid/generated", s.CleanupGeneratedContent)
			}

			knowledge := project.Group("/knowledge")
			{
				knowledge.POST("/upload", s.UploadKnowledge)
				knowledge.POST("/bulk", s.BulkStoreKnowledge)
				knowledge.GET("/list", s.ListKnowledge)
				knowledge.DELETE("/:id", s.DeleteKnowledge)
			}

			project.POST("/rag/query", s.RAGQuery)
		}

		version := apiV1.Group("/version")
		{
			version.GET("/:id", s.GetContentVersion)
			version.PUT("/:id", s.UpdateContentVersion)
		}

		schema := apiV1.Group("/schema")
		{
			schema.POST("/author", s.UpsertAuthor)
			schema.GET("/authors", s.ListAuthors)
			schema.DELETE("/author/:id", s.DeleteAuthor)

			schema.POST("/category", s.UpsertCategory)
			schema.GET("/categories", s.ListCategories)
			schema.DELETE("/category/:id", s.DeleteCategory)

			schema.GET("/blog/:id", s.GetBlog)
			schema.GET("/blogs", s.ListBlogs)

			schema.GET("/search", s.SearchSchema)
		}
	}
}
