package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL        = "error.internal"
	ERROR_NOT_FOUND       = "error.notfound"
	ERROR_INVALIDARGUMENT = "error.invalidargument"
	ERROR_UNAUTHORIZED    = "error.unauthorized"
	ERROR_EXIST           = "error.exist"
	ERROR_FORBIDDEN       = "error.forbidden"

	ERROR_SLUG_EXIST              = "error.slug.exist"
	ERROR_VERSION_NOT_FOUND       = "error.version.notfound"
	ERROR_SESSION_NOT_FOUND       = "error.session.notfound"
	ERROR_EMBEDDING_MODEL_FAILED  = "error.ai.embedding.failed"
	ERROR_COMPLETION_MODEL_FAILED = "error.ai.completion.failed"
)
