package core

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/draftly-ai/draftly/app/core/srv"
	"github.com/draftly-ai/draftly/app/store"
	"github.com/draftly-ai/draftly/app/store/sqlstore"
	"github.com/draftly-ai/draftly/pkg/utils"
)

type Core struct {
	cfg       CoreConfig
	cfgReader io.Reader
	srv       *srv.Srv

	prompt Prompt

	stores     func() store.Store
	httpClient *http.Client
	httpEngine *gin.Engine
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28,   //days
				Compress:   true, // disabled by default
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		httpEngine: gin.New(),
		prompt:     cfg.Prompt,
	}

	setupSqlStore(core)

	core.srv = srv.SetupSrvs(srv.ApplyAI(cfg.AI))

	return core
}

func setupSqlStore(core *Core) {
	stores := sqlstore.MustSetup(core.cfg.Postgres)
	if err := stores().Install(); err != nil {
		panic(err)
	}
	core.stores = func() store.Store {
		return stores()
	}
	slog.Info("setupSqlStore done")
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) Prompt() Prompt {
	return s.prompt
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Store() store.Store {
	return s.stores()
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

// MustSetupCoreWithStore 以外部 store 构建 Core，测试用
func MustSetupCoreWithStore(cfg CoreConfig, st store.Store, srvs *srv.Srv) *Core {
	utils.SetupIDWorker(1)
	return &Core{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Second * 3},
		httpEngine: gin.New(),
		prompt:     cfg.Prompt,
		stores: func() store.Store {
			return st
		},
		srv: srvs,
	}
}

type sg struct {
	msgStore store.ChatMessageStore
}

// GetChatMessageSequence 读取会话内下一条消息序号
func (s *sg) GetChatMessageSequence(ctx context.Context, sessionID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	latestChat, err := s.msgStore.GetSessionLatestMessage(ctx, sessionID)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	if latestChat == nil {
		return 1, nil
	}
	return latestChat.Sequence + 1, nil
}

func NewSequenceGenerator(msgStore store.ChatMessageStore) *sg {
	return &sg{msgStore: msgStore}
}
