package server

import (
	"fmt"

	"github.com/davfile/davfile/fsmgr"
	"github.com/davfile/davfile/hooks"
	"github.com/davfile/davfile/lockmgr"
	"github.com/davfile/davfile/pathguard"
	"github.com/davfile/davfile/server/handler/webdav"
	selfmid "github.com/davfile/davfile/server/middleware"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi"
	"github.com/xxxsen/common/webapi/auth"
	"github.com/xxxsen/common/webapi/middleware"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Server struct {
	c      *config
	engine webapi.IWebEngine
	locks  *lockmgr.Manager
	notify *hooks.SerialNotifier
}

func New(bind string, opts ...Option) (*Server, error) {
	c := applyOpts(opts...)
	if len(c.root) == 0 {
		return nil, fmt.Errorf("no serve root")
	}
	svr := &Server{c: c}
	var err error
	svr.engine, err = webapi.NewEngine("/", bind, webapi.WithAuth(auth.MapUserMatch(c.userMap)), webapi.WithRegister(svr.initAPI))
	if err != nil {
		return nil, err
	}
	return svr, nil
}

func (s *Server) initAPI(router *gin.RouterGroup) {
	gate, err := pathguard.New(s.c.root, s.c.allowedExts, s.c.allowHidden)
	if err != nil {
		panic(fmt.Errorf("init path gate failed, root:%s, err:%w", s.c.root, err))
	}
	s.locks = lockmgr.New(s.c.maxLock)
	notify := s.c.notify
	if notify == nil {
		notify = hooks.NopNotifier{}
	}
	s.notify = hooks.NewSerialNotifier(notify)

	mustAuthMiddleware := middleware.MustAuthMiddleware()

	webdavRouter := router.Group(s.c.prefix, mustAuthMiddleware, selfmid.NonLengthIOLimitMiddleware())
	{
		handler := webdav.NewWebdavHandler(fsmgr.NewFileManager(), gate, s.locks,
			s.c.auth, s.notify, webdavRouter.BasePath())
		for _, method := range webdav.AllowMethods {
			webdavRouter.Handle(method, "/*all", handler.Handler)
		}
	}
}

func (s *Server) Run() error {
	defer s.Close()
	return s.engine.Run()
}

// Close stops the background lock sweeper and drains pending
// notifications.
func (s *Server) Close() {
	if s.locks != nil {
		s.locks.Close()
	}
	if s.notify != nil {
		s.notify.Close()
	}
}
