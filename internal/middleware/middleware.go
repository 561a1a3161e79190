package middleware

import "github.com/gin-gonic/gin"

// 全局中间件，在业务路由之前加载
type GlobalMiddleware struct{}

func NewMiddleware() *GlobalMiddleware {
	return &GlobalMiddleware{}
}

func (m *GlobalMiddleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery())
	g.Use(RequestId())
	g.Use(Logger)
	g.Use(Secure())
	g.Use(Options())
	g.Use(NoCache())
}
