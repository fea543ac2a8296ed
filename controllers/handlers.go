package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockmanager/services/analytics"
	"stockmanager/services/auth"
	"stockmanager/store"
)

// Handlers holds the dependencies shared by every HTTP handler.
type Handlers struct {
	Store             *store.Store
	Auth              *auth.Service
	Tokens            *auth.Tokens
	Analytics         *analytics.Service
	LowStockThreshold int
	logger            *zap.Logger
}

// New wires the handler set.
func New(st *store.Store, authSvc *auth.Service, tokens *auth.Tokens, analyticsSvc *analytics.Service, lowStockThreshold int, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Store:             st,
		Auth:              authSvc,
		Tokens:            tokens,
		Analytics:         analyticsSvc,
		LowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

const sessionKey = "session"

// SetSession attaches the caller's session to the request.
func SetSession(c *gin.Context, sess *auth.Session) {
	c.Set(sessionKey, sess)
}

// SessionFrom returns the request's session, logged out when none was attached.
func SessionFrom(c *gin.Context) *auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*auth.Session); ok {
			return sess
		}
	}
	return auth.NewSession(nil)
}

// storageError answers 500 without leaking driver details; the store has
// already logged the cause.
func (h *Handlers) storageError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
