package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/vortex-fintech/agenda/errors"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/metrics"
)

const (
	BasePath        = "/api/contatos"
	HeaderRequestID = "X-Request-ID"
)

// NewHandler mounts the contact API on a gin engine.
func NewHandler(svc *Service, log logger.LoggerInterface, col *metrics.Collectors) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	gin.SetMode(gin.ReleaseMode)

	h := &api{svc: svc, log: log}

	engine := gin.New()
	engine.Use(
		requestID(),
		accessLog(log, col),
		gin.CustomRecovery(h.recovered),
		cors(),
	)
	engine.NoRoute(func(c *gin.Context) {
		h.fail(c, errs.NotFound())
	})

	g := engine.Group(BasePath)
	g.GET("", h.list)
	g.GET("/favoritos", h.favorites)
	g.GET("/buscar", h.search)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deactivate)
	g.PATCH("/:id/favorito", h.toggleFavorite)

	return engine
}

type api struct {
	svc *Service
	log logger.LoggerInterface
}

func (h *api) list(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *api) favorites(c *gin.Context) {
	out, err := h.svc.Favorites(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *api) search(c *gin.Context) {
	term, ok := c.GetQuery("termo")
	if !ok {
		h.fail(c, errs.BadRequest("missing_param", "Parâmetro 'termo' é obrigatório"))
		return
	}
	out, err := h.svc.Search(c.Request.Context(), term)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *api) get(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	out, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *api) create(c *gin.Context) {
	in, ok := h.body(c)
	if !ok {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *api) update(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	in, ok := h.body(c)
	if !ok {
		return
	}
	out, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *api) deactivate(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *api) toggleFavorite(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}
	out, err := h.svc.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *api) id(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, errs.BadRequest("invalid_id", "ID inválido: "+c.Param("id")))
		return 0, false
	}
	return id, true
}

func (h *api) body(c *gin.Context) (Input, bool) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		h.log.WarnwCtx(c.Request.Context(), "malformed body", "err", err)
		h.fail(c, errs.BadRequest("malformed_body", "Corpo da requisição inválido"))
		return Input{}, false
	}
	return in, true
}

// fail renders err in the API error shape. Internal failures are logged
// with their cause; the client only sees the generic message.
func (h *api) fail(c *gin.Context, err error) {
	resp := errs.ToErrorResponse(err)
	status := errs.HTTPStatus(resp.Code)
	if status >= http.StatusInternalServerError {
		h.log.ErrorwCtx(c.Request.Context(), "request failed", "err", err)
	} else {
		h.log.InfowCtx(c.Request.Context(), "request rejected", "status", status, "message", resp.Message)
	}
	c.AbortWithStatusJSON(status, resp.Body())
}

func (h *api) recovered(c *gin.Context, rec any) {
	h.log.ErrorwCtx(c.Request.Context(), "panic recovered", "panic", rec)
	c.Abort()
	errs.Internal().ToHTTP(c.Writer)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func accessLog(log logger.LoggerInterface, col *metrics.Collectors) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		d := time.Since(start)
		status := c.Writer.Status()
		col.ObserveRequest(c.Request.Method, c.FullPath(), status, d)
		log.InfowCtx(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"duration", d,
			"ip", c.ClientIP(),
		)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+HeaderRequestID)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
