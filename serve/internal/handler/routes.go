package handler

import (
	"errors"
	"net/http"

	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/models/message"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/pprof"
	"github.com/HuXin0817/dots-and-boxes-p2p/pkg/saves"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/logic"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/svc"
	"github.com/HuXin0817/dots-and-boxes-p2p/serve/internal/types"
	"github.com/gin-gonic/gin"
)

func NewRouter(svcCtx *svc.ServiceContext) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/history", historyHandler(svcCtx))
	router.GET("/history/:game", gameResultHandler(svcCtx))
	router.GET("/saves", listSavesHandler(svcCtx))
	router.GET("/saves/:id", getSaveHandler(svcCtx))
	router.DELETE("/saves/:id", deleteSaveHandler(svcCtx))

	if svcCtx.Config.Http.Pprof {
		pprof.Register(router)
	}
	return router
}

func fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, saves.ErrNotFound), errors.Is(err, logic.ErrResultNotFound):
		code = http.StatusNotFound
	case errors.Is(err, message.ErrDecode):
		code = http.StatusBadRequest
	case errors.Is(err, saves.ErrCorrupt):
		code = http.StatusUnprocessableEntity
	}
	c.JSON(code, types.ErrorResponse{Error: err.Error()})
}

func historyHandler(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := logic.NewHistoryLogic(c.Request.Context(), svcCtx).History()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func gameResultHandler(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := logic.NewHistoryLogic(c.Request.Context(), svcCtx).Game(c.Param("game"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func listSavesHandler(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := logic.NewSavesLogic(c.Request.Context(), svcCtx).List()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func getSaveHandler(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := logic.NewSavesLogic(c.Request.Context(), svcCtx).Get(c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func deleteSaveHandler(svcCtx *svc.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := logic.NewSavesLogic(c.Request.Context(), svcCtx).Delete(c.Param("id")); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
