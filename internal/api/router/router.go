// Package router registers the HTTP routes and maps pipeline errors
// to status codes.
package router

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"

	"cv-match-go/internal/api/handler"
	"cv-match-go/internal/config"
	"cv-match-go/internal/embedding"
	"cv-match-go/internal/parser"
)

// RegisterRoutes wires the API. When server.api_key is set the match
// routes require it via the X-API-Key header; health stays open.
func RegisterRoutes(h *server.Hertz, cfg *config.Config, matchHandler *handler.MatchHandler) {
	api := h.Group("/api/v1")

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	match := api.Group("/match")
	if cfg.Server.APIKey != "" {
		match.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == cfg.Server.APIKey, nil
			}),
		))
	}

	match.POST("/analyze", func(c context.Context, ctx *app.RequestContext) {
		cvName, cvData, err := readCV(ctx)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		offerText := ctx.PostForm("offer_text")

		resp, err := matchHandler.HandleAnalyze(c, cvName, cvData, offerText)
		if err != nil {
			ctx.JSON(statusFor(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	match.GET("/result/:session", func(c context.Context, ctx *app.RequestContext) {
		sessionID := ctx.Param("session")
		rep, ok := matchHandler.HandleResult(sessionID)
		if !ok {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "unknown or expired session"})
			return
		}
		ctx.JSON(consts.StatusOK, rep)
	})
}

// readCV accepts the CV either as a multipart file upload (cv_file) or
// as a plain form field (cv_text).
func readCV(ctx *app.RequestContext) (string, []byte, error) {
	fileHeader, err := ctx.FormFile("cv_file")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return "", nil, errors.New("cannot open uploaded file")
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, errors.New("cannot read uploaded file")
		}
		return fileHeader.Filename, data, nil
	}

	if text := ctx.PostForm("cv_text"); text != "" {
		return "cv.txt", []byte(text), nil
	}
	return "", nil, errors.New("cv_file or cv_text is required")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, handler.ErrInputTooShort),
		errors.Is(err, parser.ErrUnsupportedFormat):
		return consts.StatusBadRequest
	case errors.Is(err, embedding.ErrUnavailable):
		return consts.StatusServiceUnavailable
	default:
		return consts.StatusInternalServerError
	}
}
