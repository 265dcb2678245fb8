package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reelpipe/internal/logger"
)

const (
	defaultReadTimeout = 15 * time.Second
	// A run holds its response open through the LLM stage, which can
	// take minutes on a cold model.
	defaultWriteTimeout = 10 * time.Minute
	defaultIdleTimeout  = 120 * time.Second
)

// NewServer creates the HTTP server hosting the pipeline API.
func NewServer(pipelineHandler *PipelineHandler, port int, debug bool, log *logger.Logger) *http.Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	SetupRoutes(router, pipelineHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}
}
