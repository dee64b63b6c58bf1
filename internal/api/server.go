// Package api exposes the signing pipeline over HTTP.
//
// The surface is deliberately small: one endpoint that produces signed
// responses, one that verifies them, and health/info probes. Everything
// cryptographic lives below the pipeline; handlers only shape requests and
// map errors to status codes.
package api

import (
	"context"
	"encoding/hex"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/ethaddr"
	"github.com/attestlab/attestd/internal/pipeline"
	"github.com/attestlab/attestd/internal/schnorr"
)

// Server is the HTTP front end of a signing node.
type Server struct {
	engine          *gin.Engine
	pipe            *pipeline.Pipeline
	listen          string
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for the Server.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger.With().Str("component", "api").Logger()
	}
}

// WithTimeouts overrides the per-request and shutdown timeouts.
func WithTimeouts(request, shutdown time.Duration) Option {
	return func(s *Server) {
		s.requestTimeout = request
		s.shutdownTimeout = shutdown
	}
}

// NewServer creates the HTTP server for a pipeline, listening on listen.
func NewServer(pipe *pipeline.Pipeline, listen string, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:          gin.New(),
		pipe:            pipe,
		listen:          listen,
		requestTimeout:  30 * time.Second,
		shutdownTimeout: 10 * time.Second,
		logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(requestTracing(s.logger))

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/v1/info", s.handleInfo)
	s.engine.POST("/v1/query", s.handleQuery)
	s.engine.POST("/v1/verify", s.handleVerify)

	return s
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully within the
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("listen", s.listen).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "http server shutdown")
	})

	return g.Wait()
}

// queryRequest is the body of POST /v1/query.
type queryRequest struct {
	App    string         `json:"app" binding:"required"`
	Method string         `json:"method" binding:"required"`
	Params map[string]any `json:"params"`
}

// handleQuery runs one signing request through the pipeline.
func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "app and method are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	resp, err := s.pipe.Process(ctx, req.App, req.Method, req.Params)
	if err != nil {
		s.logger.Warn().
			Str("trace_id", traceID(c)).
			Str("app", req.App).
			Str("method", req.Method).
			Err(err).
			Msg("signing request failed")
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// verifyRequest is the body of POST /v1/verify. The public key travels in its
// minimal view form: x-coordinate plus y-parity.
type verifyRequest struct {
	X         string `json:"x" binding:"required"`
	YParity   string `json:"yParity" binding:"required"`
	Digest    string `json:"digest" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// handleVerify checks a signature against a digest and a minimal public-key
// view. Structural problems with the key or digest are 400s; a well-formed
// but invalid signature is a 200 with valid=false.
func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x, yParity, digest and signature are required"})
		return
	}

	pub, err := parseMinimalKey(req.X, req.YParity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	digest, err := hex.DecodeString(strings.TrimPrefix(req.Digest, "0x"))
	if err != nil || len(digest) != schnorr.DigestLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "digest must be 32 bytes of hex"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": schnorr.VerifyEncoded(pub, digest, req.Signature),
		"owner": ethaddr.Derive(pub),
	})
}

// handleInfo reports the node's signing identity and registered modules.
func (s *Server) handleInfo(c *gin.Context) {
	id := s.pipe.Identity()
	c.JSON(http.StatusOK, gin.H{
		"owner":       id.Address(),
		"ownerPubKey": ethaddr.NewView(id.Public(), false),
		"modules":     s.pipe.Modules(),
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseMinimalKey reconstructs a public key from its x-coordinate and
// y-parity.
func parseMinimalKey(xHex, yParity string) (*secp256k1.PublicKey, error) {
	x, err := hex.DecodeString(strings.TrimPrefix(xHex, "0x"))
	if err != nil || len(x) != 32 {
		return nil, errors.Wrap(errors.ErrInvalidPoint, "x must be 32 bytes of hex")
	}

	prefix := byte(secp256k1.PubKeyFormatCompressedEven)
	switch yParity {
	case "0":
	case "1":
		prefix = secp256k1.PubKeyFormatCompressedOdd
	default:
		return nil, errors.Wrap(errors.ErrInvalidPoint, "yParity must be 0 or 1")
	}

	compressed := append([]byte{prefix}, x...)
	pub, err := secp256k1.ParsePubKey(compressed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidPoint, "not a curve point")
	}
	return pub, nil
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrModuleNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrInvalidParams),
		stderrors.Is(err, errors.ErrFieldValueMismatch),
		stderrors.Is(err, errors.ErrUnknownFieldType):
		return http.StatusBadRequest
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
