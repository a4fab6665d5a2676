// Package server exposes the squaring engine as a small JSON HTTP service
// with Prometheus metrics and OpenTelemetry spans.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/cmplxcalc/internal/batch"
	"github.com/agbru/cmplxcalc/internal/bigcmplx"
	"github.com/agbru/cmplxcalc/internal/bigfloat"
	"github.com/agbru/cmplxcalc/internal/config"
	"github.com/agbru/cmplxcalc/internal/logging"
)

// tracerName identifies the spans emitted around square evaluations.
const tracerName = "github.com/agbru/cmplxcalc/internal/server"

// Config holds the HTTP service configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DefaultPrec is the precision used when a request does not name one.
	DefaultPrec uint
	// ReadTimeout bounds reading a full request.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing a full response.
	WriteTimeout time.Duration
	// ShutdownTimeout bounds the graceful drain on exit.
	ShutdownTimeout time.Duration
	// Security is the hardening applied to the API endpoint.
	Security SecurityConfig
}

// DefaultServerConfig returns the service defaults for the given listen
// address.
//
// Parameters:
//   - addr: The listen address (empty uses the application default).
//
// Returns:
//   - Config: The populated configuration.
func DefaultServerConfig(addr string) Config {
	if addr == "" {
		addr = config.DefaultAddr
	}
	return Config{
		Addr:            addr,
		DefaultPrec:     config.DefaultPrec,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		Security:        DefaultSecurityConfig(),
	}
}

// Server is the HTTP squaring service.
type Server struct {
	config  Config
	metrics *Metrics
	logger  logging.Logger
	tracer  trace.Tracer
}

// New creates a Server with its own metrics registry and tracer.
//
// Parameters:
//   - cfg: The service configuration.
//   - logger: Destination for request logs.
//
// Returns:
//   - *Server: The configured server.
func New(cfg Config, logger logging.Logger) *Server {
	if cfg.DefaultPrec < config.MinPrec {
		cfg.DefaultPrec = config.DefaultPrec
	}
	return &Server{
		config:  cfg,
		metrics: NewMetrics(),
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// Handler builds the route table with security and metrics middleware
// applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/square", SecurityMiddleware(s.config.Security, s.metricsMiddleware(s.handleSquare)))
	mux.HandleFunc("/healthz", s.metricsMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Run serves HTTP until ctx is canceled, then drains gracefully.
//
// Parameters:
//   - ctx: Cancellation stops the listener.
//
// Returns:
//   - error: The listener error, or nil after a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.config.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}

// metricsMiddleware tracks in-flight requests, totals and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.IncrementActiveRequests()
		defer func() {
			s.metrics.DecrementActiveRequests()
			s.metrics.ObserveRequestDuration(time.Since(start).Seconds())
		}()
		next(w, r)
	}
}

// squareRequest is the JSON body accepted by POST /api/square.
type squareRequest struct {
	// Input is the complex operand text, e.g. "1.5+2i".
	Input string `json:"input"`
	// Prec is the real-component result precision in bits (0 = default).
	Prec uint `json:"prec,omitempty"`
	// PrecIm is the imaginary-component precision (0 = same as Prec).
	PrecIm uint `json:"prec_im,omitempty"`
	// Round names the rounding mode for both components (default nearest).
	Round string `json:"round,omitempty"`
	// RoundRe and RoundIm override Round per component.
	RoundRe string `json:"round_re,omitempty"`
	RoundIm string `json:"round_im,omitempty"`
	// Emin and Emax bound the result exponent range (0, 0 = unbounded).
	Emin int `json:"emin,omitempty"`
	Emax int `json:"emax,omitempty"`
}

// squareResponse is the JSON body returned by POST /api/square.
type squareResponse struct {
	Input      string  `json:"input"`
	Result     string  `json:"result"`
	Re         string  `json:"re"`
	Im         string  `json:"im"`
	InexactRe  int     `json:"inexact_re"`
	InexactIm  int     `json:"inexact_im"`
	Overflow   bool    `json:"overflow"`
	Underflow  bool    `json:"underflow"`
	Prec       uint    `json:"prec"`
	DurationMs float64 `json:"duration_ms"`
}

// errorResponse is the JSON body returned on any request failure.
type errorResponse struct {
	Error string `json:"error"`
}

// handleSquare evaluates one squaring request.
func (s *Server) handleSquare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(s.config.Security.MaxInputLen)+1024)
	var req squareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	opts, err := s.requestOptions(req)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	_, span := s.tracer.Start(r.Context(), "server.square",
		trace.WithAttributes(
			attribute.String("operand", req.Input),
			attribute.Int("prec", int(opts.Prec)),
		))
	defer span.End()

	start := time.Now()
	res := batch.SquareOne(req.Input, opts)
	elapsed := time.Since(start)

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "square failed")
		s.metrics.IncrementSquareErrors()
		s.writeError(w, r, http.StatusUnprocessableEntity, res.Err.Error())
		return
	}

	resp := squareResponse{
		Input:      req.Input,
		Result:     res.Value.Text('g', -1),
		Re:         res.Value.Real().Text('g', -1),
		Im:         res.Value.Imag().Text('g', -1),
		InexactRe:  res.Inexact.Re,
		InexactIm:  res.Inexact.Im,
		Overflow:   res.Overflow,
		Underflow:  res.Underflow,
		Prec:       opts.Prec,
		DurationMs: float64(elapsed.Microseconds()) / 1000.0,
	}

	s.logger.Info("square served",
		logging.String("operand", req.Input),
		logging.Int("prec", int(opts.Prec)),
		logging.Float64("duration_ms", resp.DurationMs))

	s.writeJSON(w, http.StatusOK, resp)
}

// requestOptions validates a request and converts it to squaring options.
func (s *Server) requestOptions(req squareRequest) (batch.Options, error) {
	var o batch.Options

	if req.Input == "" {
		return o, errors.New("missing operand: set the \"input\" field")
	}
	if len(req.Input) > s.config.Security.MaxInputLen {
		return o, fmt.Errorf("operand too long: %d bytes (limit %d)", len(req.Input), s.config.Security.MaxInputLen)
	}

	o.Prec = req.Prec
	if o.Prec == 0 {
		o.Prec = s.config.DefaultPrec
	}
	if o.Prec < config.MinPrec {
		return o, fmt.Errorf("prec %d is below the minimum of %d bits", o.Prec, config.MinPrec)
	}
	if s.config.Security.MaxPrec > 0 && o.Prec > s.config.Security.MaxPrec {
		return o, fmt.Errorf("prec %d exceeds the limit of %d bits", o.Prec, s.config.Security.MaxPrec)
	}
	o.PrecIm = req.PrecIm
	if s.config.Security.MaxPrec > 0 && o.PrecIm > s.config.Security.MaxPrec {
		return o, fmt.Errorf("prec_im %d exceeds the limit of %d bits", o.PrecIm, s.config.Security.MaxPrec)
	}

	o.Rounding = bigcmplx.Nearest()
	both := req.Round
	if both != "" {
		mode, ok := bigfloat.ParseMode(both)
		if !ok {
			return o, fmt.Errorf("unknown rounding mode %q", both)
		}
		o.Rounding.Re = mode
		o.Rounding.Im = mode
	}
	if req.RoundRe != "" {
		mode, ok := bigfloat.ParseMode(req.RoundRe)
		if !ok {
			return o, fmt.Errorf("unknown rounding mode %q", req.RoundRe)
		}
		o.Rounding.Re = mode
	}
	if req.RoundIm != "" {
		mode, ok := bigfloat.ParseMode(req.RoundIm)
		if !ok {
			return o, fmt.Errorf("unknown rounding mode %q", req.RoundIm)
		}
		o.Rounding.Im = mode
	}

	if req.Emin != 0 || req.Emax != 0 {
		if req.Emin >= req.Emax || req.Emin > 0 || req.Emax < 0 {
			return o, fmt.Errorf("invalid exponent range [%d, %d]: need emin < 0 < emax", req.Emin, req.Emax)
		}
		o.Emin = req.Emin
		o.Emax = req.Emax
	}

	return o, nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves the Prometheus exposition endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("metrics request rejected", logging.String("method", r.Method))
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.Error("response encoding failed", err)
	}
}

// writeError writes a JSON error response and logs it.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if s.logger != nil {
		s.logger.Debug("request rejected",
			logging.String("path", r.URL.Path),
			logging.String("method", r.Method),
			logging.Int("status", status),
			logging.String("reason", msg))
	}
	s.writeJSON(w, status, errorResponse{Error: msg})
}
