package httpx

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// "*" allows any origin without credentials.
	CORSAllowedOrigins string
	// RateLimitPerMinute caps requests per client IP. Zero means 100.
	RateLimitPerMinute int
	// MaxBodyBytes caps request bodies, including documentation uploads. Zero means 10 MB.
	MaxBodyBytes int64
	// HandlerTimeout bounds each request's context. Zero means 30s.
	HandlerTimeout time.Duration
}

// Middlewares are the observability middlewares owned by other packages.
// Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler // last line of defence, answers 500
	Sentry   func(http.Handler) http.Handler // reports panics and re-panics
	Tracing  func(http.Handler) http.Handler // one span per request
	Logging  func(http.Handler) http.Handler // one log line per request
}

const (
	defaultRateLimitPerMinute = 100
	defaultMaxBodyBytes       = 10 << 20
	defaultHandlerTimeout     = 30 * time.Second
)

// NewRouter returns a chi.Mux carrying the API's middleware chain, from the
// outside in: recovery, sentry, request id, tracing, logging, real ip, rate
// limit, CORS, body limit, timeout and security headers. Logging runs inside
// tracing so request lines carry the trace id, and outside the rate limiter so
// throttled requests are still logged.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	rate := cfg.RateLimitPerMinute
	if rate <= 0 {
		rate = defaultRateLimitPerMinute
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	timeout := cfg.HandlerTimeout
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}

	chain := []func(http.Handler) http.Handler{mw.Recovery, mw.Sentry, middleware.RequestID, mw.Tracing, mw.Logging}
	chain = slices.DeleteFunc(chain, func(m func(http.Handler) http.Handler) bool { return m == nil })
	chain = append(chain,
		middleware.RealIP,
		httprate.LimitByIP(rate, time.Minute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(maxBody),
		middleware.Timeout(timeout),
		SecurityHeaders(cfg.IsDevelopment),
	)

	r := chi.NewRouter()
	r.Use(chain...)
	return r
}

// SecurityHeaders sets HSTS, CSP, frame and sniffing protections. In
// development HSTS and the SSL checks are off.
func SecurityHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=()",
		IsDevelopment:         isDevelopment,
	}).Handler
}

// CORSMiddleware allows the listed origins ("https://app.example.com,http://localhost:3000").
// Session cookies are only sent cross-origin when origins are listed
// explicitly; "*" disables credentials.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location", "X-Request-Id"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps request bodies at maxBytes. Reads past the cap fail
// with *http.MaxBytesError, which handlers answer with 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server with the API's timeouts. WriteTimeout
// leaves room past the handler timeout for the error response.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      defaultHandlerTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}
}
