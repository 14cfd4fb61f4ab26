// Package backend implements the Backend port: single JSON calls against the
// remote trail service with a bounded timeout and a permanent-until-success
// circuit breaker.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Backend = (*Executor)(nil)

// DefaultTimeout bounds every call.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// RequestIDHeader carries a per-call identifier for log correlation.
const RequestIDHeader = "X-Request-ID"

// State is the connection and credential state the executor reads and
// updates. *application.Session satisfies it.
type State interface {
	// Begin returns false when the circuit is open; otherwise it marks the
	// state attempted and returns true.
	Begin() bool
	// Settle records the result of a finished attempt.
	Settle(reachable bool)
	// Token returns the bearer token for outgoing requests, or "".
	Token() string
}

// Executor issues calls to the remote service and normalizes every result
// into a model.Outcome.
type Executor struct {
	client         *http.Client
	caches         *tokenCaches
	baseURL        string
	timeout        time.Duration
	enabled        bool
	state          State
	notifier       driven.OfflineNotifier
	criticalPrefix string
	noticeShown    atomic.Bool
	metrics        *metrics
	logger         *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithHTTPClient replaces the default caching HTTP client. Tests inject the
// client of an httptest server here.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Executor) { e.client = c }
}

// WithTransport sets the transport under the response cache. Defaults to
// http.DefaultTransport. Ignored when WithHTTPClient is given.
func WithTransport(rt http.RoundTripper) Option {
	return func(e *Executor) { e.caches.base = rt }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithEnabled sets the global backend toggle. A disabled executor never
// performs network I/O.
func WithEnabled(enabled bool) Option {
	return func(e *Executor) { e.enabled = enabled }
}

// WithOfflineNotifier sets the collaborator that shows the one-time offline
// notice for failures on paths starting with prefix.
func WithOfflineNotifier(n driven.OfflineNotifier, prefix string) Option {
	return func(e *Executor) {
		e.notifier = n
		e.criticalPrefix = prefix
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor creates an Executor for baseURL. The default transport stack is
// an in-memory ETag cache (httpcache) over http.DefaultTransport, with one
// cache per bearer token.
func NewExecutor(baseURL string, state State, opts ...Option) *Executor {
	e := &Executor{
		caches:  &tokenCaches{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		enabled: true,
		state:   state,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = newMetrics(nil)
	}
	return e
}

// Execute performs one call. It never returns an error; failures become an
// absent Outcome and open the circuit until a later call succeeds.
func (e *Executor) Execute(ctx context.Context, req model.RequestDescriptor) model.Outcome {
	if !e.enabled {
		return e.finish(ctx, req, model.Absent(model.AbsentDisabled))
	}
	if !e.state.Begin() {
		return e.finish(ctx, req, model.Absent(model.AbsentPreviouslyUnreachable))
	}

	out := e.do(ctx, req)
	e.state.Settle(out.OK())
	return e.finish(ctx, req, out)
}

// do performs the network round trip. The deadline is derived from a
// context detached from the caller's cancellation, so the timeout is the
// only thing that cancels the transport call.
func (e *Executor) do(parent context.Context, req model.RequestDescriptor) model.Outcome {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), e.timeout)
	defer cancel()

	requestID := uuid.NewString()
	logger := e.logger.With("method", req.Method, "path", req.Path, "request_id", requestID)
	start := time.Now()
	token := e.state.Token()

	httpReq, err := e.newRequest(ctx, req, requestID, token)
	if err != nil {
		logger.Warn("backend: failed to build request", "error", err)
		return model.Absent(model.AbsentTransportError)
	}

	resp, err := e.httpClient(token).Do(httpReq)
	if err != nil {
		return e.classify(ctx, logger, err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return e.classify(ctx, logger, err, "reading response body failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out := model.Absent(model.AbsentNon2xxStatus)
		out.StatusCode = resp.StatusCode
		var payload model.ErrorPayload
		if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
			out.Message = payload.Text()
		}
		logger.Warn("backend: non-2xx response",
			"status", resp.StatusCode,
			"message", out.Message,
			"duration", time.Since(start).Round(time.Millisecond),
		)
		return out
	}

	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("null")
	}
	if !json.Valid(body) {
		logger.Warn("backend: response is not valid JSON", "status", resp.StatusCode)
		return model.Absent(model.AbsentTransportError)
	}

	logger.Debug("backend call",
		"status", resp.StatusCode,
		"from_cache", resp.Header.Get(httpcache.XFromCache) != "",
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return model.Success(json.RawMessage(body))
}

// newRequest builds the HTTP request. Header precedence, lowest first:
// JSON content type, request ID, bearer token, per-call overrides.
func (e *Executor) newRequest(ctx context.Context, req model.RequestDescriptor, requestID, token string) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, e.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// classify maps a transport-level error to timeout or transport-error.
func (e *Executor) classify(ctx context.Context, logger *slog.Logger, err error, msg string) model.Outcome {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		logger.Warn("backend: "+msg+", timed out", "timeout", e.timeout, "error", err)
		return model.Absent(model.AbsentTimeout)
	}
	logger.Warn("backend: "+msg, "error", err)
	return model.Absent(model.AbsentTransportError)
}

// finish records metrics and raises the offline notice when due.
func (e *Executor) finish(ctx context.Context, req model.RequestDescriptor, out model.Outcome) model.Outcome {
	e.metrics.observe(out)

	if out.OK() {
		return out
	}

	e.logger.Debug("backend call absent", "path", req.Path, "reason", out.Reason)

	if out.Reason != model.AbsentDisabled && e.isCritical(req.Path) && e.noticeShown.CompareAndSwap(false, true) {
		e.notifier.ShowOffline(ctx, model.OfflineNotice{
			Message: model.OfflineMessage,
			Path:    req.Path,
			Reason:  out.Reason,
		})
	}

	return out
}

func (e *Executor) isCritical(path string) bool {
	return e.notifier != nil && e.criticalPrefix != "" && strings.HasPrefix(path, e.criticalPrefix)
}

func (e *Executor) httpClient(token string) *http.Client {
	if e.client != nil {
		return e.client
	}
	return e.caches.client(token)
}

// tokenCaches hands out a caching client whose cache belongs to a single
// bearer token. A token change starts an empty cache, so a response cached
// for one credential is never served under another. Requests still in
// flight under the old token write into the discarded cache.
type tokenCaches struct {
	base http.RoundTripper

	mu     sync.Mutex
	token  string
	cached *http.Client
}

func (c *tokenCaches) client(token string) *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached == nil || c.token != token {
		t := httpcache.NewMemoryCacheTransport()
		t.Transport = c.base
		c.cached = t.Client()
		c.token = token
	}
	return c.cached
}
