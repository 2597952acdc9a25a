package state

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"statelab/pkg/logger"
)

// Status tags a resource snapshot. Idle and in-flight share one variant;
// data and error are mutually exclusive in the other two.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		panic(fmt.Sprintf("unknown resource status %d", int(s)))
	}
}

// RequestOptions carries the semantic content of a request. Two option sets
// with equal method, headers and body form the same re-fetch key.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    string
}

func (o RequestOptions) canonical() string {
	method := o.Method
	if method == "" {
		method = http.MethodGet
	}
	keys := make([]string, 0, len(o.Headers))
	for k := range o.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(method)
	for _, k := range keys {
		b.WriteByte('\n')
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(o.Headers[k])
	}
	b.WriteByte('\n')
	b.WriteString(o.Body)
	return b.String()
}

// Snapshot is the observable state of a Resource at one point in time.
type Snapshot[T any] struct {
	Data    T
	Err     error
	Loading bool
	settled bool
}

// Status maps the snapshot onto its tagged variant.
func (s Snapshot[T]) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.Err != nil:
		return StatusFailure
	case s.settled:
		return StatusSuccess
	default:
		// Never observed anything yet: idle folds into loading.
		return StatusLoading
	}
}

// Resource fetches a typed JSON payload from a URL, re-fetching whenever the
// (url, options) key changes. Completions are guarded by a generation
// counter: only the most recent request may write state, so a slow earlier
// request can never overwrite the result of a faster later one. Requests are
// not aborted mid-flight; cancellation is of the observable result only.
type Resource[T any] struct {
	client *http.Client
	group  singleflight.Group

	mu      sync.Mutex
	key     string
	gen     uint64
	loading bool
	settled bool
	data    T
	err     error
	closed  bool
}

// NewResource creates an idle resource. A nil client means
// http.DefaultClient. Note there is no request timeout unless the client
// carries one: a request that never resolves leaves the resource loading
// forever.
func NewResource[T any](client *http.Client) *Resource[T] {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resource[T]{client: client}
}

// Observe points the resource at (url, opts). An unchanged key is a no-op; a
// changed key supersedes any in-flight request, sets loading, clears the
// prior error and issues exactly one new request.
func (r *Resource[T]) Observe(ctx context.Context, url string, opts RequestOptions) {
	key := url + "\x00" + opts.canonical()

	r.mu.Lock()
	if r.closed || key == r.key {
		r.mu.Unlock()
		return
	}
	r.key = key
	r.gen++
	gen := r.gen
	r.loading = true
	r.err = nil
	r.mu.Unlock()

	go r.fetch(ctx, gen, key, url, opts)
}

func (r *Resource[T]) fetch(ctx context.Context, gen uint64, key, url string, opts RequestOptions) {
	// Concurrent observers of the same key share one request.
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		return r.do(ctx, url, opts)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.gen {
		// Superseded or torn down: this completion must not mutate state.
		logger.Debug(ctx, "Resource completion dropped", "url", url)
		return
	}
	r.loading = false
	r.settled = true
	if err != nil {
		var zero T
		r.data = zero
		r.err = err
		return
	}
	r.data = v.(T)
	r.err = nil
}

func (r *Resource[T]) do(ctx context.Context, url string, opts RequestOptions) (T, error) {
	var out T
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if opts.Body != "" {
		body = strings.NewReader(opts.Body)
	}
	// The network request is deliberately detached from the observer's
	// cancellation; superseded results are suppressed at the state boundary.
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), method, url, body)
	if err != nil {
		return out, err
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return out, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("HTTP error! Status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// Snapshot returns the current observable state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{Data: r.data, Err: r.err, Loading: r.loading, settled: r.settled}
}

// Close tears the resource down. Any pending completion is suppressed; the
// underlying requests are left to run out on their own.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.gen++
}
