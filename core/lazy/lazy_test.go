package lazy

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/YuminosukeSato/lazyml/pkg/errors"
	"github.com/YuminosukeSato/lazyml/pkg/log"
)

// fakeEngine is a resolution target with a version and a member surface.
type fakeEngine struct {
	Label string
}

func (f *fakeEngine) Version() string { return "1.2.3" }
func (f *fakeEngine) Greet() string   { return "hello from " + f.Label }

// countingResolver counts resolution attempts per import path and fails
// for paths listed in failing.
type countingResolver struct {
	mu       sync.Mutex
	attempts map[string]int
	failing  map[string]bool
}

func newCountingResolver(failing ...string) *countingResolver {
	f := make(map[string]bool, len(failing))
	for _, p := range failing {
		f[p] = true
	}
	return &countingResolver{attempts: make(map[string]int), failing: f}
}

func (r *countingResolver) Resolve(importPath string) (any, error) {
	r.mu.Lock()
	r.attempts[importPath]++
	r.mu.Unlock()
	if r.failing[importPath] {
		return nil, fmt.Errorf("no backend registered for import path %q", importPath)
	}
	return &fakeEngine{Label: importPath}, nil
}

func (r *countingResolver) count(importPath string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts[importPath]
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry([]Spec{
		{Name: "foo", ImportPath: "example.com/foo_pkg", Summary: "foo backend"},
		{Name: "bar", ImportPath: "example.com/bar_pkg", Summary: "bar backend"},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	return reg
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Spec{
		{Name: "foo", ImportPath: "a"},
		{Name: "foo", ImportPath: "b"},
	})
	if err == nil {
		t.Fatal("expected duplicate name to be rejected")
	}
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestHandleIdentityIsStable(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	cache := NewCache(testRegistry(t), newCountingResolver(), logger)

	h1, ok := cache.Handle("foo")
	if !ok {
		t.Fatal("expected a handle for registered name foo")
	}
	h2, ok := cache.Handle("foo")
	if !ok {
		t.Fatal("expected a handle on repeated lookup")
	}
	if h1 != h2 {
		t.Error("repeated lookup must return the same handle instance")
	}

	if _, ok := cache.Handle("quux"); ok {
		t.Error("unregistered name must not yield a handle")
	}
}

func TestResolveCachesTarget(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	resolver := newCountingResolver()
	cache := NewCache(testRegistry(t), resolver, logger)

	h, _ := cache.Handle("foo")
	t1, err := h.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	t2, err := h.Resolve()
	if err != nil {
		t.Fatalf("second Resolve() error: %v", err)
	}
	if t1 != t2 {
		t.Error("resolved target must be reused, not rebuilt")
	}
	if got := resolver.count("example.com/foo_pkg"); got != 1 {
		t.Errorf("resolver attempts = %d, want exactly 1", got)
	}

	if got := cache.Loaded(); len(got) != 1 || got[0] != "foo" {
		t.Errorf("Loaded() = %v, want [foo]", got)
	}
}

func TestFailedResolveIsRetriedAndNotLedgered(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	resolver := newCountingResolver("example.com/foo_pkg")
	cache := NewCache(testRegistry(t), resolver, logger)

	h, _ := cache.Handle("foo")

	_, err := h.Resolve()
	if err == nil {
		t.Fatal("expected resolution failure")
	}
	var loadErr *errors.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %T", err)
	}
	if loadErr.Backend != "foo" {
		t.Errorf("LoadError.Backend = %q, want %q", loadErr.Backend, "foo")
	}
	if !strings.Contains(err.Error(), "foo_pkg") {
		t.Errorf("error %q should mention the import path", err)
	}

	if h.Resolved() {
		t.Error("failed resolution must leave the handle unresolved")
	}
	if got := cache.Loaded(); len(got) != 0 {
		t.Errorf("Loaded() = %v, want empty ledger after failure", got)
	}

	// A second attempt retries; failure is not cached as permanent.
	if _, err := h.Resolve(); err == nil {
		t.Fatal("expected the retry to fail as well")
	}
	if got := resolver.count("example.com/foo_pkg"); got != 2 {
		t.Errorf("resolver attempts = %d, want 2 (one per call)", got)
	}
}

func TestEveryAttemptEmitsNotice(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	resolver := newCountingResolver("example.com/foo_pkg")
	cache := NewCache(testRegistry(t), resolver, logger)

	h, _ := cache.Handle("foo")
	_, _ = h.Resolve()
	_, _ = h.Resolve()

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatalf("GetLogEntries() error: %v", err)
	}
	var notices int
	for _, e := range entries {
		if e["message"] == "loading backend" {
			notices++
		}
	}
	if notices != 2 {
		t.Errorf("got %d loading notices, want 2 (one per attempt, failures included)", notices)
	}
	if !logger.ContainsField(log.OutcomeKey, log.OutcomeFailed) {
		t.Error("expected a failed outcome in the log")
	}
}

func TestConcurrentFirstAccessBuildsOnce(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelError)
	resolver := newCountingResolver()
	cache := NewCache(testRegistry(t), resolver, logger)

	const goroutines = 16
	var wg sync.WaitGroup
	var failures atomic.Int32
	targets := make([]any, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, ok := cache.Handle("bar")
			if !ok {
				failures.Add(1)
				return
			}
			tgt, err := h.Resolve()
			if err != nil {
				failures.Add(1)
				return
			}
			targets[i] = tgt
		}(i)
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Fatalf("%d goroutines failed to resolve", failures.Load())
	}
	if got := resolver.count("example.com/bar_pkg"); got != 1 {
		t.Errorf("resolver attempts = %d, want exactly 1 under concurrent first access", got)
	}
	for i := 1; i < goroutines; i++ {
		if targets[i] != targets[0] {
			t.Fatal("all goroutines must observe the same target")
		}
	}
}

func TestAttrForwardsToTarget(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	cache := NewCache(testRegistry(t), newCountingResolver(), logger)

	h, _ := cache.Handle("foo")

	v, err := h.Attr("Greet")
	if err != nil {
		t.Fatalf("Attr(Greet) error: %v", err)
	}
	greet, ok := v.(func() string)
	if !ok {
		t.Fatalf("Attr(Greet) = %T, want func() string", v)
	}
	if got := greet(); !strings.Contains(got, "foo_pkg") {
		t.Errorf("Greet() = %q, want the engine label", got)
	}

	// Exported fields are reachable too.
	if v, err := h.Attr("Label"); err != nil {
		t.Errorf("Attr(Label) error: %v", err)
	} else if v != "example.com/foo_pkg" {
		t.Errorf("Attr(Label) = %v, want import path label", v)
	}

	_, err = h.Attr("NoSuchMember")
	if err == nil {
		t.Fatal("expected AttributeError for unknown member")
	}
	var attrErr *errors.AttributeError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected AttributeError, got %T", err)
	}
	if attrErr.Namespace != "foo" {
		t.Errorf("AttributeError.Namespace = %q, want backend name", attrErr.Namespace)
	}
}

func TestAttrSurfacesLoadErrorFirst(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelError)
	cache := NewCache(testRegistry(t), newCountingResolver("example.com/foo_pkg"), logger)

	h, _ := cache.Handle("foo")
	_, err := h.Attr("Greet")
	var loadErr *errors.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError before member lookup, got %T", err)
	}
}

func TestAttrsIsNonFatal(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelError)
	cache := NewCache(testRegistry(t), newCountingResolver("example.com/foo_pkg"), logger)

	h, _ := cache.Handle("foo")
	if got := h.Attrs(); got != nil {
		t.Errorf("Attrs() = %v, want nil when resolution fails", got)
	}

	ok, _ := cache.Handle("bar")
	attrs := ok.Attrs()
	if len(attrs) == 0 {
		t.Fatal("Attrs() should list members of a resolvable target")
	}
	var hasGreet bool
	for _, a := range attrs {
		if a == "Greet" {
			hasGreet = true
		}
	}
	if !hasGreet {
		t.Errorf("Attrs() = %v, want it to include Greet", attrs)
	}
}

func TestTableResolverUnknownPath(t *testing.T) {
	_, err := TableResolver{}.Resolve("example.com/never_registered")
	if err == nil {
		t.Fatal("expected an error for an unregistered import path")
	}
	if !strings.Contains(err.Error(), "never_registered") {
		t.Errorf("error %q should name the import path", err)
	}
}

func TestTableResolverConvertsPanics(t *testing.T) {
	RegisterBuilder("example.com/panicking", func() (any, error) {
		panic("builder exploded")
	})

	_, err := TableResolver{}.Resolve("example.com/panicking")
	if err == nil {
		t.Fatal("expected a panicking builder to surface as an error")
	}
	if !strings.Contains(err.Error(), "builder exploded") {
		t.Errorf("error %q should carry the panic value", err)
	}
}
