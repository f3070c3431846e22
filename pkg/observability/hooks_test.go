package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEngineHooks{}
	e.OnLoadStart(ctx, "http")
	e.OnLoadComplete(ctx, "http", 120, 300, 1, time.Second)
	e.OnBuild(ctx, "tree", 42, time.Millisecond)
	e.OnLayout(ctx, 12, 60, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "registry")
	c.OnCacheMiss(ctx, "registry")
	c.OnCacheSet(ctx, "registry", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "registry.example", "/metrics")
	h.OnResponse(ctx, "GET", "registry.example", "/metrics", 200, time.Second)
	h.OnError(ctx, "GET", "registry.example", "/metrics", errors.New("timeout"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != customEngine {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testEngineHooks{}
	SetEngineHooks(custom)
	SetEngineHooks(nil)

	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should be ignored")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testEngineHooks{}
	SetEngineHooks(custom)
	Engine().OnBuild(context.Background(), "graph", 7, time.Millisecond)

	if custom.builds["graph"] != 7 {
		t.Errorf("builds = %v, want graph=7", custom.builds)
	}
}

// Test implementations
type testEngineHooks struct {
	NoopEngineHooks
	builds map[string]int
}

func (h *testEngineHooks) OnBuild(_ context.Context, view string, size int, _ time.Duration) {
	if h.builds == nil {
		h.builds = map[string]int{}
	}
	h.builds[view] = size
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
