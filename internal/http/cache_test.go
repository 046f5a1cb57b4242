package http

import (
	"net/http"
	"testing"
	"time"
)

func TestLRUCacheBasics(t *testing.T) {
	c := newLRUCache[int](2, time.Minute)

	if _, ok := c.get("a"); ok {
		t.Fatalf("hit on empty cache")
	}

	c.set("a", 1)
	c.set("b", 2)
	if v, ok := c.get("a"); !ok || v != 1 {
		t.Fatalf("a = %d,%v", v, ok)
	}

	// "a" was just used, so adding a third entry evicts "b".
	c.set("c", 3)
	if _, ok := c.get("b"); ok {
		t.Fatalf("b survived eviction")
	}
	if _, ok := c.get("a"); !ok {
		t.Fatalf("a evicted out of order")
	}
	if c.size() != 2 {
		t.Fatalf("size = %d, want 2", c.size())
	}
}

func TestLRUCacheTTL(t *testing.T) {
	c := newLRUCache[string](4, 10*time.Millisecond)
	c.set("k", "v")
	if _, ok := c.get("k"); !ok {
		t.Fatalf("miss before expiry")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.get("k"); ok {
		t.Fatalf("hit after expiry")
	}
	if c.size() != 0 {
		t.Fatalf("expired entry not removed")
	}
}

func TestLRUCachePurge(t *testing.T) {
	c := newLRUCache[int](4, time.Minute)
	c.set("a", 1)
	c.set("b", 2)
	c.purge()
	if c.size() != 0 {
		t.Fatalf("size after purge = %d", c.size())
	}
	if _, ok := c.get("a"); ok {
		t.Fatalf("hit after purge")
	}
}

func TestSummaryCacheInvalidatedByMutation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	if rr := do(t, srv, http.MethodPut, "/api/income", `{"amount":"1000"}`); rr.Code != http.StatusOK {
		t.Fatalf("income status=%d", rr.Code)
	}

	rr := do(t, srv, http.MethodGet, "/api/summary", "")
	var first summaryResponse
	decode(t, rr, &first)
	if first.Summary.Needs.AllocatedCents != 50000 {
		t.Fatalf("needs allocation = %d", first.Summary.Needs.AllocatedCents)
	}

	// A second read within the TTL must not go stale once income changes.
	if rr := do(t, srv, http.MethodPut, "/api/income", `{"amount":"2000"}`); rr.Code != http.StatusOK {
		t.Fatalf("income status=%d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/summary", "")
	var second summaryResponse
	decode(t, rr, &second)
	if second.Summary.Needs.AllocatedCents != 100000 {
		t.Fatalf("needs allocation after update = %d", second.Summary.Needs.AllocatedCents)
	}
}
