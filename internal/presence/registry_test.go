package presence_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gigboard/gigboard/internal/presence"
)

func TestRegisterResolve(t *testing.T) {
	r := presence.NewRegistry()

	if _, ok := r.Resolve(1); ok {
		t.Fatalf("expected absent handle for unknown user")
	}

	r.Register(1, "h1")
	h, ok := r.Resolve(1)
	if !ok || h != "h1" {
		t.Fatalf("expected h1, got %q (ok=%v)", h, ok)
	}
}

func TestReRegisterReplacesHandle(t *testing.T) {
	r := presence.NewRegistry()

	r.Register(1, "h1")
	r.Register(1, "h2")

	h, ok := r.Resolve(1)
	if !ok || h != "h2" {
		t.Fatalf("expected h2 after re-register, got %q (ok=%v)", h, ok)
	}
}

func TestStaleDisconnectDoesNotEvictNewerRegistration(t *testing.T) {
	r := presence.NewRegistry()

	// user connects with h0, reconnects with h1, then the disconnect event
	// for h0 arrives late
	r.Register(7, "h0")
	r.Register(7, "h1")
	r.Unregister("h0")

	h, ok := r.Resolve(7)
	if !ok || h != "h1" {
		t.Fatalf("stale disconnect evicted fresh registration: got %q (ok=%v)", h, ok)
	}
}

func TestUnregisterRemovesEntry(t *testing.T) {
	r := presence.NewRegistry()

	r.Register(3, "h3")
	r.Unregister("h3")

	if _, ok := r.Resolve(3); ok {
		t.Fatalf("expected user to be gone after unregister")
	}

	// unregistering again is a no-op
	r.Unregister("h3")
}

func TestHandleReidentifiesAsDifferentUser(t *testing.T) {
	r := presence.NewRegistry()

	r.Register(1, "h1")
	r.Register(2, "h1")

	if _, ok := r.Resolve(1); ok {
		t.Fatalf("expected old user binding to be dropped when handle re-identifies")
	}
	h, ok := r.Resolve(2)
	if !ok || h != "h1" {
		t.Fatalf("expected h1 for user 2, got %q (ok=%v)", h, ok)
	}
}

func TestConcurrentChurn(t *testing.T) {
	r := presence.NewRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for j := range 20 {
				handle := fmt.Sprintf("u%d-c%d", userID, j)
				r.Register(userID, handle)
				r.Resolve(userID)
				if j%2 == 0 {
					r.Unregister(handle)
				}
			}
		}(int64(i + 1))
	}
	wg.Wait()

	// every user's final state is either absent or its own last handle
	for i := range 50 {
		userID := int64(i + 1)
		if h, ok := r.Resolve(userID); ok {
			want := fmt.Sprintf("u%d-c%d", userID, 19)
			if h != want {
				t.Fatalf("user %d resolved to %q, want %q", userID, h, want)
			}
		}
	}
}
