package observability

import (
	"context"
	"testing"
	"time"
)

type testMutationHooks struct {
	mutations   int
	validations int
}

func (h *testMutationHooks) OnMutation(context.Context, string, int, time.Duration, error) {
	h.mutations++
}

func (h *testMutationHooks) OnDropValidation(context.Context, bool, string) {
	h.validations++
}

type testStoreHooks struct{ NoopStoreHooks }

type testHTTPHooks struct{ NoopHTTPHooks }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Mutation hooks
	m := NoopMutationHooks{}
	m.OnMutation(ctx, "move", 12, time.Millisecond, nil)
	m.OnDropValidation(ctx, false, "sections can only be placed directly under the body")

	// Store hooks
	s := NoopStoreHooks{}
	s.OnStoreGet(ctx, "memory", true, time.Millisecond)
	s.OnStorePut(ctx, "memory", 1024, time.Millisecond)
	s.OnStoreDelete(ctx, "memory", time.Millisecond)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/layers/move")
	h.OnResponse(ctx, "POST", "/api/layers/move", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Mutation().(NoopMutationHooks); !ok {
		t.Error("Mutation() should return NoopMutationHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customMutation := &testMutationHooks{}
	SetMutationHooks(customMutation)
	if Mutation() != customMutation {
		t.Error("SetMutationHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Mutation().(NoopMutationHooks); !ok {
		t.Error("Reset() should restore NoopMutationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testMutationHooks{}
	SetMutationHooks(custom)
	SetMutationHooks(nil)

	if Mutation() != custom {
		t.Error("SetMutationHooks(nil) should keep the previous hooks")
	}

	Reset()
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testMutationHooks{}
	SetMutationHooks(custom)

	ctx := context.Background()
	Mutation().OnMutation(ctx, "delete", 3, time.Millisecond, nil)
	Mutation().OnMutation(ctx, "move", 3, time.Millisecond, nil)
	Mutation().OnDropValidation(ctx, true, "")

	if custom.mutations != 2 {
		t.Errorf("mutations = %d, want 2", custom.mutations)
	}
	if custom.validations != 1 {
		t.Errorf("validations = %d, want 1", custom.validations)
	}
}
