package request

import "testing"

func TestDoneInvokesCallback(t *testing.T) {
	called := false
	r := &Request{Addr: 0x42, Callback: func(done *Request) {
		called = true
		if done.Addr != 0x42 {
			t.Errorf("callback saw Addr %x, want 0x42", done.Addr)
		}
	}}
	r.Done()
	if !called {
		t.Error("expected Callback to run")
	}
}

func TestDoneWithNilCallbackDoesNotPanic(t *testing.T) {
	r := &Request{Addr: 1}
	r.Done()
}
