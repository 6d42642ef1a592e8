package queue

import (
	"testing"

	"github.com/behrlich/go-dramsim/internal/request"
)

func TestPushRespectsMax(t *testing.T) {
	q := New(2)
	if !q.Push(&request.Request{Addr: 1}) {
		t.Fatal("first push should succeed")
	}
	if !q.Push(&request.Request{Addr: 2}) {
		t.Fatal("second push should succeed")
	}
	if q.Push(&request.Request{Addr: 3}) {
		t.Fatal("third push should fail, queue is full")
	}
	if !q.Full() {
		t.Error("expected Full() to report true at capacity")
	}
}

func TestRemoveAtPreservesOrder(t *testing.T) {
	q := New(4)
	for i := uint64(0); i < 3; i++ {
		q.Push(&request.Request{Addr: i})
	}
	removed := q.RemoveAt(1)
	if removed == nil || removed.Addr != 1 {
		t.Fatalf("RemoveAt(1) = %+v, want Addr 1", removed)
	}
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if q.At(0).Addr != 0 || q.At(1).Addr != 2 {
		t.Errorf("order after removal = [%d, %d], want [0, 2]", q.At(0).Addr, q.At(1).Addr)
	}
}

func TestRemoveFrontIsFIFO(t *testing.T) {
	q := New(4)
	q.Push(&request.Request{Addr: 10})
	q.Push(&request.Request{Addr: 20})
	if got := q.RemoveFront(); got.Addr != 10 {
		t.Errorf("RemoveFront() = %d, want 10", got.Addr)
	}
	if got := q.Front(); got.Addr != 20 {
		t.Errorf("Front() = %d, want 20", got.Addr)
	}
}

func TestFindByAddr(t *testing.T) {
	q := New(4)
	q.Push(&request.Request{Addr: 0x1000})
	q.Push(&request.Request{Addr: 0x2000})
	if idx := q.FindByAddr(0x2000); idx != 1 {
		t.Errorf("FindByAddr(0x2000) = %d, want 1", idx)
	}
	if idx := q.FindByAddr(0x3000); idx != -1 {
		t.Errorf("FindByAddr(0x3000) = %d, want -1", idx)
	}
}

func TestEachStopsEarly(t *testing.T) {
	q := New(4)
	for i := uint64(0); i < 4; i++ {
		q.Push(&request.Request{Addr: i})
	}
	visited := 0
	q.Each(func(i int, req *request.Request) bool {
		visited++
		return req.Addr != 1
	})
	if visited != 2 {
		t.Errorf("visited = %d, want 2 (stop at index 1)", visited)
	}
}
