package workers

import (
	"context"
	"testing"
)

// mockWorker tracks Start and Stop calls.
type mockWorker struct {
	startCount int
	stopCount  int
}

func (m *mockWorker) Start(_ context.Context) {
	m.startCount++
}

func (m *mockWorker) Stop() {
	m.stopCount++
}

func TestWorkers_StartAll_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := New(w1, w2, w3)
	ws.StartAll(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.startCount != 1 {
			t.Errorf("worker[%d]: expected startCount=1, got %d", i, w.startCount)
		}
	}
}

func TestWorkers_StopAll_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}

	ws := New(w1, w2)
	ws.StartAll(context.Background())
	ws.StopAll()

	for i, w := range []*mockWorker{w1, w2} {
		if w.stopCount != 1 {
			t.Errorf("worker[%d]: expected stopCount=1, got %d", i, w.stopCount)
		}
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := New()

	// Should not panic on an empty workers list.
	ws.StartAll(context.Background())
	ws.StopAll()
}

func TestWorkers_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when the workers field is nil.
	ws.StartAll(context.Background())
	ws.StopAll()
}

func TestWorkers_StopAll_ReverseOrder(t *testing.T) {
	order := []int{}

	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := New(newOrderWorker(1), newOrderWorker(2), newOrderWorker(3))
	ws.StopAll()

	expected := []int{3, 2, 1}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

// orderWorker appends its ID to a shared slice on Stop.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Start(_ context.Context) {}

func (o *orderWorker) Stop() {
	*o.order = append(*o.order, o.id)
}
