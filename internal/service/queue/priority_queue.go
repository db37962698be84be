package queue

import (
	"container/heap"

	"github.com/KasumiMercury/primind-day-planner/internal/service/scoring"
)

type PriorityItem struct {
	Scored scoring.ScoredTask
	// Order is the position in the builder input, used as the tie-breaker.
	Order int
	Index int
}

func NewPriorityItem(scored scoring.ScoredTask, order int) *PriorityItem {
	return &PriorityItem{
		Scored: scored,
		Order:  order,
		Index:  -1,
	}
}

// PriorityQueue pops the highest score first.
type PriorityQueue struct {
	items []*PriorityItem
}

func NewPriorityQueue(capacity int) *PriorityQueue {
	return &PriorityQueue{
		items: make([]*PriorityItem, 0, capacity),
	}
}

func (pq *PriorityQueue) Len() int {
	return len(pq.items)
}

func (pq *PriorityQueue) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]

	if a.Scored.Score != b.Scored.Score {
		return a.Scored.Score > b.Scored.Score
	}

	// Earlier input wins
	return a.Order < b.Order
}

func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].Index = i
	pq.items[j].Index = j
}

func (pq *PriorityQueue) Push(x any) {
	item := x.(*PriorityItem)
	item.Index = len(pq.items)
	pq.items = append(pq.items, item)
}

func (pq *PriorityQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	pq.items = old[0 : n-1]
	return item
}

// PushItem and PopItem wrap container/heap so callers keep the heap invariant.
func (pq *PriorityQueue) PushItem(item *PriorityItem) {
	heap.Push(pq, item)
}

func (pq *PriorityQueue) PopItem() *PriorityItem {
	if pq.Len() == 0 {
		return nil
	}
	return heap.Pop(pq).(*PriorityItem)
}

// Drain pops every remaining item in priority order.
func (pq *PriorityQueue) Drain() []*PriorityItem {
	drained := make([]*PriorityItem, 0, pq.Len())
	for pq.Len() > 0 {
		drained = append(drained, pq.PopItem())
	}
	return drained
}
