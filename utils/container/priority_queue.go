package container

import "container/heap"

type pqEntry[T any] struct {
	value    T
	priority float64
}

// entryHeap 按priority升序的最小堆，priority相等时由tie决定先后
type entryHeap[T any] struct {
	entries []pqEntry[T]
	tie     func(a, b T) bool
}

func (h *entryHeap[T]) Len() int { return len(h.entries) }

func (h *entryHeap[T]) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return h.tie != nil && h.tie(a.value, b.value)
}

func (h *entryHeap[T]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *entryHeap[T]) Push(x any) {
	h.entries = append(h.entries, x.(pqEntry[T]))
}

func (h *entryHeap[T]) Pop() any {
	n := len(h.entries)
	e := h.entries[n-1]
	var zero pqEntry[T]
	h.entries[n-1] = zero
	h.entries = h.entries[:n-1]
	return e
}

// PriorityQueue 最小优先队列
// 功能：按priority从小到大出队；priority相同时按tie给出的次序出队，
// tie为nil时相同priority的出队顺序不确定
// 说明：先批量Push再调用Heapify，之后才能Pop
type PriorityQueue[T any] struct {
	h entryHeap[T]
}

// NewPriorityQueue 创建优先队列，tie(a, b)为true表示priority相同时a先出队
func NewPriorityQueue[T any](tie func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{h: entryHeap[T]{tie: tie}}
}

func (q *PriorityQueue[T]) Len() int {
	return q.h.Len()
}

// Push 追加元素，不维护堆结构
func (q *PriorityQueue[T]) Push(value T, priority float64) {
	q.h.entries = append(q.h.entries, pqEntry[T]{value: value, priority: priority})
}

// Heapify 批量Push后重建堆
func (q *PriorityQueue[T]) Heapify() {
	heap.Init(&q.h)
}

// Pop 弹出最先出队的元素
func (q *PriorityQueue[T]) Pop() (value T, priority float64) {
	e := heap.Pop(&q.h).(pqEntry[T])
	return e.value, e.priority
}
