package container_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/container"
)

type arrayItem struct {
	container.IncrementalItemBase
	name string
}

func names(a *container.IncrementalArray[*arrayItem]) []string {
	return lo.Map(a.Data(), func(x *arrayItem, _ int) string { return x.name })
}

func TestIncrementalArray(t *testing.T) {
	a := container.NewIncrementalArray[*arrayItem]()
	x, y, z, w := &arrayItem{name: "x"}, &arrayItem{name: "y"}, &arrayItem{name: "z"}, &arrayItem{name: "w"}
	a.Add(x)
	a.Add(y)
	a.Add(z)
	assert.True(t, a.Dirty())
	assert.Equal(t, 0, a.Len())
	a.Prepare()
	assert.False(t, a.Dirty())
	assert.Equal(t, []string{"x", "y", "z"}, names(a))

	// 新增元素填补被删除元素的位置
	a.Remove(y)
	a.Add(w)
	a.Prepare()
	assert.Equal(t, []string{"x", "w", "z"}, names(a))
	assert.Equal(t, 1, w.Index())

	// 删除多于新增：末尾元素前移填补空位
	a.Remove(x)
	a.Remove(z)
	a.Prepare()
	assert.Equal(t, []string{"w"}, names(a))
	assert.Equal(t, 0, w.Index())
}

func TestIncrementalArrayRemoveTail(t *testing.T) {
	a := container.NewIncrementalArray[*arrayItem]()
	items := lo.Map([]string{"a", "b", "c", "d"}, func(n string, _ int) *arrayItem { return &arrayItem{name: n} })
	for _, x := range items {
		a.Add(x)
	}
	a.Prepare()
	a.Remove(items[1])
	a.Remove(items[3])
	a.Prepare()
	assert.Equal(t, []string{"a", "c"}, names(a))
	for i, x := range a.Data() {
		assert.Equal(t, i, x.Index())
	}
}

func TestPriorityQueue(t *testing.T) {
	q := container.NewPriorityQueue[string](nil)
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("b", 2)
	q.Push("z", 0)
	q.Heapify()
	assert.Equal(t, 4, q.Len())

	got := make([]string, 0)
	for q.Len() > 0 {
		v, _ := q.Pop()
		got = append(got, v)
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, got)
}

func TestPriorityQueueTie(t *testing.T) {
	q := container.NewPriorityQueue(func(a, b int) bool { return a < b })
	for _, v := range []int{9, 4, 7, 1} {
		q.Push(v, 2)
	}
	q.Push(5, 1)
	q.Heapify()

	got := make([]int, 0)
	for q.Len() > 0 {
		v, p := q.Pop()
		if v != 5 {
			assert.Equal(t, 2.0, p)
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{5, 1, 4, 7, 9}, got)
}
