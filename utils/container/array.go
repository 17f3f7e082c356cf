package container

// IIncrementalItem 支持增量更新的元素接口
// 说明：元素需要记住自己在数组中的下标，删除时据此O(1)定位
type IIncrementalItem interface {
	Index() int         // 获取元素的索引
	SetIndex(index int) // 设置元素的索引
}

// IncrementalItemBase 增量元素基类，嵌入后即实现IIncrementalItem
type IncrementalItemBase struct {
	index int
}

func (b *IncrementalItemBase) Index() int {
	return b.index
}

func (b *IncrementalItemBase) SetIndex(index int) {
	b.index = index
}

// IncrementalArray 增量数组
// 功能：Add/Remove先进入缓冲区，Prepare时统一生效，
// 两次Prepare之间Data()的顺序保持不变，可作为稳定的遍历顺序
type IncrementalArray[T IIncrementalItem] struct {
	data   []T // 主数据数组
	add    []T // 待添加的元素列表
	remove []T // 待删除的元素列表
}

// NewIncrementalArray 创建增量数组
func NewIncrementalArray[T IIncrementalItem]() *IncrementalArray[T] {
	return &IncrementalArray[T]{
		data:   make([]T, 0),
		add:    make([]T, 0),
		remove: make([]T, 0),
	}
}

// 获取当前数组长度
func (a *IncrementalArray[T]) Len() int {
	return len(a.data)
}

// 获取已生效的数据，调用方不得修改
func (a *IncrementalArray[T]) Data() []T {
	return a.data
}

// Dirty 是否有尚未生效的增删
func (a *IncrementalArray[T]) Dirty() bool {
	return len(a.add) > 0 || len(a.remove) > 0
}

// 增加元素（等到Prepare时才会真正增加）
func (a *IncrementalArray[T]) Add(value T) {
	a.add = append(a.add, value)
}

// 删除元素（等到Prepare时才会真正删除）
func (a *IncrementalArray[T]) Remove(value T) {
	a.remove = append(a.remove, value)
}

// Prepare 执行增量操作
// 算法说明：
// 1. 增 >= 删：新增元素先填补被删除元素的位置，剩余的追加到末尾
// 2. 删 > 增：新增元素填补一部分空位，其余空位用数组末尾的元素填补后截断
func (a *IncrementalArray[T]) Prepare() {
	if len(a.add) >= len(a.remove) {
		for i, x := range a.remove {
			ind := x.Index()
			a.data[ind] = a.add[i]
			a.data[ind].SetIndex(ind)
		}
		l1 := len(a.remove)
		l2 := len(a.add) - l1
		for i := 0; i < l2; i++ {
			a.add[l1+i].SetIndex(len(a.data) + i)
		}
		a.data = append(a.data, a.add[len(a.remove):]...)
	} else {
		for i, x := range a.add {
			ind := a.remove[i].Index()
			a.data[ind] = x
			a.data[ind].SetIndex(ind)
		}
		// 待删除的尾部元素不能用来填补空位
		newLen := len(a.data) - (len(a.remove) - len(a.add))
		removed := make(map[int]struct{}, len(a.remove)-len(a.add))
		holes := make([]int, 0)
		for _, x := range a.remove[len(a.add):] {
			removed[x.Index()] = struct{}{}
			if x.Index() < newLen {
				holes = append(holes, x.Index())
			}
		}
		j := 0
		for i := newLen; i < len(a.data); i++ {
			if _, ok := removed[i]; ok {
				continue
			}
			a.data[holes[j]] = a.data[i]
			a.data[holes[j]].SetIndex(holes[j])
			j++
		}
		a.data = a.data[:newLen]
	}

	a.add = a.add[:0]
	a.remove = a.remove[:0]
}
