package driving

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/container"
)

type carNode = container.ListNode[*Car, struct{}]
type carList = container.List[*Car, struct{}]

// Car 行驶中的车辆
type Car struct {
	container.IncrementalItemBase

	ID          int32
	VehicleType entity.VehicleType
	Status      entity.CarStatus // Moving/Stuck/Debug，Parked的车辆由停车子系统持有
	Len         float64          // 车长(m)
	Speed       float64          // 速度(m/s)

	on   entity.Traversable
	node *carNode // 所在路段链表中的节点，node.S为车头位置
}

func (c *Car) String() string {
	return fmt.Sprintf("Car(%d, %v, %v)", c.ID, c.Status, c.on)
}

func (c *Car) V() float64 {
	return c.Speed
}

func (c *Car) Length() float64 {
	return c.Len
}

// On 所在路段
func (c *Car) On() entity.Traversable {
	return c.on
}

// S 车头在路段上的位置
func (c *Car) S() float64 {
	return c.node.S
}
