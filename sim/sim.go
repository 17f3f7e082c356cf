package sim

import (
	"flag"
	"fmt"
	"time"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/clock"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/driving"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/parking"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/walking"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// Flags 模拟的启动参数，随会话一同创建和销毁
type Flags struct {
	MapName string
	Seed    uint64
	Spawn   config.Spawn
	Step    config.ControlStep
}

func NewFlags(rc *config.RuntimeConfig) Flags {
	return Flags{
		MapName: rc.MapName,
		Seed:    rc.C.Seed,
		Spawn:   rc.C.Spawn,
		Step:    rc.C.Step,
	}
}

// Sim 模拟句柄
// 功能：持有时钟与行驶、停车、步行三个子系统，
// 对绘制层提供统一的只读查询入口（实现entity.IGetDrawAgents）
type Sim struct {
	flags   Flags
	clock   *clock.Clock
	driving *driving.Holder
	parking *parking.Holder
	walking *walking.Holder
}

func New(flags Flags) *Sim {
	return &Sim{
		flags:   flags,
		clock:   clock.New(flags.Step),
		driving: driving.NewHolder(),
		parking: parking.NewHolder(),
		walking: walking.NewHolder(),
	}
}

func (s *Sim) Flags() Flags {
	return s.flags
}

func (s *Sim) Clock() *clock.Clock {
	return s.clock
}

func (s *Sim) Driving() *driving.Holder {
	return s.driving
}

func (s *Sim) Parking() *parking.Holder {
	return s.parking
}

func (s *Sim) Walking() *walking.Holder {
	return s.walking
}

// Step 推进一步，已到达结束步时返回false
func (s *Sim) Step(m entity.IMap) bool {
	if !s.clock.Step() {
		return false
	}
	s.driving.Step(s.clock.DT, m)
	s.walking.Step(s.clock.DT, m)
	if s.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		log.Infof("STEP: %d(%v) cars: %d driving, %d parked; pedestrians: %d",
			s.clock.InternalStep, s.clock, s.driving.Len(), s.parking.Len(), s.walking.Len())
	}
	return true
}

// ParkCar 将行驶中的车辆停入车位，车辆的归属从行驶子系统转到停车子系统
// 说明：停车失败时车辆留在行驶子系统中，状态不变
func (s *Sim) ParkCar(id int32, lane int32, spot int32, m entity.IMap) error {
	car, ok := s.driving.Get(id)
	if !ok {
		return fmt.Errorf("car %d is not driving", id)
	}
	parked := &parking.ParkedCar{
		ID:          car.ID,
		VehicleType: car.VehicleType,
		Len:         car.Len,
		Lane:        lane,
		Spot:        spot,
	}
	on, front := car.On(), car.S()
	s.driving.Remove(id)
	if err := s.parking.Park(parked, m); err != nil {
		if err2 := s.driving.Add(car, on, front, m); err2 != nil {
			log.Panicf("restore car %d after failed parking: %v", id, err2)
		}
		return err
	}
	return nil
}

// UnparkCar 将停放的车辆驶出，放到离车位最近的机动车道上
func (s *Sim) UnparkCar(id int32, speed float64, m entity.IMap) error {
	parked, ok := s.parking.Get(id)
	if !ok {
		return fmt.Errorf("car %d is not parked", id)
	}
	d, _ := s.parking.GetDrawCar(id, m)
	front := d.Body[len(d.Body)-1]
	lane, ok := nearestLane(front, m, isVehicleLane)
	if !ok {
		return fmt.Errorf("no driving lane for car %d", id)
	}
	s.parking.Unpark(id)
	car := &driving.Car{
		ID:          parked.ID,
		VehicleType: parked.VehicleType,
		Status:      entity.CarStatusMoving,
		Len:         parked.Len,
		Speed:       speed,
	}
	if err := s.driving.Add(car, entity.OnLane(lane.ID()), lane.ProjectToLane(front), m); err != nil {
		log.Panicf("unpark car %d: %v", id, err)
	}
	return nil
}

// Time 当前模拟时刻，同一帧内的所有查询以此为准
func (s *Sim) Time() time.Duration {
	return s.clock.Time()
}

// GetDrawCar 先查行驶子系统，再查停车子系统；都没有时返回false
func (s *Sim) GetDrawCar(id int32, m entity.IMap) (entity.DrawCarInput, bool) {
	if d, ok := s.driving.GetDrawCar(id, s.Time(), m); ok {
		return d, true
	}
	return s.parking.GetDrawCar(id, m)
}

func (s *Sim) GetDrawPed(id int32, m entity.IMap) (entity.DrawPedestrianInput, bool) {
	return s.walking.GetDrawPed(id, m, s.Time())
}

// GetDrawCars 路段上的车辆
// 说明：按车道类型选择子系统，停车道只查停车子系统，人行道上没有车辆，转向只查行驶子系统
func (s *Sim) GetDrawCars(on entity.Traversable, m entity.IMap) []entity.DrawCarInput {
	if on.IsTurn {
		return s.driving.GetDrawCars(on, s.Time(), m)
	}
	switch m.LaneType(on.Lane) {
	case entity.LaneTypeDriving, entity.LaneTypeBus, entity.LaneTypeBiking:
		return s.driving.GetDrawCars(on, s.Time(), m)
	case entity.LaneTypeParking:
		return s.parking.GetDrawCars(on.Lane, m)
	default:
		return []entity.DrawCarInput{}
	}
}

func (s *Sim) GetDrawPeds(on entity.Traversable, m entity.IMap) []entity.DrawPedestrianInput {
	return s.walking.GetDrawPeds(on, m, s.Time())
}

// GetAllDrawCars 行驶中的车辆在前，停放的车辆在后
func (s *Sim) GetAllDrawCars(m entity.IMap) []entity.DrawCarInput {
	return append(s.driving.GetAllDrawCars(s.Time(), m), s.parking.GetAllDrawCars(m)...)
}

func (s *Sim) GetAllDrawPeds(m entity.IMap) []entity.DrawPedestrianInput {
	return s.walking.GetAllDrawPeds(s.Time(), m)
}

var _ entity.IGetDrawAgents = (*Sim)(nil)
