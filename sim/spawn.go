package sim

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/driving"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/parking"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/walking"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/randengine"
)

const (
	carLength  = 4.5
	busLength  = 7.0 // 不超过车位可用长度
	bikeLength = 1.8
)

func isVehicleLane(l entity.ILane) bool {
	switch l.Type() {
	case entity.LaneTypeDriving, entity.LaneTypeBus, entity.LaneTypeBiking:
		return true
	default:
		return false
	}
}

// nearestLane 满足条件的非路口车道中离pos最近的一条
func nearestLane(pos geometry.Point, m entity.IMap, pred func(entity.ILane) bool) (entity.ILane, bool) {
	var best entity.ILane
	bestDist := mathutil.INF
	for _, l := range m.LaneManager().Lanes() {
		if !pred(l) {
			continue
		}
		p := l.GetPositionByS(l.ProjectToLane(pos))
		if d := math.Hypot(p.X-pos.X, p.Y-pos.Y); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best, best != nil
}

// 按车道长度加权随机选择车道
func pickLane(rng *randengine.Engine, lanes []entity.ILane) entity.ILane {
	weights := lo.Map(lanes, func(l entity.ILane, _ int) float64 { return l.Length() })
	return lanes[rng.DiscreteDistribution(weights)]
}

func vehicleOf(t entity.LaneType) (entity.VehicleType, float64) {
	switch t {
	case entity.LaneTypeBus:
		return entity.VehicleTypeBus, busLength
	case entity.LaneTypeBiking:
		return entity.VehicleTypeBike, bikeLength
	default:
		return entity.VehicleTypeCar, carLength
	}
}

// SpawnDemo 按Flags中的数量随机生成演示智能体，同一种子结果相同
// 功能：行驶车辆放在机动车道、公交道、自行车道上，停放车辆依次占用空车位，行人放在人行道上；
// 地图中没有对应车道时跳过该类智能体
func (s *Sim) SpawnDemo(m entity.IMap) {
	rng := randengine.New(s.flags.Seed)
	lanes := m.LaneManager().Lanes()
	vehicleLanes := lo.Filter(lanes, func(l entity.ILane, _ int) bool { return isVehicleLane(l) })
	parkingLanes := lo.Filter(lanes, func(l entity.ILane, _ int) bool { return l.Type() == entity.LaneTypeParking })
	sidewalks := lo.Filter(lanes, func(l entity.ILane, _ int) bool { return l.Type() == entity.LaneTypeSidewalk })

	nextCarID := int32(0)
	if len(vehicleLanes) > 0 {
		for i := 0; i < s.flags.Spawn.Cars; i++ {
			l := pickLane(rng, vehicleLanes)
			vt, length := vehicleOf(l.Type())
			car := &driving.Car{
				ID:          nextCarID,
				VehicleType: vt,
				Status:      entity.CarStatusMoving,
				Len:         length,
				Speed:       rng.Uniform(5, 15),
			}
			if err := s.driving.Add(car, entity.OnLane(l.ID()), rng.Uniform(min(length, l.Length()), l.Length()), m); err != nil {
				log.Panicf("spawn car: %v", err)
			}
			nextCarID++
		}
	}
	for i := 0; i < s.flags.Spawn.ParkedCars && len(parkingLanes) > 0; i++ {
		l := pickLane(rng, parkingLanes)
		spot, ok := s.parking.FreeSpot(l)
		if !ok {
			// 该车道已停满，不再参与抽取
			parkingLanes = lo.Without(parkingLanes, l)
			i--
			continue
		}
		if err := s.parking.Park(&parking.ParkedCar{
			ID:          nextCarID,
			VehicleType: entity.VehicleTypeCar,
			Len:         carLength,
			Lane:        l.ID(),
			Spot:        spot,
		}, m); err != nil {
			log.Panicf("spawn parked car: %v", err)
		}
		nextCarID++
	}
	if len(sidewalks) > 0 {
		for i := 0; i < s.flags.Spawn.Pedestrians; i++ {
			l := pickLane(rng, sidewalks)
			p := &walking.Pedestrian{
				ID:        int32(i),
				Speed:     rng.Uniform(1, 1.6),
				BikeAtEnd: rng.PTrue(0.2),
			}
			if err := s.walking.Add(p, entity.OnLane(l.ID()), rng.Uniform(0, l.Length()), m); err != nil {
				log.Panicf("spawn pedestrian: %v", err)
			}
		}
	}
	log.Infof("spawned %d driving cars, %d parked cars, %d pedestrians",
		s.driving.Len(), s.parking.Len(), s.walking.Len())
}
