package entity

import "time"

// 模拟子系统依赖倒置
// 每个子系统独占一类智能体在当前时刻的状态，查询结果的第二个返回值表示是否存在

// entity/driving的依赖倒置
type IDrivingHolder interface {
	GetDrawCar(id int32, now time.Duration, m IMap) (DrawCarInput, bool)
	GetDrawCars(on Traversable, now time.Duration, m IMap) []DrawCarInput
	GetAllDrawCars(now time.Duration, m IMap) []DrawCarInput
}

// entity/parking的依赖倒置
type IParkingHolder interface {
	GetDrawCar(id int32, m IMap) (DrawCarInput, bool)
	GetDrawCars(lane int32, m IMap) []DrawCarInput
	GetAllDrawCars(m IMap) []DrawCarInput
}

// entity/walking的依赖倒置
type IWalkingHolder interface {
	GetDrawPed(id int32, m IMap, now time.Duration) (DrawPedestrianInput, bool)
	GetDrawPeds(on Traversable, m IMap, now time.Duration) []DrawPedestrianInput
	GetAllDrawPeds(now time.Duration, m IMap) []DrawPedestrianInput
}

// IGetDrawAgents 绘制层从模拟中取智能体的统一入口
// 说明：所有方法只读，不修改模拟状态；同一帧内的查询均以Time()为准
type IGetDrawAgents interface {
	Time() time.Duration
	GetDrawCar(id int32, m IMap) (DrawCarInput, bool)
	GetDrawPed(id int32, m IMap) (DrawPedestrianInput, bool)
	GetDrawCars(on Traversable, m IMap) []DrawCarInput
	GetDrawPeds(on Traversable, m IMap) []DrawPedestrianInput
	GetAllDrawCars(m IMap) []DrawCarInput
	GetAllDrawPeds(m IMap) []DrawPedestrianInput
}
