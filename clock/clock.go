package clock

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"git.fiblab.net/sim/protos/v2/go/city/clock/v1/clockv1connect"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
)

// Clock 模拟时钟
// 功能：维护当前模拟时间与步数，作为同一帧内所有查询的时间基准
type Clock struct {
	clockv1connect.UnimplementedClockServiceHandler

	DT         float64 // 每个模拟步时间间隔（秒）
	START_STEP int32   // 起始步
	END_STEP   int32   // 结束步，模拟区间[START, END)，Total为0时不设上限

	T            float64 // 当前时间（秒），只由帧循环读写
	InternalStep int32   // 当前步数，只由帧循环读写

	published atomic.Uint64 // T的副本(math.Float64bits)，供RPC协程读取
}

// New 根据配置创建新的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:         stepConfig.Interval,
		START_STEP: stepConfig.Start,
		END_STEP:   stepConfig.Start + stepConfig.Total,
	}
	if stepConfig.Total <= 0 {
		c.END_STEP = -1
	}
	c.Init()
	return c
}

// Init 重置为起始步
func (c *Clock) Init() {
	c.setStep(c.START_STEP)
}

// Step 前进一步，已到达结束步时返回false且不前进
func (c *Clock) Step() bool {
	if c.Done() {
		return false
	}
	c.setStep(c.InternalStep + 1)
	return true
}

func (c *Clock) setStep(step int32) {
	c.InternalStep = step
	c.T = float64(step) * c.DT
	c.published.Store(math.Float64bits(c.T))
}

// PublishedT 当前时间（秒），可在任意协程调用
func (c *Clock) PublishedT() float64 {
	return math.Float64frombits(c.published.Load())
}

// Done 是否已到达结束步
func (c *Clock) Done() bool {
	return c.END_STEP >= 0 && c.InternalStep+1 >= c.END_STEP
}

// Time 当前时间
func (c *Clock) Time() time.Duration {
	return time.Duration(c.T * float64(time.Second))
}

// String 将当前时间格式化为HH:MM:SS
func (c *Clock) String() string {
	hour, minute, second := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, int(second))
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒（秒为浮点数）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
