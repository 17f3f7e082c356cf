package ui

import (
	"fmt"
	"slices"
)

// 输入事件类型
type EventType string

const (
	EventKeyPress  EventType = "key"
	EventMouseMove EventType = "mouse_move"
	EventMouseDown EventType = "mouse_down"
	EventMouseUp   EventType = "mouse_up"
	EventScroll    EventType = "scroll"
	EventResize    EventType = "resize"
)

// Event 前端发来的一个输入事件，坐标为屏幕像素
type Event struct {
	Type   EventType `json:"type"`
	Key    string    `json:"key,omitempty"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Delta  float64   `json:"delta,omitempty"` // 滚轮，正数放大
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
}

// UserInput 一帧的输入批
// 功能：按键只能被一个处理者消费；处理者在询问按键时登记按键说明，供状态栏显示
type UserInput struct {
	Events []Event `json:"events"`

	consumed map[int]struct{}
	bindings []string
}

func NewUserInput(events ...Event) *UserInput {
	return &UserInput{Events: events}
}

// KeyPressed 本帧是否按下key且尚未被消费，按下则消费；action为按键说明
func (in *UserInput) KeyPressed(key string, action string) bool {
	binding := fmt.Sprintf("%s: %s", key, action)
	if !slices.Contains(in.bindings, binding) {
		in.bindings = append(in.bindings, binding)
	}
	for i, e := range in.Events {
		if e.Type != EventKeyPress || e.Key != key {
			continue
		}
		if _, ok := in.consumed[i]; ok {
			continue
		}
		if in.consumed == nil {
			in.consumed = make(map[int]struct{})
		}
		in.consumed[i] = struct{}{}
		return true
	}
	return false
}

// MovedMouse 本帧最后一次鼠标移动的位置
func (in *UserInput) MovedMouse() (x, y float64, ok bool) {
	for i := len(in.Events) - 1; i >= 0; i-- {
		if e := in.Events[i]; e.Type == EventMouseMove {
			return e.X, e.Y, true
		}
	}
	return 0, 0, false
}

// Bindings 本帧登记过的按键说明
func (in *UserInput) Bindings() []string {
	return in.bindings
}
