package clock

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	clockv1 "git.fiblab.net/sim/protos/v2/go/city/clock/v1"
	"git.fiblab.net/sim/protos/v2/go/city/clock/v1/clockv1connect"
)

// Register 将ClockService挂载到HTTP路由上
func (c *Clock) Register(mux *http.ServeMux, opts ...connect.HandlerOption) {
	pattern, handler := clockv1connect.NewClockServiceHandler(c, opts...)
	mux.Handle(pattern, handler)
}

// Now 获取当前模拟时间
// 说明：在HTTP请求协程中执行，与帧循环并发，只读取已发布的时间
func (c *Clock) Now(ctx context.Context, in *connect.Request[clockv1.NowRequest]) (*connect.Response[clockv1.NowResponse], error) {
	return connect.NewResponse(&clockv1.NowResponse{
		T: c.PublishedT(),
	}), nil
}
