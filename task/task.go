package task

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tsinghua-fib-lab/agentsociety-viewer/citymap"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/entity/overlay"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/render"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/sim"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/input"
)

// WaitForServerReady 等待服务器就绪
// 功能：通过HTTP请求检查服务器是否已经启动并可以响应
// 参数：addr-服务器地址，retryCount-重试次数，interval-重试间隔
// 返回：错误信息，如果服务器就绪则返回nil
func WaitForServerReady(addr string, retryCount int, interval time.Duration) error {
	client := &http.Client{
		Timeout: interval,
	}
	for range retryCount {
		resp, err := client.Get(addr)
		if err == nil {
			resp.Body.Close()
			return nil
		}
		time.Sleep(interval)
	}
	return fmt.Errorf("server `%v` did not become ready after %d retries", addr, retryCount)
}

// Context 一张地图对应的会话
// 功能：持有地图、绘制几何与模拟句柄，三者同生同灭；切换地图时整体重建而不是原地修改
// 说明：会话不被多个前端同时引用
type Context struct {
	// 关闭指令
	closed atomic.Bool

	// 运行时配置
	runtimeConfig *config.RuntimeConfig
	// 缓存文件夹
	cacheDir string

	// 地图
	m *citymap.Map
	// 静态对象绘制几何
	drawMap *render.DrawMap
	// 模拟
	sim *sim.Sim
}

// NewContext 创建会话
// 功能：加载地图与叠加图形，构建绘制几何，创建模拟并生成演示智能体
// 算法说明：
// 1. 未配置地图来源时使用内置演示地图，否则从文件或MongoDB（带本地缓存）加载
// 2. 按lane_types覆盖车道类型，加载叠加图形
// 3. 构建DrawMap
// 4. 创建模拟，按种子生成演示智能体
func NewContext(rc *config.RuntimeConfig, cacheDir string) (*Context, error) {
	ctx := &Context{
		runtimeConfig: rc,
		cacheDir:      cacheDir,
	}
	pb, err := input.LoadMap(rc.All.Input, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	if pb == nil {
		if rc.All.Input.Overlay != "" {
			log.Warnf("overlay %s ignored for the demo map", rc.All.Input.Overlay)
		}
		ctx.m = citymap.NewDemo()
	} else {
		var shapes []overlay.Base
		if rc.All.Input.Overlay != "" {
			if shapes, err = overlay.Load(rc.All.Input.Overlay); err != nil {
				return nil, fmt.Errorf("load overlay: %w", err)
			}
		}
		ctx.m = citymap.FromPb(rc.MapName, pb, rc.LaneTypes, shapes)
	}
	log.Infof("Lane: %v", len(ctx.m.LaneManager().Lanes()))
	log.Infof("Junction: %v", len(ctx.m.JunctionManager().Junctions()))
	log.Infof("AOI: %v", len(ctx.m.AoiManager().Aois()))
	log.Infof("Shape: %v", len(ctx.m.OverlayManager().Shapes()))

	ctx.drawMap = render.NewDrawMap(ctx.m)
	ctx.sim = sim.New(sim.NewFlags(rc))
	ctx.sim.SpawnDemo(ctx.m)
	return ctx, nil
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Map() entity.IMap {
	return ctx.m
}

func (ctx *Context) DrawMap() *render.DrawMap {
	return ctx.drawMap
}

func (ctx *Context) Sim() *sim.Sim {
	return ctx.sim
}

// Close 标记会话关闭，重复调用无副作用
func (ctx *Context) Close() {
	if ctx.closed.Swap(true) {
		return
	}
	log.Infof("session %s closed", ctx.m.Name())
}

func (ctx *Context) Closed() bool {
	return ctx.closed.Load()
}
