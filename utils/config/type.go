package config

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
type InputPath struct {
	DB        string `yaml:"db,omitempty"`         // 数据库名
	Col       string `yaml:"col,omitempty"`        // 集合名
	Cache     string `yaml:"cache,omitempty"`      // 缓存文件名，为空则采用默认路径{db}.{col}.pb
	OnlyCache bool   `yaml:"only_cache,omitempty"` // 只从缓存中获取
	File      string `yaml:"file,omitempty"`       // 文件路径（优先级高于MongoDB）
}

// 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// GetCachePath 获取缓存文件路径，默认为{数据库名}.{集合名}.pb
func (p InputPath) GetCachePath() string {
	if p.Cache != "" {
		return p.Cache
	}
	return p.DB + "." + p.Col + ".pb"
}

// Empty 未指定任何数据来源
func (p InputPath) Empty() bool {
	return p.File == "" && p.DB == "" && p.Col == ""
}

// Input 指定所有输入数据的配置项
type Input struct {
	URI     string    `yaml:"uri,omitempty"`     // MongoDB连接字符串
	Map     InputPath `yaml:"map"`               // 地图，为空时使用内置演示地图
	Overlay string    `yaml:"overlay,omitempty"` // 叠加图形文件（YAML），可选
}

// ControlStep 指定模拟时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Spawn 演示智能体数量
type Spawn struct {
	Cars        int `yaml:"cars"`        // 行驶中的车辆
	ParkedCars  int `yaml:"parked_cars"` // 停放的车辆
	Pedestrians int `yaml:"pedestrians"` // 行人
}

// Control 模拟器控制配置
type Control struct {
	Step  ControlStep `yaml:"step"`
	Seed  uint64      `yaml:"seed,omitempty"`  // 演示智能体随机种子
	Spawn Spawn       `yaml:"spawn,omitempty"` // 演示智能体
}

// Map 地图相关配置
type Map struct {
	Name string `yaml:"name,omitempty"` // 地图名，用于匹配保存的相机状态
	// 按车道ID覆盖车道类型（driving/parking/sidewalk/biking/bus），
	// 城市地图数据中没有停车道、公交道、自行车道的区分
	LaneTypes map[int32]string `yaml:"lane_types,omitempty"`
}

// Viewer 可视化前端相关配置
type Viewer struct {
	Listen       string  `yaml:"listen,omitempty"`        // HTTP/websocket监听地址
	FPS          int     `yaml:"fps,omitempty"`           // 动画模式下的帧率
	EditorState  string  `yaml:"editor_state,omitempty"`  // 相机状态文件
	ColorScheme  string  `yaml:"color_scheme,omitempty"`  // 配色文件
	WindowWidth  float64 `yaml:"window_width,omitempty"`  // 初始窗口宽度（像素）
	WindowHeight float64 `yaml:"window_height,omitempty"` // 初始窗口高度（像素）
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input   `yaml:"input"`            // 输入
	Control Control `yaml:"control"`          // 模拟过程控制
	Map     Map     `yaml:"map,omitempty"`    // 地图
	Viewer  Viewer  `yaml:"viewer,omitempty"` // 前端
}
