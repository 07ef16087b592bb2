package config

// 窗口逻辑尺寸
const (
	GameWindowWidth  = 1024
	GameWindowHeight = 768
)

// 小地图
const (
	MinimapSize   = 180 // 小地图边长（像素）
	MinimapMargin = 12  // 小地图距窗口右上角的边距（像素）
)

// 默认资源路径
const (
	GameConfigPath     = "data/game.yaml"
	ResourceConfigPath = "assets/config/resources.yaml"
)
