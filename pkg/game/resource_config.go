package game

import "path/filepath"

// ResourceConfig 资源清单中的音频部分
//
// 对应 assets/config/resources.yaml：
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  audio:
//	    sounds:
//	      - id: MUSIC_MAZE
//	        path: audio/maze_bgm.ogg
//
// 同一文件中的 models 节点（迷路与角色动作片段）由 config.LoadBundle 解析。
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组可以一起加载的资源
type ResourceGroup struct {
	Sounds []SoundResource `yaml:"sounds"`
}

// SoundResource 单个音频资源
//
// 示例:
//   - id: SOUND_BEAM
//     path: audio/beam.ogg
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"` // 相对 base_path 的路径，没有扩展名时默认 .ogg
}

// buildFullPath 拼接 base_path 与资源相对路径
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}

// soundPath 音频资源的完整路径
func soundPath(basePath string, s SoundResource) string {
	full := buildFullPath(basePath, s.Path)
	if filepath.Ext(full) == "" {
		full += ".ogg"
	}
	return full
}
