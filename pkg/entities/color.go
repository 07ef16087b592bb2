package entities

import "strconv"

// ParseHexColor 解析 "#rrggbb"，格式错误时返回 fallback
func ParseHexColor(s string, fallback [3]uint8) [3]uint8 {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fallback
	}
	return [3]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}
