package utils

import "math"

// 缓动与插值函数，进度参数 t ∈ [0, 1]

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 把 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Clamp01 把 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// EaseOutCubic 三次方缓出（开始快，结束慢），用于光环、粒子淡出
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-Clamp01(t), 3)
}

// FadeOut 返回剩余可见度 1-t 的缓出曲线
func FadeOut(age, lifetime float64) float64 {
	if lifetime <= 0 {
		return 0
	}
	return 1 - EaseOutCubic(age/lifetime)
}
