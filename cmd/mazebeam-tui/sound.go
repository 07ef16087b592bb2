package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// tone 一个短促的合成音
type tone struct {
	freq     float64
	duration time.Duration
	volume   float64 // 以 2 为底的音量偏移，0 为原始音量
}

var (
	beamTone   = tone{freq: 660, duration: 90 * time.Millisecond, volume: -1}
	impactTone = tone{freq: 110, duration: 60 * time.Millisecond, volume: 0}
)

// tones 终端前端的合成音效，初始化失败时静音
type tones struct {
	enabled bool
}

// newTones 初始化扬声器
//
// 参数:
//   - mute: 为 true 时不打开音频设备
func newTones(mute bool) *tones {
	if mute {
		return &tones{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[Sound] Warning: audio initialization failed: %v", err)
		return &tones{}
	}
	return &tones{enabled: true}
}

// streamer 生成音调的音频流
func (t tone) streamer() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create tone %.0fHz: %w", t.freq, err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(t.duration), sine),
		Base:     2,
		Volume:   t.volume,
	}, nil
}

func (ts *tones) play(t tone) {
	if !ts.enabled {
		return
	}
	s, err := t.streamer()
	if err != nil {
		log.Printf("[Sound] Warning: %v", err)
		return
	}
	speaker.Play(s)
}

// Beam 发射光束
func (ts *tones) Beam() { ts.play(beamTone) }

// Impact 光束撞墙或击碎球体
func (ts *tones) Impact() { ts.play(impactTone) }

// Close 关闭音频设备
func (ts *tones) Close() {
	if ts.enabled {
		speaker.Close()
		ts.enabled = false
	}
}
