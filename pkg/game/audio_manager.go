package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioPlayer 可播放的音频（*audio.Player 满足该接口）
type AudioPlayer interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

var _ AudioPlayer = (*audio.Player)(nil)

// AudioSource 按资源ID提供播放器（ResourceManager 满足该接口）
type AudioSource interface {
	LoadAudio(id string) (*audio.Player, error)
	LoadSoundEffect(id string) (*audio.Player, error)
}

// AudioManager 音频管理器
//
// 实际音量 = 调用方给出的基础音量 × 设置中的音量倍率。
// 资源缺失时只记录一次日志，之后静默跳过。
type AudioManager struct {
	load            func(id string, loop bool) (AudioPlayer, error)
	settingsManager *SettingsManager // 可为 nil

	players        map[string]AudioPlayer
	missing        map[string]bool
	currentMusic   AudioPlayer
	currentMusicID string
	musicBase      float64
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - src: 音频来源，可为 nil（静音）
//   - sm: 设置管理器，可为 nil
func NewAudioManager(src AudioSource, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		settingsManager: sm,
		players:         make(map[string]AudioPlayer),
		missing:         make(map[string]bool),
	}
	if src != nil {
		am.load = func(id string, loop bool) (AudioPlayer, error) {
			if loop {
				return src.LoadAudio(id)
			}
			return src.LoadSoundEffect(id)
		}
	}
	return am
}

// PlaySound 从头播放一次音效
//
// 参数：
//   - soundID: 音效资源ID（如 "SOUND_BEAM"）
//   - baseVolume: 基础音量 0.0 ~ 1.0
//
// 返回：
//   - bool: 是否播放
func (am *AudioManager) PlaySound(soundID string, baseVolume float64) bool {
	settings := am.settings()
	if settings != nil && !settings.SoundEnabled {
		return false
	}
	player := am.player(soundID, false)
	if player == nil {
		return false
	}

	player.SetVolume(clampVolume(baseVolume * am.soundScale()))
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 循环播放背景音乐，同一时间只有一首
//
// 参数：
//   - musicID: 音乐资源ID（如 "MUSIC_MAZE"）
//   - baseVolume: 基础音量 0.0 ~ 1.0
func (am *AudioManager) PlayMusic(musicID string, baseVolume float64) bool {
	settings := am.settings()
	if settings != nil && !settings.MusicEnabled {
		return false
	}
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()
	player := am.player(musicID, true)
	if player == nil {
		return false
	}

	am.musicBase = baseVolume
	volume := clampVolume(baseVolume * am.musicScale())
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID
	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, volume)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// PauseMusic 暂停当前背景音乐
func (am *AudioManager) PauseMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic 恢复当前背景音乐
func (am *AudioManager) ResumeMusic() {
	if am.currentMusic == nil {
		return
	}
	if settings := am.settings(); settings != nil && !settings.MusicEnabled {
		return
	}
	am.currentMusic.Play()
}

// SetMusicVolume 设置音乐音量倍率并立即应用到当前音乐
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(clampVolume(am.musicBase * am.musicScale()))
	}
}

// SetSoundVolume 设置音效音量倍率，影响之后播放的音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// CurrentMusic 当前背景音乐ID
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// player 获取或创建播放器，失败的资源只提示一次
func (am *AudioManager) player(id string, loop bool) AudioPlayer {
	if p, ok := am.players[id]; ok {
		return p
	}
	if am.load == nil || am.missing[id] {
		return nil
	}
	p, err := am.load(id, loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: audio %s unavailable: %v", id, err)
		am.missing[id] = true
		return nil
	}
	am.players[id] = p
	return p
}

func (am *AudioManager) settings() *GameSettings {
	if am.settingsManager == nil {
		return nil
	}
	return am.settingsManager.GetSettings()
}

func (am *AudioManager) musicScale() float64 {
	if s := am.settings(); s != nil {
		return s.MusicVolume
	}
	return 1.0
}

func (am *AudioManager) soundScale() float64 {
	if s := am.settings(); s != nil {
		return s.SoundVolume
	}
	return 1.0
}
