package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig 游戏调参配置
//
// 配置文件位置: data/game.yaml
type GameConfig struct {
	Character CharacterConfig `yaml:"character"`
	Camera    CameraConfig    `yaml:"camera"`
	Beam      BeamConfig      `yaml:"beam"`
	Ring      RingConfig      `yaml:"ring"`
	Effects   EffectsConfig   `yaml:"effects"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Spheres   SphereConfig    `yaml:"spheres"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Audio     AudioConfig     `yaml:"audio"`
}

// CharacterConfig 玩家角色参数
type CharacterConfig struct {
	InitialScale  float64 `yaml:"initialScale"`
	Speed         float64 `yaml:"speed"`
	RotationSpeed float64 `yaml:"rotationSpeed"` // 弧度/秒
	TurnGain      float64 `yaml:"turnGain"`      // 转身插值增益
	BaseHeight    float64 `yaml:"baseHeight"`    // 缩放前的胶囊高度
	BaseRadius    float64 `yaml:"baseRadius"`    // 缩放前的胶囊半径
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Restitution   float64 `yaml:"restitution"`

	// RunThreshold 实际水平速度超过 Speed*RunThreshold 时切换为奔跑
	RunThreshold      float64 `yaml:"runThreshold"`
	CrossfadeDuration float64 `yaml:"crossfadeDuration"`
	// KickBeamDelay 踢腿开始后发射光束的延迟（秒）
	KickBeamDelay float64 `yaml:"kickBeamDelay"`
}

// Height 缩放后的胶囊高度
func (c CharacterConfig) Height() float64 { return c.BaseHeight * c.InitialScale }

// Radius 缩放后的胶囊半径
func (c CharacterConfig) Radius() float64 { return c.BaseRadius * c.InitialScale }

// CameraConfig 相机参数
type CameraConfig struct {
	TargetOffsetY   float64    `yaml:"targetOffsetY"`
	DefaultOffset   [3]float64 `yaml:"defaultOffset"`
	FollowSpeed     float64    `yaml:"followSpeed"`
	CorrectionLerp  float64    `yaml:"correctionLerp"`
	CollisionOffset float64    `yaml:"collisionOffset"`
	ZoomResetLerp   float64    `yaml:"zoomResetLerp"`
	ZoomSnapEpsilon float64    `yaml:"zoomSnapEpsilon"`
	// MinZoomRadii 最小距离 = 角色半径 × MinZoomRadii
	MinZoomRadii float64 `yaml:"minZoomRadii"`
	MaxZoom      float64 `yaml:"maxZoom"`
	// ZoomSpeedFactor 每格滚轮改变当前距离的比例
	ZoomSpeedFactor float64 `yaml:"zoomSpeedFactor"`
	// NearFactor 遮挡射线的起始距离 = 最小距离 × NearFactor
	NearFactor float64 `yaml:"nearFactor"`
}

// DefaultDistance 默认相机距离（默认偏移的长度）
func (c CameraConfig) DefaultDistance() float64 {
	o := c.DefaultOffset
	return math.Sqrt(o[0]*o[0] + o[1]*o[1] + o[2]*o[2])
}

// BeamConfig 光束参数
type BeamConfig struct {
	Radius          float64 `yaml:"radius"`
	Length          float64 `yaml:"length"` // 可见长度，也是射线检测的最远距离
	Speed           float64 `yaml:"speed"`
	MaxLifetime     float64 `yaml:"maxLifetime"`     // 秒，<=0 表示不限
	DisplayAfterHit float64 `yaml:"displayAfterHit"` // 秒
	// SpawnForwardRadii 发射点前移 = 角色半径 × SpawnForwardRadii
	SpawnForwardRadii float64 `yaml:"spawnForwardRadii"`
	// SpawnHeightRatio 发射高度 = 角色高度 × SpawnHeightRatio
	SpawnHeightRatio float64 `yaml:"spawnHeightRatio"`
	Damage           int     `yaml:"damage"`
}

// RingConfig 踢腿光环参数
type RingConfig struct {
	Radius       float64 `yaml:"radius"`
	Duration     float64 `yaml:"duration"`
	ForwardRadii float64 `yaml:"forwardRadii"` // 前移 = 角色半径 × ForwardRadii
	UpRingRadii  float64 `yaml:"upRingRadii"`  // 上移 = 光环半径 × UpRingRadii
}

// EffectsConfig 粒子与碎片参数
type EffectsConfig struct {
	Impact ParticleConfig `yaml:"impact"`
	Spark  ParticleConfig `yaml:"spark"`
	Debris DebrisConfig   `yaml:"debris"`
	// Grace 粒子批次超时宽限（秒）
	Grace float64 `yaml:"grace"`
}

// ParticleConfig 粒子批次参数
type ParticleConfig struct {
	Count    int     `yaml:"count"`
	Lifetime float64 `yaml:"lifetime"`
	Speed    float64 `yaml:"speed"`
	Spread   float64 `yaml:"spread"`
	SpeedMin float64 `yaml:"speedMin"` // 速度随机倍率下限
	SpeedMax float64 `yaml:"speedMax"` // 速度随机倍率上限
	Gravity  float64 `yaml:"gravity"`
	Size     float64 `yaml:"size"`
}

// DebrisConfig 碎片参数
type DebrisConfig struct {
	Count             int     `yaml:"count"`
	Lifetime          float64 `yaml:"lifetime"`
	Speed             float64 `yaml:"speed"`
	Spread            float64 `yaml:"spread"`
	UpMin             float64 `yaml:"upMin"`
	UpMax             float64 `yaml:"upMax"`
	Size              float64 `yaml:"size"`
	Gravity           float64 `yaml:"gravity"`
	MaxBounces        int     `yaml:"maxBounces"`
	Restitution       float64 `yaml:"restitution"`
	HorizontalDamping float64 `yaml:"horizontalDamping"`
	AngularDamping    float64 `yaml:"angularDamping"`
	TimeoutGrace      float64 `yaml:"timeoutGrace"`
	GroundY           float64 `yaml:"groundY"`
}

// EnemyConfig 敌人参数
type EnemyConfig struct {
	Scale            float64    `yaml:"scale"`
	HP               int        `yaml:"hp"`
	Speed            float64    `yaml:"speed"`
	Mass             float64    `yaml:"mass"`
	HeightFactor     float64    `yaml:"heightFactor"`
	RadiusFactor     float64    `yaml:"radiusFactor"`
	AttackRange      float64    `yaml:"attackRange"`
	DefaultAnimation string     `yaml:"defaultAnimation"`
	SpawnCount       int        `yaml:"spawnCount"`
	SpawnCenter      [3]float64 `yaml:"spawnCenter"`
	SpawnRadius      float64    `yaml:"spawnRadius"`
	// SpawnLift 出生高度 = 敌人高度/2 + SpawnLift
	SpawnLift float64 `yaml:"spawnLift"`
	Friction  float64 `yaml:"friction"`
}

// Height 默认缩放下的敌人胶囊高度
func (c EnemyConfig) Height() float64 { return c.HeightFactor * c.Scale }

// Radius 默认缩放下的敌人胶囊半径
func (c EnemyConfig) Radius() float64 { return c.RadiusFactor * c.Scale }

// SphereConfig 可破坏球体参数
type SphereConfig struct {
	Count       int     `yaml:"count"`
	MinRadius   float64 `yaml:"minRadius"`
	MaxRadius   float64 `yaml:"maxRadius"`
	Mass        float64 `yaml:"mass"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	DropHeight  float64 `yaml:"dropHeight"`
}

// PhysicsConfig 物理步进参数
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	MaxSubSteps     int     `yaml:"maxSubSteps"`
	FixedSubStep    float64 `yaml:"fixedSubStep"`
	WallFriction    float64 `yaml:"wallFriction"`
	WallRestitution float64 `yaml:"wallRestitution"`
}

// AudioConfig 音频资源ID与音量
type AudioConfig struct {
	BGM        string  `yaml:"bgm"`
	BeamSound  string  `yaml:"beamSound"`
	BGMVolume  float64 `yaml:"bgmVolume"`
	BeamVolume float64 `yaml:"beamVolume"`
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Character: CharacterConfig{
			InitialScale:      30,
			Speed:             200,
			RotationSpeed:     math.Pi,
			TurnGain:          5,
			BaseHeight:        1.8,
			BaseRadius:        0.4,
			Mass:              40,
			Friction:          0.7,
			Restitution:       0.1,
			RunThreshold:      0.01,
			CrossfadeDuration: 0.2,
			KickBeamDelay:     0.7,
		},
		Camera: CameraConfig{
			TargetOffsetY:   40,
			DefaultOffset:   [3]float64{0, 100, 50},
			FollowSpeed:     0.08,
			CorrectionLerp:  0.15,
			CollisionOffset: 5,
			ZoomResetLerp:   0.08,
			ZoomSnapEpsilon: 0.5,
			MinZoomRadii:    3,
			MaxZoom:         10000,
			ZoomSpeedFactor: 0.1,
			NearFactor:      0.8,
		},
		Beam: BeamConfig{
			Radius:            7,
			Length:            5000,
			Speed:             3000,
			MaxLifetime:       1.0,
			DisplayAfterHit:   0.15,
			SpawnForwardRadii: 3.1,
			SpawnHeightRatio:  0.5,
			Damage:            40,
		},
		Ring: RingConfig{
			Radius:       15,
			Duration:     1.0,
			ForwardRadii: 3.0,
			UpRingRadii:  1.8,
		},
		Effects: EffectsConfig{
			Impact: ParticleConfig{Count: 150, Lifetime: 0.4, Speed: 800, Spread: 3.5, SpeedMin: 0.7, SpeedMax: 1.3, Gravity: 490, Size: 3},
			Spark:  ParticleConfig{Count: 40, Lifetime: 0.5, Speed: 1500, SpeedMin: 0.8, SpeedMax: 1.2, Size: 2},
			Debris: DebrisConfig{
				Count:             32,
				Lifetime:          1.0,
				Speed:             700,
				Spread:            1.8,
				UpMin:             0.4,
				UpMax:             0.8,
				Size:              10,
				Gravity:           980,
				MaxBounces:        3,
				Restitution:       0.4,
				HorizontalDamping: 0.8,
				AngularDamping:    0.7,
				TimeoutGrace:      2.0,
			},
			Grace: 0.1,
		},
		Enemy: EnemyConfig{
			Scale:            20,
			HP:               100,
			Speed:            80,
			Mass:             50,
			HeightFactor:     1.6,
			RadiusFactor:     0.4,
			AttackRange:      70,
			DefaultAnimation: "default",
			SpawnCount:       3,
			SpawnCenter:      [3]float64{0, 0, 200},
			SpawnRadius:      100,
			SpawnLift:        0.2,
			Friction:         0.7,
		},
		Spheres: SphereConfig{
			Count:       24,
			MinRadius:   15,
			MaxRadius:   40,
			Mass:        10,
			Friction:    0.1,
			Restitution: 0.6,
			DropHeight:  600,
		},
		Physics: PhysicsConfig{
			Gravity:         -9.8 * 30 * 2,
			MaxSubSteps:     2,
			FixedSubStep:    1.0 / 60.0,
			WallFriction:    0.7,
			WallRestitution: 0.5,
		},
		Audio: AudioConfig{
			BGM:        "MUSIC_MAZE",
			BeamSound:  "SOUND_BEAM",
			BGMVolume:  0.3,
			BeamVolume: 0.6,
		},
	}
}

// LoadGameConfig 从文件加载调参配置
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 以默认值为底、被文件覆盖后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 数据；文件中缺省的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *GameConfig) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Character.InitialScale > 0, "character.initialScale must be > 0"},
		{c.Character.Speed > 0, "character.speed must be > 0"},
		{c.Character.BaseHeight > 2*c.Character.BaseRadius && c.Character.BaseRadius > 0, "character capsule must be taller than its diameter"},
		{c.Character.Mass > 0, "character.mass must be > 0"},
		{c.Character.CrossfadeDuration >= 0, "character.crossfadeDuration must be >= 0"},
		{c.Camera.DefaultDistance() > 0, "camera.defaultOffset must not be zero"},
		{c.Camera.FollowSpeed > 0 && c.Camera.FollowSpeed <= 1, "camera.followSpeed must be in (0, 1]"},
		{c.Camera.CorrectionLerp > 0 && c.Camera.CorrectionLerp <= 1, "camera.correctionLerp must be in (0, 1]"},
		{c.Camera.MaxZoom > c.Character.Radius()*c.Camera.MinZoomRadii, "camera.maxZoom must exceed the minimum zoom"},
		{c.Beam.Length > 0 && c.Beam.Speed > 0, "beam.length and beam.speed must be > 0"},
		{c.Beam.DisplayAfterHit >= 0, "beam.displayAfterHit must be >= 0"},
		{c.Ring.Duration > 0, "ring.duration must be > 0"},
		{c.Effects.Impact.Count >= 0 && c.Effects.Spark.Count >= 0 && c.Effects.Debris.Count >= 0, "effect counts must be >= 0"},
		{c.Effects.Debris.MaxBounces >= 0, "effects.debris.maxBounces must be >= 0"},
		{c.Enemy.HP > 0, "enemy.hp must be > 0"},
		{c.Enemy.Height() > 2*c.Enemy.Radius() && c.Enemy.Radius() > 0, "enemy capsule must be taller than its diameter"},
		{c.Enemy.SpawnRadius >= 0, "enemy.spawnRadius must be >= 0"},
		{c.Spheres.MinRadius > 0 && c.Spheres.MaxRadius >= c.Spheres.MinRadius, "spheres radius range invalid"},
		{c.Physics.FixedSubStep > 0, "physics.fixedSubStep must be > 0"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.msg)
		}
	}
	return nil
}
