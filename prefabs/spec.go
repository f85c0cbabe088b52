package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec is the movement tuning sheet. Every number feeds the movement
// core; the shipped yaml matches physics.DefaultTuning.
type PlayerSpec struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health int     `yaml:"health"`

	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`

	MoveSpeed        float64 `yaml:"move_speed"`
	GroundAccel      float64 `yaml:"ground_accel"`
	GroundDecel      float64 `yaml:"ground_decel"`
	AirAccel         float64 `yaml:"air_accel"`
	AirDecel         float64 `yaml:"air_decel"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`

	JumpVelocity   float64 `yaml:"jump_velocity"`
	CoyoteTime     float64 `yaml:"coyote_time"`
	JumpBufferTime float64 `yaml:"jump_buffer_time"`

	WallSlideSpeed    float64 `yaml:"wall_slide_speed"`
	WallJumpVelocityX float64 `yaml:"wall_jump_velocity_x"`
	WallJumpVelocityY float64 `yaml:"wall_jump_velocity_y"`
	WallJumpLockTime  float64 `yaml:"wall_jump_lock_time"`

	RollSpeed    float64 `yaml:"roll_speed"`
	RollDuration float64 `yaml:"roll_duration"`
	RollCooldown float64 `yaml:"roll_cooldown"`
	RollIFrames  float64 `yaml:"roll_iframes"`

	HazardDamage   int     `yaml:"hazard_damage"`
	InvincibleTime float64 `yaml:"invincible_time"`
	KnockbackLiftY float64 `yaml:"knockback_lift_y"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	data, err := Load("player.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load player.yaml: %w", err)
	}
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player.yaml: %w", err)
	}
	return &spec, nil
}

// GrappleSpec tunes the hook and the rope rendering.
type GrappleSpec struct {
	Name string `yaml:"name"`

	FireSpeed    float64 `yaml:"fire_speed"`
	MaxRange     float64 `yaml:"max_range"`
	PullForce    float64 `yaml:"pull_force"`
	PullMaxSpeed float64 `yaml:"pull_max_speed"`
	MinPullDist  float64 `yaml:"min_pull_dist"`
	MinFireDist  float64 `yaml:"min_fire_dist"`
	ReleaseBoost float64 `yaml:"release_boost"`

	PreferredRopeLength float64 `yaml:"preferred_rope_length"`
	MinRopeLength       float64 `yaml:"min_rope_length"`
	RopeAdjustSpeed     float64 `yaml:"rope_adjust_speed"`
	SwingImpulse        float64 `yaml:"swing_impulse"`
	SwingDamping        float64 `yaml:"swing_damping"`
	SwingBounceDamping  float64 `yaml:"swing_bounce_damping"`

	RopeWidth float32    `yaml:"rope_width"`
	RopeColor *YAMLColor `yaml:"rope_color"`
}

func LoadGrappleSpec() (*GrappleSpec, error) {
	data, err := Load("grapple.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load grapple.yaml: %w", err)
	}
	var spec GrappleSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal grapple.yaml: %w", err)
	}
	return &spec, nil
}

type CameraSpec struct {
	Name       string  `yaml:"name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
	PanTime    float64 `yaml:"pan_time"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	data, err := Load("camera.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load camera.yaml: %w", err)
	}
	var spec CameraSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal camera.yaml: %w", err)
	}
	return &spec, nil
}

type EnemySpec struct {
	Name          string     `yaml:"name"`
	Width         float64    `yaml:"width"`
	Height        float64    `yaml:"height"`
	Health        int        `yaml:"health"`
	MoveSpeed     float64    `yaml:"move_speed"`
	ContactDamage int        `yaml:"contact_damage"`
	KnockbackX    float64    `yaml:"knockback_x"`
	KnockbackY    float64    `yaml:"knockback_y"`
	Script        string     `yaml:"script"`
	Color         *YAMLColor `yaml:"color"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	data, err := Load("enemy.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load enemy.yaml: %w", err)
	}
	var spec EnemySpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal enemy.yaml: %w", err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
