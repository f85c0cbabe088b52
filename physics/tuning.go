package physics

// Tuning holds every constant the movement core runs on. Values are loaded
// from the prefab specs at startup; DefaultTuning matches the shipped
// yaml so tests and headless callers don't need the prefab files.
type Tuning struct {
	// Integration
	Gravity          float64
	TerminalVelocity float64
	// MaxDelta is the upper bound on a frame's dt. Clamping here bounds the
	// sub-step count and keeps the simulation stable through frame spikes.
	MaxDelta float64

	// Ground/air locomotion
	MoveSpeed        float64
	GroundAccel      float64
	GroundDecel      float64
	AirAccel         float64
	AirDecel         float64
	SprintMultiplier float64

	// Jumping
	JumpVelocity   float64
	CoyoteTime     float64
	JumpBufferTime float64

	// Walls
	WallSlideSpeed    float64
	WallJumpVelocityX float64
	WallJumpVelocityY float64
	WallJumpLockTime  float64

	// Roll/dash
	RollSpeed    float64
	RollDuration float64
	RollCooldown float64
	RollIFrames  float64

	// Damage
	HazardDamage   int
	InvincibleTime float64
	KnockbackLiftY float64

	// Swept resolution
	StepSize     float64
	HookStepSize float64

	// Grapple
	GrappleFireSpeed    float64
	GrappleMaxRange     float64
	GrapplePullForce    float64
	GrapplePullMaxSpeed float64
	GrappleMinPullDist  float64
	GrappleMinFireDist  float64
	GrappleReleaseBoost float64
	PreferredRopeLength float64
	MinRopeLength       float64
	RopeAdjustSpeed     float64
	SwingImpulse        float64
	SwingDamping        float64
	SwingBounceDamping  float64
}

// DefaultTuning returns the tuning the game ships with.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:          1800,
		TerminalVelocity: 750,
		MaxDelta:         1.0 / 30.0,

		MoveSpeed:        260,
		GroundAccel:      1600,
		GroundDecel:      1400,
		AirAccel:         1200,
		AirDecel:         600,
		SprintMultiplier: 1.45,

		JumpVelocity:   -520,
		CoyoteTime:     0.1,
		JumpBufferTime: 0.12,

		WallSlideSpeed:    120,
		WallJumpVelocityX: 380,
		WallJumpVelocityY: -480,
		WallJumpLockTime:  0.2,

		RollSpeed:    550,
		RollDuration: 0.25,
		RollCooldown: 0.4,
		RollIFrames:  0.2,

		HazardDamage:   25,
		InvincibleTime: 1.0,
		KnockbackLiftY: 200,

		StepSize:     10,
		HookStepSize: 4,

		GrappleFireSpeed:    2000,
		GrappleMaxRange:     450,
		GrapplePullForce:    2800,
		GrapplePullMaxSpeed: 900,
		GrappleMinPullDist:  32,
		GrappleMinFireDist:  20,
		GrappleReleaseBoost: 1.2,
		PreferredRopeLength: 180,
		MinRopeLength:       40,
		RopeAdjustSpeed:     200,
		SwingImpulse:        4.0,
		SwingDamping:        0.997,
		SwingBounceDamping:  -0.4,
	}
}
