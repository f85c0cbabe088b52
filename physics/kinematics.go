package physics

// ApplyGravity adds gravitational acceleration to a vertical velocity and
// caps the result at terminal velocity. Only downward speed is capped;
// upward velocity passes through untouched.
func ApplyGravity(vy, gravity, terminal, dt float64) float64 {
	vy += gravity * dt
	if vy > terminal {
		return terminal
	}
	return vy
}

// Approach moves current toward target by at most maxDelta without
// overshooting. It is the building block for all acceleration and
// deceleration.
func Approach(current, target, maxDelta float64) float64 {
	if current < target {
		current += maxDelta
		if current > target {
			return target
		}
		return current
	}
	if current > target {
		current -= maxDelta
		if current < target {
			return target
		}
		return current
	}
	return target
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// ClampSpeed clamps a velocity component to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}
