package sixdof

import "math"

// Atmos is the standard-day atmosphere at a flight condition.
type Atmos struct {
	Mach float64
	Qbar float64 // dynamic pressure, lb/ft^2
	Ps   float64 // static pressure, lb/ft^2
}

// Atmosphere evaluates the standard-day atmosphere model at the given
// altitude (ft) and true airspeed (ft/s). The temperature lapse stops at the
// 35000 ft tropopause.
func Atmosphere(altitude, velocity float64) Atmos {
	const rho0 = 2.377e-3
	tfac := 1 - 0.703e-5*altitude

	temp := 519 * tfac
	if altitude >= 35000 {
		temp = 390
	}

	mach := velocity / math.Sqrt(1.4*1716.3*temp)
	rho := rho0 * math.Pow(tfac, 4.14)
	qbar := 0.5 * rho * velocity * velocity
	ps := 1715 * rho * temp
	if math.Abs(ps) < 1e-6 {
		ps = 1715
	}

	return Atmos{Mach: mach, Qbar: qbar, Ps: ps}
}

// GetLEF is the steady-state leading-edge flap schedule: the deflection (deg)
// the closed-loop LEF controller converges to at a fixed flight condition.
// Alpha in rad.
func GetLEF(altitude, velocity, alpha float64) float64 {
	atm := Atmosphere(altitude, velocity)
	lef := 1.38*alpha*rad2deg - 9.05*atm.Qbar/atm.Ps + 1.45
	return clamp(lef, 0, 25)
}
