// Package linear is an in-process aerodynamic model built from linear
// stability derivatives of a small single-engine fighter. It implements the
// same entry-point set as a native coefficient plugin and stands in for one
// wherever table data is unavailable: driver binaries and the core test
// suite. The leading-edge flap contribution is folded into the derivatives.
package linear

import (
	"math"

	"github.com/openfdm/sixdof"
)

// Airframe geometry shared by the derivatives below.
const (
	span  = 30.0
	chord = 11.32
)

// Longitudinal derivatives: per rad of alpha, per deg of elevator, per unit
// of normalized pitch rate.
const (
	cL0     = 0.04
	cLAlpha = 4.4
	cLDe    = 0.008
	cD0     = 0.021
	kDrag   = 0.13
	cM0     = 0.015
	cMAlpha = -0.48
	cMQ     = -6.5
	cMDe    = -0.011
)

// Lateral-directional derivatives: per rad of beta, per deg of surface, per
// unit of normalized roll/yaw rate.
const (
	cYBeta = -1.15
	cYDr   = 0.0035
	cLbB   = -0.066
	cLbP   = -0.38
	cLbR   = 0.076
	cLbDa  = -0.0014
	cLbDr  = 0.0003
	cNBeta = 0.071
	cNP    = -0.03
	cNR    = -0.43
	cNDa   = -0.0003
	cNDr   = -0.0012
)

// Info is the model manifest.
func Info() sixdof.ModelInfo {
	return sixdof.ModelInfo{
		Name:        "linear",
		Author:      "openfdm",
		Version:     "1.0.0",
		Description: "linear stability-derivative aerodynamic model",
	}
}

// Constants returns the airframe constants (slug, ft, slug-ft^2).
func Constants() sixdof.PlaneConstants {
	return sixdof.PlaneConstants{
		M: 636.94, B: span, S: 300, CBar: chord,
		XcgR: 0.35, Xcg: 0.30, HEng: 160,
		Jx: 9496, Jy: 55814, Jz: 63100, Jxz: 982,
	}
}

// CtrlLimits returns the control and envelope limits.
func CtrlLimits() sixdof.ControlLimit {
	return sixdof.ControlLimit{
		ThrustCmdTop: 19000, ThrustCmdBottom: 1000, ThrustRateLimit: 10000,
		EleCmdTop: 25, EleCmdBottom: -25, EleRateLimit: 60,
		AilCmdTop: 21.5, AilCmdBottom: -21.5, AilRateLimit: 80,
		RudCmdTop: 30, RudCmdBottom: -30, RudRateLimit: 120,
		AlphaLimitTop: 45, AlphaLimitBottom: -20,
		BetaLimitTop: 30, BetaLimitBottom: -30,
	}
}

func coefficients(state *[12]float64, control *[4]float64, dLEF float64, out *[6]float64) int {
	velocity := state[6]
	if velocity < 0.01 {
		velocity = 0.01
	}
	alpha, beta := state[7], state[8]
	p, q, r := state[9], state[10], state[11]
	de, da, dr := control[1], control[2], control[3]

	phat := p * span / (2 * velocity)
	qhat := q * chord / (2 * velocity)
	rhat := r * span / (2 * velocity)

	cLift := cL0 + cLAlpha*alpha + cLDe*de
	cDrag := cD0 + kDrag*cLift*cLift
	cm := cM0 + cMAlpha*alpha + cMQ*qhat + cMDe*de

	cy := cYBeta*beta + cYDr*dr
	cl := cLbB*beta + cLbP*phat + cLbR*rhat + cLbDa*da + cLbDr*dr
	cn := cNBeta*beta + cNP*phat + cNR*rhat + cNDa*da + cNDr*dr

	sa, ca := math.Sin(alpha), math.Cos(alpha)
	out[0] = cLift*sa - cDrag*ca
	out[1] = -cLift*ca - cDrag*sa
	out[2] = cm
	out[3] = cy
	out[4] = cn
	out[5] = cl
	return 0
}

// Symbols returns the resolved entry-point set. The optional host-service
// registration symbols are deliberately absent.
func Symbols() sixdof.ModelSymbols {
	return sixdof.ModelSymbols{
		InstallHook:   func(args []string) int { return 0 },
		UninstallHook: func(args []string) int { return 0 },
		LoadConstants: func(out *sixdof.PlaneConstants) int {
			*out = Constants()
			return 0
		},
		LoadCtrlLimits: func(out *sixdof.ControlLimit) int {
			*out = CtrlLimits()
			return 0
		},
		Init:   func() int { return 0 },
		Trim:   coefficients,
		Step:   coefficients,
		Delete: func() int { return 0 },
	}
}

// Model wraps the symbol set into a ready adapter.
func Model() (*sixdof.AerodynamicModel, error) {
	return sixdof.NewAerodynamicModel(Info(), Symbols(), nil)
}
