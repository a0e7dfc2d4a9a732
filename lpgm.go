package knet

import "math"

const lpgmOscillatorCount = 32

// mat2 is a 2x2 matrix used for the per-oscillator state-transition (A_k),
// forcing (B_k), response state (C_k) and input (M) matrices of the LPGM
// bank. Row/column meaning is documented per use site.
type mat2 [2][2]float64

func mulMat2(a, b mat2) mat2 {
	var out mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
		}
	}
	return out
}

func addMat2(a, b mat2) mat2 {
	var out mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}

// oscillator holds the precomputed Nigam-Jennings transition matrix A and
// forcing matrix B for one single-degree-of-freedom oscillator, derived
// once at construction from its natural period, damping and the sample
// period.
type oscillator struct {
	a mat2
	b mat2
}

// newOscillator derives A_k and B_k for angular frequency omega and
// damping zeta over timestep dt, via the Nigam-Jennings closed-form
// step-by-step integration assuming linear acceleration between samples.
func newOscillator(omega, zeta, dt float64) oscillator {
	d := math.Sqrt(1 - zeta*zeta)
	wd := omega * d
	phi := wd * dt

	e := math.Exp(-zeta * omega * dt)
	s := math.Sin(phi)
	c := math.Cos(phi)
	a1 := (zeta / d) * s
	a2 := s * e / d

	a := mat2{
		{e * (a1 + c), a2 / omega},
		{-a2 * omega, e * (-a1 + c)},
	}

	wdt := omega * dt
	w2 := omega * omega

	cc := (1 / w2) * ((2*zeta)/wdt + e*(((1-2*zeta*zeta)/phi-zeta/d)*s-(1+(2*zeta)/wdt)*c))
	dd := (1 / w2) * (1 - (2*zeta)/wdt + e*(((2*zeta*zeta-1)/phi)*s+((2*zeta)/wdt)*c))
	ccPrime := (1 / w2) * (-1/dt + e*((omega/d+zeta/(dt*d))*s+(1/dt)*c))
	ddPrime := (1 / (w2 * dt)) * (1 - e*((zeta/d)*s+c))

	b := mat2{
		{cc, dd},
		{ccPrime, ddPrime},
	}

	return oscillator{a: a, b: b}
}

// RealtimeLPGMCalculator computes the long-period ground-motion indicator
// (maximum Spectral Velocity of Absolute acceleration) over a bank of 32
// independent SDOF oscillators spanning natural periods 1.6s to 7.8s.
type RealtimeLPGMCalculator struct {
	dt      float64
	zeta    float64
	prefilt *IIRFilterGroup[Vec3]

	oscillators [lpgmOscillatorCount]oscillator
	state       [lpgmOscillatorCount]mat2

	prevFiltered Vec3
	filtered     Vec3
	velocity     Vec3
	sva          [lpgmOscillatorCount]float64
}

// NewRealtimeLPGMCalculator builds the oscillator bank for the given
// sample rate (Hz) and common damping ratio (0 < damping < 1). All 32
// (A_k, B_k) pairs are derived once here, never recomputed per sample.
func NewRealtimeLPGMCalculator(sampleRate float64, damping float64) *RealtimeLPGMCalculator {
	if sampleRate <= 0 {
		panic("knet: LPGM sample rate must be positive")
	}
	if damping <= 0 || damping >= 1 {
		panic("knet: LPGM damping must satisfy 0 < damping < 1")
	}

	dt := 1.0 / sampleRate
	calc := &RealtimeLPGMCalculator{
		dt:   dt,
		zeta: damping,
		prefilt: NewIIRFilterGroup(
			[]BiquadSection{ButterworthHighpass2(0.05, sampleRate)},
			1.0,
			Vec3Ops{},
		),
	}

	for k := 0; k < lpgmOscillatorCount; k++ {
		period := 1.6 + 0.2*float64(k)
		omega := 2 * math.Pi / period
		calc.oscillators[k] = newOscillator(omega, damping, dt)
	}

	return calc
}

// NewDefaultRealtimeLPGMCalculator builds the bank with the standard 0.05
// damping ratio.
func NewDefaultRealtimeLPGMCalculator(sampleRate float64) *RealtimeLPGMCalculator {
	return NewRealtimeLPGMCalculator(sampleRate, 0.05)
}

// Update feeds one (NS, EW, UD) acceleration sample through the baseline
// highpass, the trapezoidal velocity integrator, and every oscillator in
// the bank. The vertical (Z) component is filtered and integrated like
// the others but never reaches the oscillator bank.
func (c *RealtimeLPGMCalculator) Update(accel Vec3) {
	c.prevFiltered = c.filtered
	c.filtered = c.prefilt.Update(accel)

	half := c.dt / 2
	c.velocity.X += (c.prevFiltered.X + c.filtered.X) * float32(half)
	c.velocity.Y += (c.prevFiltered.Y + c.filtered.Y) * float32(half)
	c.velocity.Z += (c.prevFiltered.Z + c.filtered.Z) * float32(half)

	m := mat2{
		{float64(c.prevFiltered.X), float64(c.prevFiltered.Y)},
		{float64(c.filtered.X), float64(c.filtered.Y)},
	}

	for k := 0; k < lpgmOscillatorCount; k++ {
		osc := c.oscillators[k]
		c.state[k] = addMat2(mulMat2(osc.a, c.state[k]), mulMat2(osc.b, m))

		vx := c.state[k][1][0] + float64(c.velocity.X)
		vy := c.state[k][1][1] + float64(c.velocity.Y)
		c.sva[k] = math.Sqrt(vx*vx + vy*vy)
	}
}

// FilteredAcceleration returns the current baseline-corrected acceleration.
func (c *RealtimeLPGMCalculator) FilteredAcceleration() Vec3 { return c.filtered }

// Velocity returns the cumulative trapezoidally-integrated velocity.
func (c *RealtimeLPGMCalculator) Velocity() Vec3 { return c.velocity }

// SVA returns the per-oscillator spectral velocity magnitudes, period
// k corresponding to 1.6 + 0.2*k seconds.
func (c *RealtimeLPGMCalculator) SVA() [lpgmOscillatorCount]float64 { return c.sva }

// MaxSVA returns max(SVA), the long-period ground-motion indicator.
func (c *RealtimeLPGMCalculator) MaxSVA() float64 {
	max := c.sva[0]
	for _, v := range c.sva[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
