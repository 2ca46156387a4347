package dsp

import "math"

// Goertzel computes the power of a single target frequency bin over a
// block of N samples in O(N) time and O(1) state.
type Goertzel struct {
	sampleRate float64
	frequency  float64
	blockSize  int

	coeff float64
	sin   float64
	cos   float64

	s1, s2 float64
	count  int
}

// NewGoertzel creates a Goertzel filter tuned to frequency, processing
// blocks of blockSize samples at sampleRate.
func NewGoertzel(sampleRate, frequency float64, blockSize int) *Goertzel {
	g := &Goertzel{sampleRate: sampleRate, blockSize: blockSize}
	g.Retune(frequency)
	return g
}

// Retune recomputes the filter coefficients for a new target frequency
// in place, preserving s1/s2 accumulator state. AFC uses this to avoid
// reconstructing the filter on every correction, at the cost of a
// one-block transient in the running sum.
func (g *Goertzel) Retune(frequency float64) {
	g.frequency = frequency
	k := float64(g.blockSize) * frequency / g.sampleRate
	omega := twoPi * k / float64(g.blockSize)
	g.coeff = 2 * math.Cos(omega)
	g.sin = math.Sin(omega)
	g.cos = math.Cos(omega)
}

// Frequency returns the filter's current target frequency.
func (g *Goertzel) Frequency() float64 {
	return g.frequency
}

// BlockSize returns the configured block length.
func (g *Goertzel) BlockSize() int {
	return g.blockSize
}

// ProcessSample feeds one sample into the running recurrence.
func (g *Goertzel) ProcessSample(x float64) {
	s0 := x + g.coeff*g.s1 - g.s2
	g.s2 = g.s1
	g.s1 = s0
	g.count++
}

// Ready reports whether a full block has been accumulated.
func (g *Goertzel) Ready() bool {
	return g.count >= g.blockSize
}

// Power returns the block power accumulated so far and resets the
// recurrence state for the next block.
func (g *Goertzel) Power() float64 {
	power := g.s1*g.s1 + g.s2*g.s2 - g.coeff*g.s1*g.s2
	g.s1, g.s2, g.count = 0, 0, 0
	return power
}

// Reset clears accumulator state without changing tuning.
func (g *Goertzel) Reset() {
	g.s1, g.s2, g.count = 0, 0, 0
}

// FSKCorrelator pairs a mark and a space Goertzel filter and reports the
// normalized mark/space power correlation used to drive the RTTY bit
// decision, clamped to [-1, 1].
type FSKCorrelator struct {
	mark  *Goertzel
	space *Goertzel
}

// NewFSKCorrelator creates a mark/space Goertzel pair.
func NewFSKCorrelator(sampleRate, markFreq, spaceFreq float64, blockSize int) *FSKCorrelator {
	return &FSKCorrelator{
		mark:  NewGoertzel(sampleRate, markFreq, blockSize),
		space: NewGoertzel(sampleRate, spaceFreq, blockSize),
	}
}

// BlockSize returns the configured block length.
func (c *FSKCorrelator) BlockSize() int {
	return c.mark.BlockSize()
}

// ProcessSample feeds one sample into both filters.
func (c *FSKCorrelator) ProcessSample(x float64) {
	c.mark.ProcessSample(x)
	c.space.ProcessSample(x)
}

// Ready reports whether a full block has accumulated.
func (c *FSKCorrelator) Ready() bool {
	return c.mark.Ready()
}

// Correlation computes (P_mark - P_space) / (P_mark + P_space), clamped
// to [-1, 1], and resets both filters for the next block.
func (c *FSKCorrelator) Correlation() float64 {
	pMark := c.mark.Power()
	pSpace := c.space.Power()
	total := pMark + pSpace
	if total <= 0 {
		return 0
	}
	corr := (pMark - pSpace) / total
	if corr > 1 {
		return 1
	}
	if corr < -1 {
		return -1
	}
	return corr
}

// Retune reconfigures the mark/space target frequencies in place.
func (c *FSKCorrelator) Retune(markFreq, spaceFreq float64) {
	c.mark.Retune(markFreq)
	c.space.Retune(spaceFreq)
}

// Reset clears both filters' accumulator state.
func (c *FSKCorrelator) Reset() {
	c.mark.Reset()
	c.space.Reset()
}
