// Package physics provides the coupled oscillator chain model.
//
// [Chain] implements the [osc.System] interface: n point masses whose
// accelerations are coupled through a symmetric positive-semi-definite
// stiffness matrix,
//
//	a_i = -(K[i] · x) / m_i
//
// Construction validates masses and dimensions and conditions the raw
// matrix through the stiffness package, so a built Chain is always
// mechanically stable.
//
// Chain also implements [osc.Hamiltonian]; the undamped system conserves
// total energy, which makes the reported drift a direct measure of
// integration error.
package physics
