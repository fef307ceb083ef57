// Package particle implements the trail particle lifecycle and the system
// that spawns, advances and reaps particles once per frame.
//
// A [Particle] owns its position, its [trail.Buffer] history and the shading
// scalars fixed at spawn (colour seed and spawn time). A [System] owns the
// live collection; it is the only place particles are created or destroyed.
//
// # Frame Order
//
// Each call to [System.Tick] runs three phases strictly in sequence:
//
//  1. spawn: with probability SpawnProbability, add floor(u*CountScale) particles
//  2. tick: advance every live particle, including ones spawned this frame
//  3. reap: remove every particle whose age reached its max age
//
// # Thread Safety
//
// System is NOT safe for concurrent use. It is driven from a single frame
// callback.
package particle
