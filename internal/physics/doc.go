// Package physics provides the chaotic vector fields particles are advected by.
//
// Each field implements [dynamo.Field] and [dynamo.Configurable]:
//
//   - [Lorenz]: butterfly attractor (sigma=10, rho=28, beta=8/3)
//   - [Rossler]: single-scroll attractor (a=0.2, b=0.2, c=5.7)
//
// Fields are looked up by name with [New], which is how configuration
// selects one:
//
//	f, err := physics.New("lorenz", map[string]float64{"rho": 24})
package physics
