// Package scene is the boundary between the simulation and whatever draws it.
//
// The simulation only ever talks to a [Port]: it asks for a line with a fixed
// number of vertices, updates that line's vertex positions and shading
// uniforms in place, and asks the port to render a frame from a [Camera].
// Renderers embed [Store] to get line bookkeeping for free and only implement
// Render.
package scene
