// Package mesh exports the constraint mesh of a cloth as a Graphviz graph.
//
// Every particle that still has a live constraint or a pin becomes a node
// fixed at its simulated position; every live constraint becomes an
// undirected edge. Positions are flipped vertically because Graphviz puts
// the origin at the bottom left.
//
//	dot := mesh.ToDOT(render.Snapshot(c))
//	svg, err := mesh.RenderSVG(dot)
//
// The DOT text is useful on its own for feeding other graph tools.
package mesh
