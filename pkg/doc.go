// Package pkg holds the libraries behind clothsim.
//
// The cloth itself lives in [cloth], built on the 2D vectors in [vec]. Around
// it sit the settings file format ([config]), scripted pointer input
// ([script]), the headless runner ([sim]) and exporters ([render]).
//
//	c, err := cloth.New(cloth.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	var in cloth.Input
//	for range 120 {
//	    in = in.Advance(pointer)
//	    c.Step(c.Config().Frame(in))
//	}
//	svg := sink.RenderSVG(render.Snapshot(c))
//
// [cloth]: github.com/matzehuels/clothsim/pkg/cloth
// [vec]: github.com/matzehuels/clothsim/pkg/vec
// [config]: github.com/matzehuels/clothsim/pkg/config
// [script]: github.com/matzehuels/clothsim/pkg/script
// [sim]: github.com/matzehuels/clothsim/pkg/sim
// [render]: github.com/matzehuels/clothsim/pkg/render
package pkg
