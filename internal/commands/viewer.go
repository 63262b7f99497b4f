package commands

import (
	"flag"
	"fmt"
)

// Target is what the console commands drive.
type Target interface {
	ResetToOverview()
	Select(rackID string, shelf int) error
	Reload() error
	SetShowFPS(bool)
	SetShowMemAlloc(bool)
	SetShowStatus(bool)
}

// RegisterViewer adds the viewer console commands. Flags fall back to their defaults on
// every call:
//
//	overview
//	select -rack R02 -shelf 2
//	reload
//	fps -on=false
//	mem -on
//	status -on
func RegisterViewer(r *Registry, t Target) {
	r.Register("overview", "return to the overview", flag.NewFlagSet("overview", flag.ContinueOnError), func() error {
		t.ResetToOverview()
		return nil
	})

	sel := flag.NewFlagSet("select", flag.ContinueOnError)
	rack := sel.String("rack", "", "rack id")
	shelf := sel.Int("shelf", 1, "shelf (1 is the bottom shelf)")
	r.Register("select", "-rack ID -shelf N: focus a shelf", sel, func() error {
		defer func() { *rack, *shelf = "", 1 }()
		if *rack == "" {
			return fmt.Errorf("select: -rack is required")
		}
		return t.Select(*rack, *shelf)
	})

	r.Register("reload", "reload facility and inventory", flag.NewFlagSet("reload", flag.ContinueOnError), t.Reload)

	toggle := func(name, usage string, set func(bool)) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		on := fs.Bool("on", true, "show the overlay")
		r.Register(name, usage, fs, func() error {
			set(*on)
			*on = true
			return nil
		})
	}
	toggle("fps", "[-on=false]: FPS counter", t.SetShowFPS)
	toggle("mem", "[-on=false]: heap usage", t.SetShowMemAlloc)
	toggle("status", "[-on=false]: navigation status", t.SetShowStatus)
}
