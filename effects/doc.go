// Package effects holds the page's decorative layers. Each type implements
// [folio.Effect] and reports the layer it expects through a Layer method, so
// a page mounts one with
//
//	bg := effects.NewElectricBackground(seed)
//	comp.Add(bg.Layer(), bg)
//
// All randomness comes from a seeded generator; two effects built with the
// same seed behave identically, which the headless simulator relies on.
package effects
