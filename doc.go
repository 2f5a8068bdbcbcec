// Package folio is the engine behind a scroll-driven portfolio page rendered
// with [Ebitengine].
//
// A page is a stack of visual components, each animated from its own frame
// loop, reacting to a shared scroll offset and pointer, and releasing every
// resource it allocated when it is unmounted.
//
// # Quick start
//
//	win := folio.NewWindow(1280, 800)
//	root := folio.NewSession(win, "page")
//	_ = root.Mount(nil)
//	comp := folio.NewCompositor(root)
//	comp.Add(folio.LayerConfig{Name: "stars", Depth: folio.DepthBackground}, stars)
//
//	// headless: drive the window yourself
//	win.ScrollTo(400)
//	win.Advance(time.Second / 60)
//
// [Run] hosts the same window in a real Ebitengine window, translating mouse,
// wheel, and keyboard input into window events. [Screenshots] saves PNG
// captures of the hosted screen on request.
//
// # Window
//
// [Window] is a single-threaded host. It owns the viewport, the document
// scroll offset, the pointer, and three callback sources: one-shot frame
// requests, timeouts, and event listeners. [Window.Advance] fires due
// timeouts and then runs the frame callbacks queued before the call.
//
// # Sessions
//
// Every component runs inside a [Session]. The session owns the component's
// [FrameScheduler], timeouts, listeners, child sessions, and resources, and
// [Session.Dispose] tears them down in a fixed order, scheduler first, so no
// frame callback ever observes a released resource. Dispose is idempotent.
//
// # Scroll bindings
//
// A [ScrollBinding] maps the scroll offset to progress in [0, 1] for one
// trigger region, using anchors such as "top 80%". Progress can follow raw
// progress with a fixed per-frame factor or a scrub duration, and pinned
// regions report the spacing they add to the document.
//
// # Motion
//
// [Drift], [Oscillator], [Spawner], [Spring], [Curve], and [PathTrack] are
// the procedural generators components are built from. [ParticleField]
// holds a fixed point cloud mutated in place; [TransientPool] bounds
// short-lived effects by count and lifetime.
//
// # Compositing
//
// A [Compositor] stacks layers at fixed depths (background, weather,
// interactive, content, overlay) and routes pointer input front to back.
// Decorative layers never see pointer input; observers see all of it;
// targets are hit-tested and may consume.
//
// # Scene graph
//
// [Node] is a small retained tree (containers, sprites, rects, polylines,
// circles, text) with a transform hierarchy and [TweenGroup] animation.
//
// [Ebitengine]: https://ebitengine.org
package folio
