// Package warpcam is an interactive live-video warp viewer for [Ebitengine].
//
// Each frame warpcam reads an image from a [Source], turns mouse and keyboard
// input into a 2D affine [Transform] (pan, rotate and zoom about a moving
// pivot), and renders the frame through one of two equivalent paths:
//
//   - the CPU filter path filters pixels with [ApplyFilter], inverse-warps them
//     with [Warp] and uploads the result as a texture;
//   - the GPU shader path uploads the raw frame and hands the transform to a
//     Kage shader as a 4x4 model matrix together with the filter selection.
//
// Both paths produce the same picture for the same transform and filter, so
// the cost of each can be compared directly.
//
// # Quick start
//
//	src, err := warpcam.LoadStillSource("frame.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//	app, err := warpcam.NewApp(warpcam.DefaultConfig(), src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := warpcam.Run(app, app.RunConfig()); err != nil {
//		log.Fatal(err)
//	}
//
// # Controls
//
// Left drag pans, right drag rotates by the drag distance, the scroll wheel
// zooms, Space resets. Left/Right cycle filters, Up/Down switch between the
// CPU and GPU paths, 1-4 pick the output resolution, P saves a screenshot, H toggles the status overlay and
// Escape or Q quits.
//
// # Transforms
//
// [ComposeTransform] builds the per-frame transform from an
// [InteractionState]:
//
//	ScaleAbout(s, pivot) * RotationAbout(θ, pivot) * Translation(tx, ty)
//
// where pivot is the frame centre offset by the accumulated translation.
// Elementary transforms close to the identity are skipped.
//
// [Ebitengine]: https://ebitengine.org
package warpcam
