// Package gocvcapture provides a live camera [warpcam.Source] backed by
// [GoCV] (OpenCV). It lives in its own module so the core warpcam module
// builds without OpenCV installed.
//
// Usage:
//
//	cam, err := gocvcapture.Open(0, 640, 480)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer cam.Close()
//	app, err := warpcam.NewApp(warpcam.DefaultConfig(), cam)
//
// [GoCV]: https://gocv.io
package gocvcapture
