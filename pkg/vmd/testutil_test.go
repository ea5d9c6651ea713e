package vmd

// sampleObject returns a minimal valid decoded recording.
func sampleObject() map[string]any {
	interp := make([]any, InterpolationSize)
	for i := range interp {
		interp[i] = 20
	}
	camInterp := make([]any, CameraInterpolationSize)
	for i := range camInterp {
		camInterp[i] = 0
	}
	return map[string]any{
		"metadata": map[string]any{
			"magic":            Magic,
			"name":             "dance",
			"coordinateSystem": "right",
			"motionCount":      2,
			"morphCount":       1,
			"cameraCount":      1,
		},
		"motions": []any{
			map[string]any{
				"boneName":      "左腕",
				"frameNum":      10,
				"position":      []any{0, 0, 0},
				"rotation":      []any{0.0, 0.0, 0.0, 1.0},
				"interpolation": interp,
			},
			map[string]any{
				"boneName":      "センター",
				"frameNum":      0,
				"position":      []any{1.5, 2, -3},
				"rotation":      []any{0, 0, 0, 1},
				"interpolation": interp,
			},
		},
		"morphs": []any{
			map[string]any{"morphName": "まばたき", "frameNum": 5, "weight": 50},
		},
		"cameras": []any{
			map[string]any{
				"frameNum":      0,
				"distance":      -45.0,
				"position":      []any{0, 10, 0},
				"rotation":      []any{0, 0, 0},
				"interpolation": camInterp,
				"fov":           30,
				"perspective":   0,
			},
		},
	}
}
