package warpcam

var presetKeys = [len(ResolutionPresets)]ControlKeys{KeyPreset1, KeyPreset2, KeyPreset3, KeyPreset4}

// applyControls handles this frame's control key edges and reports whether
// exit was requested. Any change restarts the frame statistics and shows the
// status overlay.
func (a *App) applyControls(keys ControlKeys) (exit bool) {
	if keys == 0 {
		return false
	}
	if keys.Has(KeyExit) {
		Logger().Info("exit requested")
		return true
	}

	changed := false
	if keys.Has(KeyFilterNext) {
		a.filter = a.filter.Next()
		changed = true
	}
	if keys.Has(KeyFilterPrev) {
		a.filter = a.filter.Prev()
		changed = true
	}
	if keys.Has(KeyModeGPU) && a.mode != ModeGPU {
		a.mode = ModeGPU
		changed = true
	}
	if keys.Has(KeyModeCPU) && a.mode != ModeCPU {
		a.mode = ModeCPU
		changed = true
	}
	for i, k := range presetKeys {
		if keys.Has(k) {
			a.SetResolution(i)
			changed = true
		}
	}
	if keys.Has(KeyScreenshot) {
		a.Screenshot("capture")
	}
	if keys.Has(KeyHUD) {
		a.hud.enabled = !a.hud.enabled
	}

	if changed {
		a.stats.Reset(a.mode, a.filter)
		a.hud.show(a.status())
		Logger().Info("controls changed", "mode", a.mode, "filter", a.filter, "resolution", ResolutionPresets[a.preset])
	}
	return false
}

// SetMode switches the render path from the next frame on.
func (a *App) SetMode(m RenderMode) {
	if m != a.mode {
		a.mode = m
		a.stats.Reset(a.mode, a.filter)
		a.hud.show(a.status())
	}
}

// SetFilter selects the filter from the next frame on.
func (a *App) SetFilter(k FilterKind) {
	if k.Valid() && k != a.filter {
		a.filter = k
		a.stats.Reset(a.mode, a.filter)
		a.hud.show(a.status())
	}
}
