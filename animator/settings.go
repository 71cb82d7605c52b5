package animator

import "sync"

// DefaultFPSTarget is the tick rate animators aim for unless configured
// otherwise.
const DefaultFPSTarget = 60

// Settings holds the tick rate and frame skip flag shared by a group of
// animators. Animators read them when they start playing, so changes apply to
// animations started or resumed afterwards.
type Settings struct {
	mu        sync.RWMutex
	fpsTarget int
	frameSkip bool
}

// NewSettings creates Settings targeting DefaultFPSTarget with frame skip
// enabled.
func NewSettings() *Settings {
	s := new(Settings)
	s.fpsTarget = DefaultFPSTarget
	s.frameSkip = true
	return s
}

// FPSTarget returns the target number of ticks per second.
func (s *Settings) FPSTarget() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fpsTarget
}

// SetFPSTarget sets the target number of ticks per second. Values below 1 are
// ignored.
func (s *Settings) SetFPSTarget(fps int) {
	if fps < 1 {
		return
	}
	s.mu.Lock()
	s.fpsTarget = fps
	s.mu.Unlock()
}

// FrameSkip reports whether ticks scale their progress by the time actually
// elapsed since the previous tick.
func (s *Settings) FrameSkip() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frameSkip
}

// SetFrameSkip enables or disables frame skip.
func (s *Settings) SetFrameSkip(enabled bool) {
	s.mu.Lock()
	s.frameSkip = enabled
	s.mu.Unlock()
}

var globalSettings = NewSettings()

// GlobalSettings returns the process-wide Settings used by animators that were
// not given their own.
func GlobalSettings() *Settings {
	return globalSettings
}

// SetGlobalFPSTarget sets the process-wide tick rate.
func SetGlobalFPSTarget(fps int) {
	globalSettings.SetFPSTarget(fps)
}

// GlobalFPSTarget returns the process-wide tick rate.
func GlobalFPSTarget() int {
	return globalSettings.FPSTarget()
}

// SetFrameSkip enables or disables process-wide frame skip.
func SetFrameSkip(enabled bool) {
	globalSettings.SetFrameSkip(enabled)
}

// FrameSkipEnabled reports the process-wide frame skip flag.
func FrameSkipEnabled() bool {
	return globalSettings.FrameSkip()
}
