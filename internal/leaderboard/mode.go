package leaderboard

// Mode is what the view should render for a given state.
type Mode int

const (
	// ModeLoading is the full-screen spinner shown before the first load settles.
	ModeLoading Mode = iota
	// ModeFatal is the full-screen error with a retry affordance, shown when
	// the first load failed.
	ModeFatal
	// ModeInlineError is the normal layout with an error banner.
	ModeInlineError
	// ModeEmpty is the normal layout with a "no data, trigger a sync" hint.
	ModeEmpty
	// ModeData is the normal layout with rows.
	ModeData
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeFatal:
		return "fatal"
	case ModeInlineError:
		return "inline-error"
	case ModeEmpty:
		return "empty"
	case ModeData:
		return "data"
	default:
		return "unknown"
	}
}

// FullScreen reports whether m replaces the whole layout.
func (m Mode) FullScreen() bool {
	return m == ModeLoading || m == ModeFatal
}

// ModeOf decides the render mode. Full-screen modes only happen before the
// first load settles; afterwards every outcome shares the normal layout.
func ModeOf(s State) Mode {
	switch {
	case !s.IsLoaded && s.IsLoading:
		return ModeLoading
	case !s.IsLoaded && s.Err != "":
		return ModeFatal
	case !s.IsLoaded:
		return ModeLoading
	case s.Err != "":
		return ModeInlineError
	case len(s.Entries) == 0:
		return ModeEmpty
	default:
		return ModeData
	}
}
