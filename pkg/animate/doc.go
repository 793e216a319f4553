// Package animate drives periodic tile regeneration.
//
// An [Animator] is a two-state machine, [Running] or [Paused]. It runs only
// while four gates are all favourable: animation is enabled, the display is
// visible, nothing is hovered, and no tile is expanded. Any unfavourable gate
// pauses it; clearing the last one resumes it.
//
// At most one timer is live at any moment. Every transition stops the
// current timer and arms a new one under the same lock, and each timer
// carries a generation number so a firing that raced a transition is
// dropped instead of ticking twice.
//
//	a := animate.New(func() { events <- tickMsg{} }, animate.Options{})
//	a.SetEnabled(true)      // Running
//	a.SetHovering(true)     // Paused
//	a.SetHovering(false)    // Running again
//	defer a.Close()
package animate
