// pkg/flight/controller.go
package flight

// Controller is a per-tick flight control law. Exactly one controller
// may be attached to a given body at a time; attaching two at once is a
// caller bug, not a runtime-checked condition.
type Controller interface {
	Update(in ControlInput, dt float64)
}
