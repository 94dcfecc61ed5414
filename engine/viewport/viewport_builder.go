package viewport

// ManagerBuilderOption is a functional option for configuring a Manager.
type ManagerBuilderOption func(m *manager)

// WithImmediate applies size changes on the notifying goroutine instead of waiting for the next Apply.
// Use it when no frame loop calls Apply, and only when the projection and target tolerate
// being resized from the window thread.
//
// Parameters:
//   - immediate: true to apply on notification
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithImmediate(immediate bool) ManagerBuilderOption {
	return func(m *manager) {
		m.immediate = immediate
	}
}
