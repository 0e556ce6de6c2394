package middleware

// Chain composes handler wrappers into one. The first wrapper ends up
// outermost, so Chain(telemetry, monitor)(handler) counts an event
// before the monitor logs it. Router handler fields are assigned the
// result directly.
func Chain[T any](wrappers ...func(T) T) func(T) T {
	return func(handler T) T {
		for i := len(wrappers) - 1; i >= 0; i-- {
			handler = wrappers[i](handler)
		}
		return handler
	}
}
