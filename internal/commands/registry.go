package commands

// Registry is the minimal registration contract expected when wiring command
// handlers into a host dispatcher.
type Registry interface {
	RegisterCommand(handler any) error
}

// RegisterAll hands every handler to reg in order. A nil registry is a no-op.
func RegisterAll(reg Registry, handlers ...any) error {
	if reg == nil {
		return nil
	}
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if err := reg.RegisterCommand(handler); err != nil {
			return err
		}
	}
	return nil
}
