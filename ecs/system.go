package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are plain structs; fields of type Query[T] or Singleton[T] are bound to
// the storage when the system is registered, other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}

// storageBinder is implemented by Query and Singleton
type storageBinder interface {
	Init(storage *Storage)
}

// invalidator is implemented by Query
type invalidator interface {
	Invalidate()
}
