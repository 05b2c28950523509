package ecs

// UpdateFrame is handed to every system during a scheduler tick
type UpdateFrame struct {
	// DeltaTime is the elapsed time since the previous tick, in seconds
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  commands,
		Storage:   storage,
	}
}
