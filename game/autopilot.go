package game

import "math"

// Autopilot picks controls for the current frame: it dodges the closest bomb
// falling toward the player and otherwise chases the lowest star. shoot is
// set when a bomb is straight above.
func Autopilot(w *World) (in Input, shoot bool) {
	player := w.Player()
	if !w.Session().Running() {
		return Input{}, false
	}
	reach := player.Size * w.Tuning().HitRadiusFactor

	threat := math.Inf(1)
	var threatX float64
	for bomb := range w.Bombs() {
		dy := player.Pos[1] - bomb.Pos[1]
		dx := bomb.Pos[0] - player.Pos[0]
		if dy < 0 || dy > 4*reach || math.Abs(dx) > reach+bomb.Radius+10 {
			continue
		}
		if math.Abs(dx) < bomb.Radius {
			shoot = true
		}
		if dy < threat {
			threat = dy
			threatX = dx
		}
	}

	if !math.IsInf(threat, 1) {
		if threatX > 0 {
			in.Left = true
		} else {
			in.Right = true
		}
		in.Boost = threat < 2*reach
		return in, shoot
	}

	best := math.Inf(-1)
	var targetX float64
	for star := range w.Stars() {
		if star.Pos[1] > player.Pos[1] {
			continue
		}
		if star.Pos[1] > best {
			best = star.Pos[1]
			targetX = star.Pos[0]
		}
	}
	if math.IsInf(best, -1) {
		targetX = w.Arena().W / 2
	}

	switch dx := targetX - player.Pos[0]; {
	case dx < -player.Speed:
		in.Left = true
	case dx > player.Speed:
		in.Right = true
	}
	return in, shoot
}
