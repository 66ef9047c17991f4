package game

// Action represents a discrete observer command from the input collaborator.
type Action int

const (
	ActionNone Action = iota
	ActionMoveNorth
	ActionMoveSouth
	ActionMoveWest
	ActionMoveEast
	ActionForward
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
	ActionRadiusUp
	ActionRadiusDown
	ActionFOVWiden
	ActionFOVNarrow
	ActionQuit
)

// String names actions for logging.
func (a Action) String() string {
	switch a {
	case ActionMoveNorth:
		return "move_north"
	case ActionMoveSouth:
		return "move_south"
	case ActionMoveWest:
		return "move_west"
	case ActionMoveEast:
		return "move_east"
	case ActionForward:
		return "forward"
	case ActionBackward:
		return "backward"
	case ActionTurnLeft:
		return "turn_left"
	case ActionTurnRight:
		return "turn_right"
	case ActionRadiusUp:
		return "radius_up"
	case ActionRadiusDown:
		return "radius_down"
	case ActionFOVWiden:
		return "fov_widen"
	case ActionFOVNarrow:
		return "fov_narrow"
	case ActionQuit:
		return "quit"
	}
	return "none"
}
