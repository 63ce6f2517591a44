package core

// Direction is a keyboard lane intent, abstracted from physical keys.
type Direction int

const (
	DirectionNone   Direction = iota
	DirectionLeft             // Left arrow, h, a - move one lane left
	DirectionRight            // Right arrow, l, d - move one lane right
	DirectionCenter           // Up/Down arrow, space - jump to the centre lane
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "None"
	case DirectionLeft:
		return "Left"
	case DirectionRight:
		return "Right"
	case DirectionCenter:
		return "Center"
	default:
		return "Unknown"
	}
}

// ParseDirection maps a direction name back to its value.
// Unknown names map to DirectionNone.
func ParseDirection(s string) Direction {
	switch s {
	case "Left":
		return DirectionLeft
	case "Right":
		return DirectionRight
	case "Center":
		return DirectionCenter
	default:
		return DirectionNone
	}
}
