package fold

// Player is the collaborator the engine consults before committing a fold
// and relocates when the player's cell shifts. The engine only reads and
// writes the coordinate; movement, sprites and input belong elsewhere.
type Player interface {
	Coordinate() Coord
	SetCoordinate(Coord)
}

// SimplePlayer is a minimal Player holding just a coordinate.
type SimplePlayer struct {
	pos Coord
}

// NewPlayer creates a player at the given coordinate.
func NewPlayer(pos Coord) *SimplePlayer {
	return &SimplePlayer{pos: pos}
}

// Coordinate returns the player's current grid coordinate.
func (p *SimplePlayer) Coordinate() Coord {
	return p.pos
}

// SetCoordinate moves the player to the given grid coordinate.
func (p *SimplePlayer) SetCoordinate(c Coord) {
	p.pos = c
}
