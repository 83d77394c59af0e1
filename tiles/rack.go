package tiles

// RackSize is how many tiles a hand holds when full.
const RackSize = 7

// Rack is a hand of up to RackSize tiles.
type Rack struct {
	Container
}

// NewRack returns an empty rack.
func NewRack() *Rack {
	return &Rack{Container: *NewContainer(RackSize)}
}

// IndexOfLetter returns the position of the first tile with the given
// letter, or false if the rack has none.
func (r *Rack) IndexOfLetter(l Letter) (int, bool) {
	for i, t := range r.tiles {
		if t.Letter == l {
			return i, true
		}
	}
	return 0, false
}

// HasLetter reports whether any tile on the rack carries the letter.
func (r *Rack) HasLetter(l Letter) bool {
	_, ok := r.IndexOfLetter(l)
	return ok
}

// Missing returns how many more tiles the rack needs to be full.
func (r *Rack) Missing() int {
	return RackSize - r.Len()
}
