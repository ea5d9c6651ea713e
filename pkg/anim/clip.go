package anim

// UnspecifiedDuration marks a clip whose length is left to the playback
// runtime to infer from its tracks.
const UnspecifiedDuration = -1

// Clip is a named set of tracks.
type Clip struct {
	Name     string
	Duration float64
	Tracks   []Track
}

// NewClip creates a clip with an unspecified duration.
func NewClip(name string, tracks []Track) *Clip {
	return &Clip{Name: name, Duration: UnspecifiedDuration, Tracks: tracks}
}

// ComputeDuration returns the latest key time across all tracks.
func (c *Clip) ComputeDuration() float64 {
	var d float64
	for i := range c.Tracks {
		if td := c.Tracks[i].Duration(); td > d {
			d = td
		}
	}
	return d
}

// Track returns the track with the given target.
func (c *Clip) Track(target string) (*Track, bool) {
	for i := range c.Tracks {
		if c.Tracks[i].Target == target {
			return &c.Tracks[i], true
		}
	}
	return nil, false
}

// Validate checks every track's invariants.
func (c *Clip) Validate() error {
	for i := range c.Tracks {
		if err := c.Tracks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
