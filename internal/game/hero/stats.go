package hero

import "math"

// Stats is a hero or item stat block.
type Stats struct {
	HP      int     `yaml:"hp" json:"hp"`
	Attack  int     `yaml:"attack" json:"attack"`
	Defense int     `yaml:"defense" json:"defense"`
	Speed   int     `yaml:"speed" json:"speed"`
	Crit    float64 `yaml:"crit" json:"crit"`
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		HP:      s.HP + o.HP,
		Attack:  s.Attack + o.Attack,
		Defense: s.Defense + o.Defense,
		Speed:   s.Speed + o.Speed,
		Crit:    s.Crit + o.Crit,
	}
}

// IsZero reports whether every field is zero.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// statEpsilon absorbs binary float noise so that, for example, 100 * 1.05
// never ceils to 106.
const statEpsilon = 1e-9

// ceilStat returns ceil(v) ignoring float noise below statEpsilon.
func ceilStat(v float64) int {
	return int(math.Ceil(v - statEpsilon))
}
