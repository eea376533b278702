package lorenz

import "fmt"

// Key holds the pin patterns of the wheels.  An empty pattern leaves that
// wheel's pins alone.
type Key struct {
	Chi   []string
	Psi   []string
	Motor []string
}

// SetKey sets the pin patterns of every wheel named in k.
func (m *Machine) SetKey(k Key) error {
	groups := []struct {
		name     string
		wheels   []*Wheel
		patterns []string
	}{
		{"chi", m.chi[:], k.Chi},
		{"psi", m.psi[:], k.Psi},
		{"motor", m.motor[:], k.Motor},
	}

	for _, g := range groups {
		if len(g.patterns) > len(g.wheels) {
			return fmt.Errorf("%w: %d %s patterns for %d wheels", ErrBadPins, len(g.patterns), g.name, len(g.wheels))
		}
		for i, p := range g.patterns {
			if p == "" {
				continue
			}
			if err := g.wheels[i].SetPins(p); err != nil {
				return err
			}
		}
	}

	return nil
}

// Key returns the current pin patterns of every wheel.
func (m *Machine) Key() Key {
	var k Key
	for _, w := range m.chi {
		k.Chi = append(k.Chi, w.Pins())
	}
	for _, w := range m.psi {
		k.Psi = append(k.Psi, w.Pins())
	}
	for _, w := range m.motor {
		k.Motor = append(k.Motor, w.Pins())
	}
	return k
}
