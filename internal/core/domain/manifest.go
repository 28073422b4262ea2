package domain

import "go.trai.ch/zerr"

const (
	// BaseComponentName is the reserved component key that designates the base image.
	BaseComponentName = "base"

	// ChainTerminal is the forward_to value that ends a component chain.
	ChainTerminal = "output"
)

// Component is a named entry of the manifest's components mapping.
type Component struct {
	Name      string
	Base      string
	ForwardTo string
}

// Manifest is the parsed Enginefile.
type Manifest struct {
	// Entry names the first component of the forward_to chain.
	Entry string
	// Components are kept in declaration order, which determines build step order.
	Components []Component
}

// Component returns the component with the given name.
func (m *Manifest) Component(name string) (Component, bool) {
	for _, c := range m.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// BaseImage returns the image designated by the base component, or DefaultBaseImage.
func (m *Manifest) BaseImage() string {
	if base, ok := m.Component(BaseComponentName); ok && base.Base != "" {
		return base.Base
	}
	return DefaultBaseImage
}

// Buildable returns the components other than base, in declaration order.
func (m *Manifest) Buildable() []Component {
	out := make([]Component, 0, len(m.Components))
	for _, c := range m.Components {
		if c.Name == BaseComponentName {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Chain walks the forward_to relation starting at Entry and returns the
// visited component names in execution order.
//
// The walk ends when a component forwards to ChainTerminal, to nothing, or
// to a name that is not declared. Revisiting a component is an error. An
// empty Entry yields an empty chain.
func (m *Manifest) Chain() ([]string, error) {
	if m.Entry == "" {
		return nil, nil
	}

	var chain []string
	visited := make(map[string]bool)
	name := m.Entry

	for {
		c, ok := m.Component(name)
		if !ok {
			return chain, nil
		}
		if visited[name] {
			return nil, zerr.With(zerr.With(ErrChainCycle, "component", name), "chain", append(chain, name))
		}
		visited[name] = true
		chain = append(chain, name)

		if c.ForwardTo == "" || c.ForwardTo == ChainTerminal {
			return chain, nil
		}
		name = c.ForwardTo
	}
}
