package descriptor

import (
	"github.com/TopPano/providence-engine/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	keyEntry      = "entry"
	keyMain       = "main"
	keyComponents = "components"
	keyBase       = "base"
	keyForwardTo  = "forward_to"
	keyMerge      = "<<"
)

// ParseManifest decodes an Enginefile. Components keep their declaration order.
func ParseManifest(data []byte) (*domain.Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.Tag(domain.ErrManifestParse, zerr.Wrap(err, "invalid yaml"))
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, domain.Tag(domain.ErrManifestParse, zerr.New("enginefile is empty"))
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, domain.Tag(domain.ErrManifestParse, zerr.New("enginefile must be a mapping"))
	}

	m := &domain.Manifest{}
	var components *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], resolve(root.Content[i+1])
		switch key.Value {
		case keyEntry:
			m.Entry = value.Value
		case keyMain:
			if m.Entry == "" {
				m.Entry = value.Value
			}
		case keyComponents:
			components = value
		}
	}

	if components == nil || components.Kind != yaml.MappingNode {
		return nil, domain.Tag(domain.ErrManifestParse, zerr.New("components must be a mapping"))
	}

	for i := 0; i+1 < len(components.Content); i += 2 {
		c, err := parseComponent(components.Content[i], components.Content[i+1])
		if err != nil {
			return nil, domain.Tag(domain.ErrManifestParse, err)
		}
		m.Components = append(m.Components, c)
	}

	if _, err := m.Chain(); err != nil {
		return nil, domain.Tag(domain.ErrManifestParse, err)
	}
	return m, nil
}

func parseComponent(key, value *yaml.Node) (domain.Component, error) {
	if key.Kind != yaml.ScalarNode || key.Value == "" {
		return domain.Component{}, zerr.With(zerr.New("component name must be a string"), "line", key.Line)
	}
	c := domain.Component{Name: key.Value}

	value = resolve(value)
	switch value.Kind {
	case yaml.ScalarNode:
		// The base entry may name the image directly.
		if c.Name == domain.BaseComponentName {
			c.Base = value.Value
		}
	case yaml.MappingNode:
		if err := applyFields(&c, value); err != nil {
			return c, err
		}
	case yaml.SequenceNode:
		return c, zerr.With(zerr.New("component must be a mapping"), "component", c.Name)
	}
	return c, nil
}

// applyFields copies the known fields of mapping into c. Merge keys are
// applied first so that explicit fields override them.
func applyFields(c *domain.Component, mapping *yaml.Node) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != keyMerge {
			continue
		}
		if err := applyMerge(c, resolve(mapping.Content[i+1])); err != nil {
			return err
		}
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		field, v := mapping.Content[i], resolve(mapping.Content[i+1])
		switch field.Value {
		case keyBase:
			if v.Kind != yaml.ScalarNode {
				return zerr.With(zerr.New("base must be a string"), "component", c.Name)
			}
			c.Base = v.Value
		case keyForwardTo:
			if v.Kind != yaml.ScalarNode {
				return zerr.With(zerr.New("forward_to must be a string"), "component", c.Name)
			}
			c.ForwardTo = v.Value
		}
	}
	return nil
}

func applyMerge(c *domain.Component, src *yaml.Node) error {
	switch src.Kind {
	case yaml.MappingNode:
		return applyFields(c, src)
	case yaml.SequenceNode:
		for _, n := range src.Content {
			if err := applyMerge(c, resolve(n)); err != nil {
				return err
			}
		}
		return nil
	default:
		return zerr.With(zerr.New("merge value must be a mapping"), "component", c.Name)
	}
}

// resolve follows alias nodes to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
