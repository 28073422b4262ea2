package domain_test

import (
	"testing"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_BaseImage(t *testing.T) {
	m := &domain.Manifest{Components: []domain.Component{{Name: "foo"}}}
	assert.Equal(t, domain.DefaultBaseImage, m.BaseImage())

	m.Components = append(m.Components, domain.Component{Name: "base", Base: "ubuntu:22.04"})
	assert.Equal(t, "ubuntu:22.04", m.BaseImage())
}

func TestManifest_Buildable(t *testing.T) {
	m := &domain.Manifest{Components: []domain.Component{
		{Name: "zeta"},
		{Name: "base", Base: "x"},
		{Name: "alpha"},
	}}

	names := make([]string, 0)
	for _, c := range m.Buildable() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha"}, names)
}

func TestManifest_Chain(t *testing.T) {
	tests := []struct {
		name        string
		manifest    domain.Manifest
		want        []string
		errContains string
	}{
		{
			name:     "no entry",
			manifest: domain.Manifest{Components: []domain.Component{{Name: "a"}}},
			want:     nil,
		},
		{
			name: "ends at output sentinel",
			manifest: domain.Manifest{
				Entry: "a",
				Components: []domain.Component{
					{Name: "a", ForwardTo: "b"},
					{Name: "b", ForwardTo: "output"},
					{Name: "c"},
				},
			},
			want: []string{"a", "b"},
		},
		{
			name: "dangling reference ends chain",
			manifest: domain.Manifest{
				Entry: "a",
				Components: []domain.Component{
					{Name: "a", ForwardTo: "missing"},
				},
			},
			want: []string{"a"},
		},
		{
			name: "entry not declared",
			manifest: domain.Manifest{
				Entry:      "ghost",
				Components: []domain.Component{{Name: "a"}},
			},
			want: nil,
		},
		{
			name: "self cycle",
			manifest: domain.Manifest{
				Entry:      "a",
				Components: []domain.Component{{Name: "a", ForwardTo: "a"}},
			},
			errContains: "cycle detected",
		},
		{
			name: "three node cycle",
			manifest: domain.Manifest{
				Entry: "a",
				Components: []domain.Component{
					{Name: "a", ForwardTo: "b"},
					{Name: "b", ForwardTo: "c"},
					{Name: "c", ForwardTo: "a"},
				},
			},
			errContains: "cycle detected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.manifest.Chain()
			if tt.errContains != "" {
				require.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
