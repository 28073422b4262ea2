package descriptor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TopPano/providence-engine/internal/adapters/descriptor"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func componentStep(name string) string {
	return "RUN mkdir /engine/components/" + name + "/build\n" +
		"RUN cd /engine/components/" + name + "/build && \\\n" +
		"    cmake ../src && \\\n" +
		"    make\n\n"
}

func stage(t *testing.T, enginefile string, buildable ...string) string {
	t.Helper()
	dir := t.TempDir()
	if enginefile != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "Enginefile"), []byte(enginefile), 0o600))
	}
	for _, name := range buildable {
		src := filepath.Join(dir, "components", name, "src")
		require.NoError(t, os.MkdirAll(src, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(src, "CMakeLists.txt"), []byte("project("+name+")\n"), 0o600))
	}
	return dir
}

func TestGenerate_DefaultBase(t *testing.T) {
	dir := stage(t, "components:\n  viewer:\n    forward_to: output\n", "viewer")

	text, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.NoError(t, err)

	want := "FROM provbase\n\nRUN mkdir /engine\nADD . engine\nWORKDIR /engine\n\n" + componentStep("viewer")
	assert.Equal(t, want, text)

	written, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	require.NoError(t, err)
	assert.Equal(t, want, string(written))
}

func TestGenerate_DeclarationOrderAndSkips(t *testing.T) {
	dir := stage(t, `
entry: zeta
components:
  base: custom/base:1.0
  zeta:
    forward_to: alpha
  docs: {}
  alpha:
    forward_to: output
`, "zeta", "alpha")

	text, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.NoError(t, err)

	want := "FROM custom/base:1.0\n\nRUN mkdir /engine\nADD . engine\nWORKDIR /engine\n\n" +
		componentStep("zeta") + componentStep("alpha")
	assert.Equal(t, want, text)
}

func TestGenerate_BaseMapping(t *testing.T) {
	dir := stage(t, "components:\n  base:\n    base: registry.local/base\n")

	text, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, "FROM registry.local/base\n\nRUN mkdir /engine\nADD . engine\nWORKDIR /engine\n\n", text)
}

func TestGenerate_Deterministic(t *testing.T) {
	dir := stage(t, "components:\n  b: {}\n  a: {}\n  c: {}\n", "a", "b", "c")
	gen := descriptor.NewGenerator()

	first, err := gen.Generate(dir, domain.BuildOptions{})
	require.NoError(t, err)
	second, err := gen.Generate(dir, domain.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_CustomEnginefileName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.yml"), []byte("components: {}\n"), 0o600))

	_, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{EnginefileName: "engine.yml"})
	require.NoError(t, err)

	_, err = descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		enginefile string
		opts       domain.BuildOptions
		want       error
	}{
		{name: "missing manifest", want: domain.ErrManifestNotFound},
		{name: "invalid yaml", enginefile: "components: [unterminated", want: domain.ErrManifestParse},
		{name: "missing custom manifest", enginefile: "", opts: domain.BuildOptions{EnginefileName: "Empty"}, want: domain.ErrManifestNotFound},
		{name: "not a mapping", enginefile: "- a\n- b\n", want: domain.ErrManifestParse},
		{name: "missing components", enginefile: "entry: viewer\n", want: domain.ErrManifestParse},
		{name: "components sequence", enginefile: "components:\n  - viewer\n", want: domain.ErrManifestParse},
		{name: "forward_to cycle", enginefile: "entry: a\ncomponents:\n  a:\n    forward_to: b\n  b:\n    forward_to: a\n", want: domain.ErrManifestParse},
		{name: "escaping enginefile name", opts: domain.BuildOptions{EnginefileName: "../Enginefile"}, want: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := stage(t, tt.enginefile)

			_, err := descriptor.NewGenerator().Generate(dir, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.NoFileExists(t, filepath.Join(dir, "Dockerfile"))
		})
	}
}

func TestGenerate_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Enginefile"), nil, 0o600))

	_, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestParse)
	assert.Equal(t, "ManifestParseError", domain.KindOf(err))
}

func TestGenerate_CycleMentionsChain(t *testing.T) {
	dir := stage(t, "main: a\ncomponents:\n  a:\n    forward_to: a\n")

	_, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "cycle detected")
}

func TestGenerate_StatFailureIsFilesystem(t *testing.T) {
	dir := stage(t, "components:\n  viewer: {}\n")
	// A regular file where the component directory should be makes Lstat fail with ENOTDIR.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "components"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components", "viewer"), []byte("x"), 0o600))

	_, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFilesystem)
}

func TestGenerate_WriteFailure(t *testing.T) {
	dir := stage(t, "components: {}\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Dockerfile"), 0o750))

	_, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFilesystem)
}

func TestGenerate_DescriptorLinkOutsideDir(t *testing.T) {
	outside := filepath.Join(t.TempDir(), "Dockerfile")
	dir := stage(t, "components: {}\n")
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "Dockerfile")))

	_, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFilesystem)
	assert.NoFileExists(t, outside)
}

func TestGenerate_EnginefileLinkOutsideDir(t *testing.T) {
	outside := filepath.Join(t.TempDir(), "Enginefile")
	require.NoError(t, os.WriteFile(outside, []byte("components: {}\n"), 0o600))
	dir := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "Enginefile")))

	_, err := descriptor.NewGenerator().Generate(dir, domain.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFilesystem)
	assert.NoFileExists(t, filepath.Join(dir, "Dockerfile"))
}

func TestParseManifest(t *testing.T) {
	m, err := descriptor.ParseManifest([]byte(`
main: viewer
components:
  base: {base: "provbase:2"}
  viewer:
    forward_to: encoder
    script: opaque
  encoder:
    forward_to: output
`))
	require.NoError(t, err)

	assert.Equal(t, "viewer", m.Entry)
	assert.Equal(t, "provbase:2", m.BaseImage())
	require.Len(t, m.Components, 3)
	assert.Equal(t, domain.Component{Name: "viewer", ForwardTo: "encoder"}, m.Components[1])

	chain, err := m.Chain()
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer", "encoder"}, chain)
}

func TestParseManifest_Anchors(t *testing.T) {
	m, err := descriptor.ParseManifest([]byte(`
main: viewer
components:
  base: {base: &image "provbase:3"}
  viewer: &forwarding
    forward_to: encoder
  encoder:
    <<: *forwarding
    forward_to: output
  preview: *forwarding
  mirror:
    base: *image
`))
	require.NoError(t, err)

	assert.Equal(t, "provbase:3", m.BaseImage())
	assert.Equal(t, []domain.Component{
		{Name: "base", Base: "provbase:3"},
		{Name: "viewer", ForwardTo: "encoder"},
		{Name: "encoder", ForwardTo: "output"},
		{Name: "preview", ForwardTo: "encoder"},
		{Name: "mirror", Base: "provbase:3"},
	}, m.Components)

	chain, err := m.Chain()
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer", "encoder"}, chain)
}

func TestParseManifest_MergeMustBeMapping(t *testing.T) {
	_, err := descriptor.ParseManifest([]byte("components:\n  viewer:\n    <<: [1, 2]\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestParse)
}
