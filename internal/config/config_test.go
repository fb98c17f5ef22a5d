package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "jsweet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
input: src/main/java
tsout: target/ts
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModuleNone, cfg.Module)
	assert.Equal(t, "UTF-8", cfg.Encoding)
	base := filepath.Dir(path)
	assert.Equal(t, filepath.Join(base, "src/main/java"), cfg.Input)
	assert.Equal(t, filepath.Join(base, "target/ts"), cfg.TsOut)
	assert.Equal(t, filepath.Join(base, ".jsweet"), cfg.WorkingDir)
}

func TestLoadResolvesClasspath(t *testing.T) {
	path := writeConfig(t, `
tsout: out
module: commonjs
classpath:
  - libs/jsweet-core.jar
  - /abs/candy.jar
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, ModuleCommonJS, cfg.Module)
	assert.Equal(t, filepath.Join(base, "libs/jsweet-core.jar"), cfg.Classpath[0])
	assert.Equal(t, "/abs/candy.jar", cfg.Classpath[1])
}

func TestLoadRejectsUnknownModuleKind(t *testing.T) {
	path := writeConfig(t, `
tsout: out
module: systemjs
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module kind")
}

func TestLoadRequiresTsOut(t *testing.T) {
	path := writeConfig(t, `input: src`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tsout is required")
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	path := writeConfig(t, "tsout: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
}
