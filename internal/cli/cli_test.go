package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planYAML = `
globals: {V_unit: V, C_unit: A, T_unit: C, duration_unit: s, V_min: 3.0, V_max: 4.2, T_ambient: 25, T_max: 45}
instructions:
  - {type: current, value: 1.0, time: 600, repeat: 2}
  - name: rest_step
    repeat: 3
    sequence:
      - {type: rest, time: 60}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (map[string]interface{}, error) {
	t.Helper()
	t.Setenv("CYCLER_PLAN", "")
	t.Setenv("CYCLER_DRIVER", "")
	t.Setenv("CYCLER_OVERRIDES", "")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "off"))
	if err := cmd.Execute(); err != nil {
		return nil, err
	}

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result), out.String())
	return result, nil
}

func TestConvertCommand(t *testing.T) {
	planPath := writeFile(t, "plan.yaml", planYAML)
	overridesPath := writeFile(t, "overrides.yaml", "channel: 12\ntest_name: from_file\n")

	result, err := runCLI(t, "convert", planPath, "--overrides", overridesPath, "--set", "test_name=cell_07", "--set", "unknown=1")
	require.NoError(t, err)

	assert.Equal(t, 4.2, result["v_max_v"])
	assert.Equal(t, 3.0, result["v_min_v"])
	assert.Equal(t, 12.0, result["channel"])
	assert.Equal(t, "cell_07", result["test_name"])
	assert.NotContains(t, result, "unknown")
}

func TestConvertUnknownDriver(t *testing.T) {
	planPath := writeFile(t, "plan.yaml", planYAML)

	_, err := runCLI(t, "convert", planPath, "--driver", "arbin")
	assert.ErrorContains(t, err, "unknown driver")
}

func TestPlanSummaryCommand(t *testing.T) {
	planPath := writeFile(t, "plan.yaml", planYAML)

	result, err := runCLI(t, "plan", planPath, "--summary")
	require.NoError(t, err)
	assert.Equal(t, 2.0, result["instructions"])
	assert.Equal(t, 1.0, result["sequences"])
	assert.Equal(t, 5.0, result["expanded_steps"])
}

func TestPlanCommandRequiresPath(t *testing.T) {
	_, err := runCLI(t, "plan")
	assert.ErrorContains(t, err, "no plan file given")
}

func TestNewRootCmdDoesNotReadDotEnv(t *testing.T) {
	const key = "CYCLER_DOTENV_CHECK"
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(key+"=from_file\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	NewRootCmd()
	_, ok := os.LookupEnv(key)
	assert.False(t, ok, "сборка команды не должна менять окружение процесса")

	loadEnvFile(".env")
	assert.Equal(t, "from_file", os.Getenv(key))
}

func TestLoadEnvFileMissingIsIgnored(t *testing.T) {
	t.Setenv("CYCLER_DOTENV_CHECK", "kept")
	loadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "kept", os.Getenv("CYCLER_DOTENV_CHECK"))
}
