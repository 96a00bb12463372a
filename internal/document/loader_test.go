package document_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwtcode/cyclerAdapter/drivers"
	"github.com/iwtcode/cyclerAdapter/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlanYAML = `
globals:
  V_unit: V
  C_unit: A
  T_unit: C
  duration_unit: s
  V_min: 3.0
  V_max: 4.2
  T_ambient: 25
  T_max: 45
instructions:
  - type: current
    value: 1.0
    time: 600
    repeat: 2
  - name: rest_step
    repeat: 3
    sequence:
      - type: rest
        time: 60
`

func TestParsePlanYAML(t *testing.T) {
	doc, err := document.ParsePlan([]byte(samplePlanYAML))
	require.NoError(t, err)

	globals, ok := doc["globals"].(map[string]interface{})
	require.True(t, ok, "globals: %T", doc["globals"])
	assert.Equal(t, 4.2, globals["V_max"])
	assert.Equal(t, 25, globals["T_ambient"])

	instructions, ok := doc["instructions"].([]interface{})
	require.True(t, ok)
	assert.Len(t, instructions, 2)
}

func TestParsePlanJSON(t *testing.T) {
	doc, err := document.ParsePlan([]byte(`{"globals": {"V_max": 4.2}, "instructions": [{"type": "rest", "time": 60}]}`))
	require.NoError(t, err)
	assert.Equal(t, 4.2, doc["globals"].(map[string]interface{})["V_max"])
}

func TestParsePlanEmptyAndInvalid(t *testing.T) {
	doc, err := document.ParsePlan(nil)
	require.NoError(t, err)
	assert.Empty(t, doc)

	_, err = document.ParsePlan([]byte("- just\n- a list\n"))
	assert.Error(t, err)
}

func TestLoadPlanFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlanYAML), 0o644))

	doc, err := document.LoadPlan(path)
	require.NoError(t, err)
	assert.Contains(t, doc, "instructions")

	_, err = document.LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseOverridesKeepsOrder(t *testing.T) {
	o, err := document.ParseOverrides([]byte(`
test_name: cell_07
channel: 12
v_max_v: 4.1
server_ip: 10.0.0.5
`))
	require.NoError(t, err)
	assert.Equal(t, drivers.Overrides{
		{Key: "test_name", Value: "cell_07"},
		{Key: "channel", Value: 12},
		{Key: "v_max_v", Value: 4.1},
		{Key: "server_ip", Value: "10.0.0.5"},
	}, o)
}

func TestParseOverridesEdgeCases(t *testing.T) {
	o, err := document.ParseOverrides([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, o)

	_, err = document.ParseOverrides([]byte("- channel\n"))
	assert.Error(t, err)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"channel": 3, "test_name": "x"}`), 0o644))

	o, err := document.LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, drivers.Overrides{{Key: "channel", Value: 3}, {Key: "test_name", Value: "x"}}, o)
}

func TestParseAssignments(t *testing.T) {
	o, err := document.ParseAssignments([]string{"channel=12", "v_max_v=4.15", "test_name=cell 7", "test_name=", "server_ip=3.3.31.84"})
	require.NoError(t, err)
	assert.Equal(t, drivers.Overrides{
		{Key: "channel", Value: 12},
		{Key: "v_max_v", Value: 4.15},
		{Key: "test_name", Value: "cell 7"},
		{Key: "test_name", Value: ""},
		{Key: "server_ip", Value: "3.3.31.84"},
	}, o)

	_, err = document.ParseAssignments([]string{"channel"})
	assert.Error(t, err)
	_, err = document.ParseAssignments([]string{"=5"})
	assert.Error(t, err)
}
