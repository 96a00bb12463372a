package cycler_test

import (
	"bytes"
	"testing"

	cycler "github.com/iwtcode/cyclerAdapter"
	"github.com/iwtcode/cyclerAdapter/drivers"
	"github.com/iwtcode/cyclerAdapter/drivers/maccor"
	"github.com/iwtcode/cyclerAdapter/models"
	cerrors "github.com/iwtcode/cyclerAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() map[string]interface{} {
	return map[string]interface{}{
		"globals": map[string]interface{}{
			"V_unit": "V", "C_unit": "A", "T_unit": "C", "duration_unit": "s",
			"V_min": 3.0, "V_max": 4.2, "T_ambient": 25, "T_max": 45,
		},
		"instructions": []interface{}{
			map[string]interface{}{"type": "current", "value": 1.0, "time": 600, "repeat": 2},
		},
	}
}

type countingMapper struct {
	calls int
}

func (m *countingMapper) Name() string { return "counting" }

func (m *countingMapper) Map(p *models.ExperimentPlan, o drivers.Overrides) (drivers.DriverConfig, error) {
	m.calls++
	return maccor.NewConfig(), nil
}

type fakeConnector struct {
	connectOK, startOK bool
	procedure          string
}

func (f *fakeConnector) Connect(map[string]interface{}) bool { return f.connectOK }

func (f *fakeConnector) StartTest(procedure string) bool {
	f.procedure = procedure
	return f.startOK
}

func TestGetDriverConfigMaccor(t *testing.T) {
	c, err := cycler.New(sampleDoc(), "maccor", nil)
	require.NoError(t, err)

	cfg, err := c.GetDriverConfig()
	require.NoError(t, err)

	mc, ok := cfg.(*maccor.Config)
	require.True(t, ok, "ожидался *maccor.Config, получено %T", cfg)

	want := maccor.NewConfig()
	want.VMinV = 3.0
	want.VMaxV = 4.2
	assert.Equal(t, want, mc)
}

func TestGetDriverConfigWithOverrides(t *testing.T) {
	c, err := cycler.New(sampleDoc(), "maccor", drivers.Overrides{
		{Key: "test_name", Value: "cell_01"},
		{Key: "not_a_real_field", Value: 42},
	})
	require.NoError(t, err)

	cfg, err := c.GetDriverConfig()
	require.NoError(t, err)
	doc := cfg.ToDocument()
	assert.Equal(t, "cell_01", doc["test_name"])
	assert.Len(t, doc, len(maccor.NewConfig().ToDocument()))
}

func TestUnknownDriverFailsBeforeMapping(t *testing.T) {
	mapper := &countingMapper{}
	c, err := cycler.New(sampleDoc(), "arbin", nil, cycler.WithRegistry(drivers.NewRegistry(mapper)))
	require.NoError(t, err)

	_, err = c.GetDriverConfig()
	require.ErrorIs(t, err, cerrors.ErrUnknownDriver)
	assert.Zero(t, mapper.calls)
}

func TestCustomRegistry(t *testing.T) {
	mapper := &countingMapper{}
	c, err := cycler.New(sampleDoc(), "counting", nil, cycler.WithRegistry(drivers.NewRegistry(mapper)))
	require.NoError(t, err)

	_, err = c.GetDriverConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, mapper.calls)
}

func TestNewFailsFastOnMalformedPlan(t *testing.T) {
	doc := sampleDoc()
	delete(doc, "instructions")

	c, err := cycler.New(doc, "no-such-driver", nil)
	require.ErrorIs(t, err, cerrors.ErrMissingField, "ошибка плана должна появиться раньше ошибки драйвера")
	assert.Nil(t, c)
}

func TestPlanAndSummary(t *testing.T) {
	c, err := cycler.New(sampleDoc(), "maccor", nil)
	require.NoError(t, err)

	assert.Equal(t, "maccor", c.DriverName())
	assert.Equal(t, 4.2, c.Plan().Globals.VMax)
	assert.Equal(t, 2, c.Summary().ExpandedSteps)
}

func TestRunTest(t *testing.T) {
	c, err := cycler.New(sampleDoc(), "maccor", drivers.Overrides{{Key: "test_procedure", Value: "formation"}})
	require.NoError(t, err)

	conn := &fakeConnector{connectOK: true, startOK: true}
	require.NoError(t, c.RunTest(conn))
	assert.Equal(t, "formation", conn.procedure)

	err = c.RunTest(&fakeConnector{connectOK: false})
	assert.ErrorIs(t, err, cerrors.ErrConnectFailed)
}

func TestLoggerReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	c, err := cycler.New(sampleDoc(), "maccor", drivers.Overrides{{Key: "bogus", Value: 1}}, cycler.WithLogger(logger))
	require.NoError(t, err)
	_, err = c.GetDriverConfig()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "load_id=")
	assert.Contains(t, out, "driver=maccor")
	assert.Contains(t, out, "key=bogus")
}

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, cycler.NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, cycler.NewLogger("verbose").GetLevel())
}
