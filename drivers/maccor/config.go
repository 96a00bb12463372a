package maccor

// Значения по умолчанию для конфигурации драйвера Maccor.
const (
	DefaultChannel                    = 75
	DefaultTestName                   = ""
	DefaultCRateAh                    = 1.0
	DefaultVMaxV                      = 5.0
	DefaultVMinV                      = 3.0
	DefaultVMaxSafetyLimitV           = 4.25
	DefaultVMinSafetyLimitV           = 2.9
	DefaultIMaxSafetyLimitA           = 3.0
	DefaultIMinSafetyLimitA           = 3.0
	DefaultDataRecordTimeS            = 0.05
	DefaultDataRecordVoltageDeltaVbyS = 0.0
	DefaultDataRecordCurrentDeltaAbyS = 0.0
	DefaultTestProcedure              = "test_procedure_1"
	DefaultServerIP                   = "3.3.31.83"
	DefaultJSONServerPort             = 57570
	DefaultTCPServerPort              = 57560
	DefaultMsgBufferSizeBytes         = 1024
)

// Config хранит конфигурацию драйвера Maccor.
// Набор полей закрыт: переопределения не могут добавить новое поле.
type Config struct {
	Channel                    int     `json:"channel"`
	TestName                   string  `json:"test_name"`
	CRateAh                    float64 `json:"c_rate_ah"`
	VMaxV                      float64 `json:"v_max_v"`
	VMinV                      float64 `json:"v_min_v"`
	VMaxSafetyLimitV           float64 `json:"v_max_safety_limit_v"`
	VMinSafetyLimitV           float64 `json:"v_min_safety_limit_v"`
	IMaxSafetyLimitA           float64 `json:"i_max_safety_limit_a"`
	IMinSafetyLimitA           float64 `json:"i_min_safety_limit_a"`
	DataRecordTimeS            float64 `json:"data_record_time_s"`
	DataRecordVoltageDeltaVbyS float64 `json:"data_record_voltage_delta_vbys"`
	DataRecordCurrentDeltaAbyS float64 `json:"data_record_current_delta_abys"`
	Procedure                  string  `json:"test_procedure"`
	ServerIP                   string  `json:"server_ip"`
	JSONServerPort             int     `json:"json_server_port"`
	TCPServerPort              int     `json:"tcp_server_port"`
	MsgBufferSizeBytes         int     `json:"msg_buffer_size_bytes"`
}

// NewConfig возвращает конфигурацию со значениями по умолчанию.
func NewConfig() *Config {
	return &Config{
		Channel:                    DefaultChannel,
		TestName:                   DefaultTestName,
		CRateAh:                    DefaultCRateAh,
		VMaxV:                      DefaultVMaxV,
		VMinV:                      DefaultVMinV,
		VMaxSafetyLimitV:           DefaultVMaxSafetyLimitV,
		VMinSafetyLimitV:           DefaultVMinSafetyLimitV,
		IMaxSafetyLimitA:           DefaultIMaxSafetyLimitA,
		IMinSafetyLimitA:           DefaultIMinSafetyLimitA,
		DataRecordTimeS:            DefaultDataRecordTimeS,
		DataRecordVoltageDeltaVbyS: DefaultDataRecordVoltageDeltaVbyS,
		DataRecordCurrentDeltaAbyS: DefaultDataRecordCurrentDeltaAbyS,
		Procedure:                  DefaultTestProcedure,
		ServerIP:                   DefaultServerIP,
		JSONServerPort:             DefaultJSONServerPort,
		TCPServerPort:              DefaultTCPServerPort,
		MsgBufferSizeBytes:         DefaultMsgBufferSizeBytes,
	}
}

// TestProcedure возвращает имя процедуры испытания.
func (c *Config) TestProcedure() string {
	return c.Procedure
}

// ToDocument сериализует конфигурацию в формат, который ожидает интерфейс Maccor.
func (c *Config) ToDocument() map[string]interface{} {
	return map[string]interface{}{
		"channel":                        c.Channel,
		"test_name":                      c.TestName,
		"c_rate_ah":                      c.CRateAh,
		"v_max_v":                        c.VMaxV,
		"v_min_v":                        c.VMinV,
		"v_max_safety_limit_v":           c.VMaxSafetyLimitV,
		"v_min_safety_limit_v":           c.VMinSafetyLimitV,
		"i_max_safety_limit_a":           c.IMaxSafetyLimitA,
		"i_min_safety_limit_a":           c.IMinSafetyLimitA,
		"data_record_time_s":             c.DataRecordTimeS,
		"data_record_voltage_delta_vbys": c.DataRecordVoltageDeltaVbyS,
		"data_record_current_delta_abys": c.DataRecordCurrentDeltaAbyS,
		"test_procedure":                 c.Procedure,
		"server_ip":                      c.ServerIP,
		"json_server_port":               c.JSONServerPort,
		"tcp_server_port":                c.TCPServerPort,
		"msg_buffer_size_bytes":          c.MsgBufferSizeBytes,
	}
}
