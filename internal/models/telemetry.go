package models

// SensorTemperature is the only sensor kind accepted on the wire, quotes included.
const SensorTemperature = "'Temperature'"

// TelemetryReading is a successfully parsed telemetry string. It is never stored.
type TelemetryReading struct {
	DeviceID    int64
	EpochMillis int64
	SensorKind  string
	Temperature float64
}

// Classification is the /temp response body. DeviceID and FormattedTime are
// only set for over-temperature readings.
type Classification struct {
	Overtemp      bool    `json:"overtemp"`
	DeviceID      *int64  `json:"device_id,omitempty"`
	FormattedTime *string `json:"formatted_time,omitempty"`
}
