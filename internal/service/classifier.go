package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"telemetry_monitor/internal/models"
)

// OvertempThreshold is inclusive: a reading at exactly 90 is over temperature.
const OvertempThreshold = 90.0

// FormattedTimeLayout renders YYYY/MM/DD HH:MM:SS.
const FormattedTimeLayout = "2006/01/02 15:04:05"

const (
	dataKey        = "data"
	dataFieldSep   = ":"
	dataFieldCount = 4
)

// ErrBadRequest is wrapped by every validation failure. Callers only ever see
// "bad request"; the wrapped detail is for logs.
var ErrBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// Classify validates a /temp body and classifies the reading it carries.
func Classify(payload []byte) (models.Classification, error) {
	data, err := decodeData(payload)
	if err != nil {
		return models.Classification{}, err
	}
	reading, err := ParseReading(data)
	if err != nil {
		return models.Classification{}, err
	}
	return ClassifyReading(reading)
}

// decodeData returns the "data" string of a body that must be a JSON object
// with exactly that one key.
func decodeData(payload []byte) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return "", badRequest("invalid json: %v", err)
	}
	raw, ok := obj[dataKey]
	if !ok || len(obj) != 1 {
		return "", badRequest("expected exactly one key %q, got %d keys", dataKey, len(obj))
	}
	var data string
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", badRequest("%q is not a string", dataKey)
	}
	return data, nil
}

// ParseReading parses device_id:epoch_millis:'Temperature':temperature.
func ParseReading(data string) (models.TelemetryReading, error) {
	parts := strings.Split(data, dataFieldSep)
	if len(parts) != dataFieldCount {
		return models.TelemetryReading{}, badRequest("expected %d fields, got %d", dataFieldCount, len(parts))
	}

	deviceID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return models.TelemetryReading{}, badRequest("device id %q is not an integer", parts[0])
	}
	epochMillis, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return models.TelemetryReading{}, badRequest("epoch %q is not an integer", parts[1])
	}
	if parts[2] != models.SensorTemperature {
		return models.TelemetryReading{}, badRequest("sensor kind %q is not %s", parts[2], models.SensorTemperature)
	}
	temperature, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return models.TelemetryReading{}, badRequest("temperature %q is not a number", parts[3])
	}

	return models.TelemetryReading{
		DeviceID:    deviceID,
		EpochMillis: epochMillis,
		SensorKind:  strings.Trim(parts[2], "'"),
		Temperature: temperature,
	}, nil
}

// ClassifyReading applies the overtemp threshold. Normal readings carry no
// other fields.
func ClassifyReading(r models.TelemetryReading) (models.Classification, error) {
	// NaN compares false and lands here
	if !(r.Temperature >= OvertempThreshold) {
		return models.Classification{Overtemp: false}, nil
	}
	formatted, err := FormatEpochMillis(r.EpochMillis)
	if err != nil {
		return models.Classification{}, err
	}
	deviceID := r.DeviceID
	return models.Classification{
		Overtemp:      true,
		DeviceID:      &deviceID,
		FormattedTime: &formatted,
	}, nil
}

// FormatEpochMillis renders milliseconds since the Unix epoch as UTC wall time.
// Years outside 0000-9999 do not fit the layout and are rejected.
func FormatEpochMillis(ms int64) (string, error) {
	t := time.UnixMilli(ms).UTC()
	if y := t.Year(); y < 0 || y > 9999 {
		return "", badRequest("epoch %d is out of range", ms)
	}
	return t.Format(FormattedTimeLayout), nil
}
