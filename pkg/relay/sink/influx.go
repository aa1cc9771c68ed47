// Package sink writes ingested telemetry samples to long-term storage
// outside the relay's own stores.
package sink

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/ojassapate/drone-cam/pkg/model"
)

// InfluxWriter pushes each sample as one point into an InfluxDB bucket.
type InfluxWriter struct {
	client influxdb2.Client
	org    string
	bucket string
}

func NewInfluxWriter(url, token, org, bucket string) *InfluxWriter {
	return &InfluxWriter{
		client: influxdb2.NewClient(url, token),
		org:    org,
		bucket: bucket,
	}
}

func (w *InfluxWriter) Write(sample *model.TelemetrySample) error {
	point := influxdb2.NewPointWithMeasurement("telemetry").
		AddTag("device_id", sample.DeviceID).
		SetTime(sample.Timestamp)

	fields := map[string]*float64{
		"battery":         sample.Battery,
		"altitude":        sample.Altitude,
		"speed":           sample.Speed,
		"pitch":           sample.Pitch,
		"roll":            sample.Roll,
		"yaw":             sample.Yaw,
		"latitude":        sample.Latitude,
		"longitude":       sample.Longitude,
		"signal_strength": sample.SignalStrength,
	}
	for name, value := range fields {
		if value != nil {
			point.AddField(name, *value)
		}
	}

	writeAPI := w.client.WriteAPIBlocking(w.org, w.bucket)
	return writeAPI.WritePoint(context.Background(), point)
}

func (w *InfluxWriter) Close() {
	w.client.Close()
}
