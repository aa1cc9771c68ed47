package hub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dronecam_relay_active_connections",
		Help: "Number of devices currently present in the connection table.",
	})

	messagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronecam_relay_messages_received_total",
		Help: "Inbound frames handled by the router.",
	})

	messagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronecam_relay_messages_sent_total",
		Help: "Outbound frames queued for delivery.",
	})

	signalsRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronecam_relay_signals_relayed_total",
		Help: "Signaling frames forwarded point-to-point.",
	})

	telemetrySamples = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronecam_relay_telemetry_samples_total",
		Help: "Telemetry samples ingested into the store.",
	})

	errorsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dronecam_relay_errors_sent_total",
		Help: "Error frames returned to senders.",
	})
)
