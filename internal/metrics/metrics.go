package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gramlite_chats_created_total",
			Help: "Total number of chats created, by kind",
		},
		[]string{"kind"},
	)

	messagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gramlite_messages_sent_total",
			Help: "Total number of user messages sent, by chat kind",
		},
		[]string{"kind"},
	)

	repliesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gramlite_simulated_replies_total",
			Help: "Total number of simulated replies delivered",
		},
	)

	persistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gramlite_persist_failures_total",
			Help: "Total number of failed state writes to the local store",
		},
	)

	wsClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gramlite_ws_clients",
			Help: "Number of connected WebSocket clients",
		},
	)
)

func RecordChatCreated(kind string) {
	chatsCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordMessageSent(kind string) {
	messagesSentTotal.WithLabelValues(kind).Inc()
}

func RecordReply() {
	repliesTotal.Inc()
}

func RecordPersistFailure() {
	persistFailuresTotal.Inc()
}

func WSClientConnected() {
	wsClients.Inc()
}

func WSClientDisconnected() {
	wsClients.Dec()
}
