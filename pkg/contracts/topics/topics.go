package topics

const (
	// Kafka: um evento por value bet a cada refresh
	ValueBets = "tennis_value_bets"

	// Redis Pub/Sub: aviso de snapshot novo
	SnapshotBroadcast = "tennis_snapshot_broadcast"

	// Redis: chave com o último snapshot serializado
	SnapshotKey = "tennis:snapshot:latest"
)
