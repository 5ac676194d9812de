package constants

// NATS Subjects
const (
	// Inbound user-targeted events (durable push)
	SubjectNotifyUser = "notify.user"

	// Inbound ephemeral operational signals (never persisted)
	SubjectNotifyBroadcast = "notify.broadcast"

	// Outbound account events
	SubjectPasswordChanged = "user.password_changed"
)
