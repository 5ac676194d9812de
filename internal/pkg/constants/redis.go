package constants

// Redis key formats
const (
	// Session store
	KeySession = "session:%s" // Format: session:{token}
)
