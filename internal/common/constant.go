package common

// Keys of the metadata table.
const (
	MetadataSessionSecret = "session_secret"
	MetadataSessionToken  = "session_token"
)

// DefaultWatchList is seeded for a user whose watch list is empty.
var DefaultWatchList = []string{"BTC", "ETH"}
