package rediskey

const namespace = "statsembed"

// SurfaceMessage holds the id of the leaderboard message posted in channelID.
func SurfaceMessage(channelID string) string {
	return namespace + ":surface:" + channelID + ":message"
}

// RefreshLock is held for the duration of one refresh cycle against channelID.
func RefreshLock(channelID string) string {
	return namespace + ":refresh:" + channelID + ":lock"
}
