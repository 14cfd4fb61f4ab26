package model

// OfflineNotice is raised once when the app falls back to offline mode on a
// critical path.
type OfflineNotice struct {
	Message string
	Path    string
	Reason  AbsentReason
}

// OfflineMessage is the default user-facing text of the offline notice.
const OfflineMessage = "Trail service unavailable. You're exploring in offline mode with demo trails and stories."
