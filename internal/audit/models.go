package audit

import "time"

// ResourceType names the kind of record an audit entry refers to.
type ResourceType string

const (
	ResourceProject     ResourceType = "project"
	ResourceMerchandise ResourceType = "merchandise"
	ResourcePerk        ResourceType = "perk"
	ResourceMedia       ResourceType = "media"
	ResourceUser        ResourceType = "user"
	ResourceSystem      ResourceType = "system"
)

// Action labels for every state-changing operation the back office performs.
const (
	ActionProjectCreated  = "Project Created"
	ActionProjectUpdated  = "Project Updated"
	ActionProjectDeleted  = "Project Deleted"
	ActionProjectArchived = "Project Archived"

	ActionMerchandiseCreated = "Merchandise Created"
	ActionMerchandiseUpdated = "Merchandise Updated"
	ActionMerchandiseDeleted = "Merchandise Deleted"

	ActionPerkCreated = "Perk Created"
	ActionPerkUpdated = "Perk Updated"
	ActionPerkDeleted = "Perk Deleted"

	ActionMediaUploaded = "Media Uploaded"
	ActionMediaUpdated  = "Media Updated"
	ActionMediaDeleted  = "Media Deleted"

	ActionUserCreated          = "User Created"
	ActionUserStatusTransition = "User Status Changed"

	ActionBackupStarted    = "Backup Started"
	ActionBackupCompleted  = "Backup Completed"
	ActionBackupFailed     = "Backup Failed"
	ActionRestoreStarted   = "Restore Started"
	ActionRestoreCompleted = "Restore Completed"
	ActionRestoreFailed    = "Restore Failed"
)

// Entry is one immutable line of the audit trail. The log assigns ID,
// Timestamp and the internal sequence; callers fill the rest.
type Entry struct {
	ID           string
	Action       string
	ActorID      string
	ActorName    string
	ResourceType ResourceType
	ResourceID   string
	Details      string
	Timestamp    time.Time

	// seq breaks timestamp ties so entries recorded back to back keep their
	// relative order under descending sort.
	seq uint64
}

// Filter narrows a Query. Zero values match everything.
type Filter struct {
	ResourceType ResourceType
	ActorID      string
	From         time.Time
	To           time.Time
	Text         string
}
