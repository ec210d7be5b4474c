package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionCreate    AuditAction = "CREATE"
	AuditActionUpdate    AuditAction = "UPDATE"
	AuditActionDelete    AuditAction = "DELETE"
	AuditActionLogin     AuditAction = "LOGIN"
	AuditActionShare     AuditAction = "SHARE"
	AuditActionImport    AuditAction = "IMPORT"
	AuditActionDashboard AuditAction = "DASHBOARD"
	AuditActionWorkspace AuditAction = "WORKSPACE"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action    AuditAction        `bson:"action" json:"action"`
	Entity    string             `bson:"entity" json:"entity"`         // Table/collection name
	RecordID  string             `bson:"record_id" json:"record_id"`   // The ID of the record being modified
	ActorID   string             `bson:"actor_id" json:"actor_id"`     // User ID who performed the action
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

type Log struct {
	Message      string    `bson:"message" json:"message"`
	IpAddress    string    `bson:"ip_address" json:"ip_address"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	Caller       string    `bson:"caller" json:"caller"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
