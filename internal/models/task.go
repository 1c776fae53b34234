package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusOpen      TaskStatus = "open"
	StatusCompleted TaskStatus = "completed"
)

// ParseTaskStatus maps an inbound status string to the enum. Older clients
// send "false" for an incomplete task; that and the empty string normalize
// to StatusOpen.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch s {
	case string(StatusOpen), "", "false":
		return StatusOpen, nil
	case string(StatusCompleted):
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown task status %q", s)
	}
}

type Task struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskName       string             `bson:"taskName" json:"task_name"`
	Description    string             `bson:"description" json:"description"`
	ProjectID      primitive.ObjectID `bson:"projectId" json:"project_id"`
	AssignedUserID primitive.ObjectID `bson:"assignedUserId" json:"assigned_user_id"`
	Deadline       time.Time          `bson:"deadline" json:"deadline"`
	Status         TaskStatus         `bson:"status" json:"status"`
}
