package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArchivedTask is an immutable copy of a Task taken at archival time.
// It gets its own id; TaskID preserves the original task's id. Project and
// user documents are not cleaned up when a task is archived, so their id
// lists may still point at the removed task.
type ArchivedTask struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID         primitive.ObjectID `bson:"taskId" json:"task_id"`
	TaskName       string             `bson:"taskName" json:"task_name"`
	Description    string             `bson:"description" json:"description"`
	ProjectID      primitive.ObjectID `bson:"projectId" json:"project_id"`
	AssignedUserID primitive.ObjectID `bson:"assignedUserId" json:"assigned_user_id"`
	Deadline       time.Time          `bson:"deadline" json:"deadline"`
	Status         TaskStatus         `bson:"status" json:"status"`
	ArchivedAt     time.Time          `bson:"archivedAt" json:"archived_at"`
}

// NewArchivedTask copies a live task into its archival form.
func NewArchivedTask(t Task, now time.Time) ArchivedTask {
	return ArchivedTask{
		TaskID:         t.ID,
		TaskName:       t.TaskName,
		Description:    t.Description,
		ProjectID:      t.ProjectID,
		AssignedUserID: t.AssignedUserID,
		Deadline:       t.Deadline,
		Status:         t.Status,
		ArchivedAt:     now,
	}
}
