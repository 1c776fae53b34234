package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project groups tasks and members. Every id in Members references a User
// that existed when the project was created; deleting a user later leaves
// the id behind (readers must tolerate missing lookups).
type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ProjectName string               `bson:"projectName" json:"project_name"`
	Description string               `bson:"description" json:"description"`
	Deadline    time.Time            `bson:"deadline" json:"deadline"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	TaskIDs     []primitive.ObjectID `bson:"taskIds" json:"task_ids"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"created_by"`
}
