package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a stored account. PasswordHash only ever holds a bcrypt hash;
// the plaintext never touches the database.
//
// ProjectIDs, OwnerOf and TaskIDs are mutated exclusively through
// append-if-absent repository updates, never by replacing the document.
// OwnerOf collects ids of entities this user created through admin flows:
// projects created and subordinate users registered.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password" json:"-"`
	FirstName    string               `bson:"firstName" json:"first_name"`
	LastName     string               `bson:"lastName" json:"last_name"`
	Role         string               `bson:"role" json:"role"`
	ProjectIDs   []primitive.ObjectID `bson:"projectIds" json:"project_ids"`
	OwnerOf      []primitive.ObjectID `bson:"ownerOf" json:"owner_of"`
	TaskIDs      []primitive.ObjectID `bson:"tasks" json:"task_ids"`
}
