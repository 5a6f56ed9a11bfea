package core

import (
	"fmt"

	"github.com/google/uuid"
)

// owners maps a numeric id to the object it was handed to. A nil slot is
// free and will be reused before the table grows.
var owners []interface{}

const initialIDCapacity = 100

// IdentifierAcquireID reserves a unique id for owner. Ids released with
// IdentifierReleaseID are handed out again.
func IdentifierAcquireID(owner interface{}) uint32 {
	if owners == nil {
		owners = make([]interface{}, initialIDCapacity)
	}
	for i, o := range owners {
		if o == nil {
			owners[i] = owner
			return uint32(i)
		}
	}
	owners = append(owners, owner)
	return uint32(len(owners) - 1)
}

// IdentifierReleaseID frees the slot for id so it can be reacquired.
func IdentifierReleaseID(id uint32) error {
	if owners == nil {
		return fmt.Errorf("no identifiers have been acquired yet, cannot release id %d", id)
	}
	if id >= uint32(len(owners)) {
		return fmt.Errorf("identifier id %d out of range (max %d)", id, len(owners)-1)
	}
	owners[id] = nil
	return nil
}

// IdentifierNewName returns a globally unique resource name with the given
// prefix. Used for resources created at runtime that have no asset-backed
// name, such as generated texture atlases.
func IdentifierNewName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}
