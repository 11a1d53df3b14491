package domain

// Access policy for mutating operations on owned resources. Pure
// functions over identities and role tags, independent of storage.
//
// Update and delete are intentionally asymmetric: an admin may delete
// any restaurant but may only update their own.

// CanModify reports whether userID may update a resource owned by
// ownerID. Only the owner may update; roles grant no override.
func CanModify(ownerID, userID string) bool {
	return ownerID != "" && ownerID == userID
}

// CanDelete reports whether userID with the given roles may delete a
// resource owned by ownerID. The owner always may; admins may delete
// resources they do not own.
func CanDelete(ownerID, userID string, roles []string) bool {
	if CanModify(ownerID, userID) {
		return true
	}
	return HasRole(roles, RoleAdmin)
}
