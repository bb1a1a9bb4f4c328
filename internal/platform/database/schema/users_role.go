package schema

// UserRoleTable represents the 'users.userrole' table
type UserRoleTable struct {
	Table     string
	UserID    string
	Role      string
	CreatedAt string
}

// UserRole is the schema definition for users.userrole
var UserRole = UserRoleTable{
	Table:     "users.userrole",
	UserID:    "userid",
	Role:      "role",
	CreatedAt: "createdat",
}
