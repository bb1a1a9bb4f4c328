package schema

// UserProfileTable represents the 'users.profile' table
type UserProfileTable struct {
	Table        string
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	AvatarURL    string
	CreatedAt    string
}

// UserProfile is the schema definition for users.profile
var UserProfile = UserProfileTable{
	Table:        "users.profile",
	ID:           "id",
	Email:        "email",
	FullName:     "fullname",
	PasswordHash: "passwordhash",
	AvatarURL:    "avatarurl",
	CreatedAt:    "createdat",
}

func (t UserProfileTable) Columns() []string {
	return []string{t.ID, t.Email, t.FullName, t.PasswordHash, t.AvatarURL, t.CreatedAt}
}
