package models

import "time"

// Role is the set of access levels a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User is the stored user document. It deliberately carries no json tags:
// responses go through PublicUser so the password hash and token never
// reach a client.
type User struct {
	ID        string    `bson:"_id,omitempty" db:"id"`
	Username  string    `bson:"username" db:"username"`
	Email     string    `bson:"email" db:"email"`
	Password  string    `bson:"password" db:"password"`
	Role      Role      `bson:"role" db:"role"`
	Token     string    `bson:"token,omitempty" db:"token"`
	CreatedAt time.Time `bson:"created_at" db:"created_at"`
}

// PublicUser is the client-facing view of a user.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func PublicUsers(users []*User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
