package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Role      Role
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
