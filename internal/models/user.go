package models

import "time"

// UsernameUniqueIndex names the index that keeps usernames unique.
const UsernameUniqueIndex = "uni_users_username"

// User represents a journal user.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(25);not null;check:first_name_min_length,length(first_name) >= 2"`
	LastName  string    `json:"last_name" gorm:"type:varchar(30);not null;check:last_name_min_length,length(last_name) >= 2"`
	Username  string    `json:"username" gorm:"type:varchar(20);not null;uniqueIndex:uni_users_username;check:username_min_length,length(username) >= 3"`
	Email     *string   `json:"email"`
	Age       int       `json:"age" gorm:"not null;check:age_range,age > 0 AND age < 100"`
	Password  string    `json:"-" gorm:"not null;check:password_min_length,length(password) >= 8"` // bcrypt hash once stored through the service
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	Notes     []Note    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCreate is the validated draft a new user is built from.
type UserCreate struct {
	FirstName string  `json:"first_name" validate:"required,min=2,max=25"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=30"`
	Username  string  `json:"username" validate:"required,min=3,max=20,nospace"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Age       *int    `json:"age" validate:"required,gt=0,lt=100"`
	Password  string  `json:"password" validate:"required,min=8,max=72,bcryptlen"`
}

// NewUser builds an unsaved record from the draft.
func (d UserCreate) NewUser() User {
	u := User{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		IsActive:  true,
	}
	if d.Age != nil {
		u.Age = *d.Age
	}
	return u
}

// UserUpdate is the body of a full replace. Every required column must be
// present; a missing email resets it.
type UserUpdate struct {
	FirstName string  `json:"first_name" validate:"required,min=2,max=25"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=30"`
	Username  string  `json:"username" validate:"required,min=3,max=20,nospace"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Age       *int    `json:"age" validate:"required,gt=0,lt=100"`
	Password  string  `json:"password" validate:"required,min=8,max=72,bcryptlen"`
}

// Patch returns the update as a patch with every field set.
func (u UserUpdate) Patch() UserPatch {
	p := UserPatch{
		FirstName: Some(u.FirstName),
		LastName:  Some(u.LastName),
		Username:  Some(u.Username),
		Email:     Some(u.Email),
		Password:  Some(u.Password),
	}
	if u.Age != nil {
		p.Age = Some(*u.Age)
	}
	return p
}

// UserPatch carries the fields of an update together with whether each one
// was supplied.
type UserPatch struct {
	FirstName Optional[string]  `json:"first_name" validate:"omitempty,min=2,max=25"`
	LastName  Optional[string]  `json:"last_name" validate:"omitempty,min=2,max=30"`
	Username  Optional[string]  `json:"username" validate:"omitempty,min=3,max=20,nospace"`
	Email     Optional[*string] `json:"email" validate:"omitempty,email"`
	Age       Optional[int]     `json:"age" validate:"omitempty,gt=0,lt=100"`
	// Password is only set by a full replace; PATCH bodies cannot carry it.
	Password  Optional[string]  `json:"-"`
}

// Apply writes the patch onto u and returns the columns it touched.
// In partial mode only supplied fields are written. Otherwise every field
// is written and unsupplied ones fall back to their zero value, NULL for
// email. The password is written only when supplied, in either mode.
func (p UserPatch) Apply(u *User, partial bool) []string {
	var cols []string
	if p.FirstName.Set || !partial {
		u.FirstName = p.FirstName.Value
		cols = append(cols, "first_name")
	}
	if p.LastName.Set || !partial {
		u.LastName = p.LastName.Value
		cols = append(cols, "last_name")
	}
	if p.Username.Set || !partial {
		u.Username = p.Username.Value
		cols = append(cols, "username")
	}
	if p.Email.Set || !partial {
		u.Email = p.Email.Value
		cols = append(cols, "email")
	}
	if p.Age.Set || !partial {
		u.Age = p.Age.Value
		cols = append(cols, "age")
	}
	if p.Password.Set {
		u.Password = p.Password.Value
		cols = append(cols, "password")
	}
	return cols
}

// UserRead is the public shape of a user.
type UserRead struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	Age       int     `json:"age"`
}

func NewUserRead(u *User) UserRead {
	return UserRead{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Age:       u.Age,
	}
}

func NewUserReads(users []User) []UserRead {
	out := make([]UserRead, 0, len(users))
	for i := range users {
		out = append(out, NewUserRead(&users[i]))
	}
	return out
}
