package models

import "time"

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Role      []string  `json:"role" bson:"role"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	StoreName string    `json:"storeName,omitempty" bson:"storeName,omitempty"`
	City      string    `json:"city,omitempty" bson:"city,omitempty"`
	State     string    `json:"state,omitempty" bson:"state,omitempty"`
	Pincode   string    `json:"pincode,omitempty" bson:"pincode,omitempty"`
	GSTNumber string    `json:"gstNumber,omitempty" bson:"gstNumber,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	LastLogin time.Time `json:"last_login" bson:"last_login"`
}

// UserProfileResponse is the login/profile payload shape.
type UserProfileResponse struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	StoreName string `json:"storeName"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	GSTNumber string `json:"gstNumber"`
}

func (u User) IsAdmin() bool {
	for _, r := range u.Role {
		if r == "admin" {
			return true
		}
	}
	return false
}

// PrimaryRole flattens the role list for API responses; the storefront only
// distinguishes admin from everyone else.
func (u User) PrimaryRole() string {
	if u.IsAdmin() {
		return "admin"
	}
	return "user"
}

func (u User) Profile() UserProfileResponse {
	return UserProfileResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.PrimaryRole(),
		Phone:     u.Phone,
		Address:   u.Address,
		StoreName: u.StoreName,
		City:      u.City,
		State:     u.State,
		Pincode:   u.Pincode,
		GSTNumber: u.GSTNumber,
	}
}
