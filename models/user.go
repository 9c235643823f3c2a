package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Role is the marketplace role a user acts under
type Role string

// Predefined Role values
const (
	RoleAdmin        Role = "admin"
	RoleStaff        Role = "staff"
	RoleHotelOwner   Role = "hotel_owner"
	RoleVehicleOwner Role = "vehicle_owner"
	RoleGuide        Role = "guide"
	RoleUser         Role = "user"
)

// IsValid checks if the Role value is one of the predefined constants
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleHotelOwner, RoleVehicleOwner, RoleGuide, RoleUser:
		return true
	}
	return false
}

// IsModerator reports whether the role may moderate content
func (r Role) IsModerator() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID primitive.ObjectID
	Email  string
	Role   Role
}

// IsAdmin reports whether the caller is an administrator
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
