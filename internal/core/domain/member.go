package domain

import "time"

// User types carried in session tokens. A member and an admin live in
// separate identity spaces; a public user is a lightweight third space
// registered with nothing but a name and a phone number.
const (
	UserTypeMember = "member"
	UserTypeAdmin  = "admin"
	UserTypePublic = "public"
)

const (
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Member is an authenticated citizen tied to a voter-registration record.
// The password is optional until the member claims the account.
type Member struct {
	ID                 string    `json:"id" bson:"_id,omitempty"`
	VoterRegNum        string    `json:"voter_reg_num" bson:"voter_reg_num"`
	NCID               string    `json:"ncid" bson:"ncid"`
	FirstName          string    `json:"first_name" bson:"first_name"`
	LastName           string    `json:"last_name" bson:"last_name"`
	FullName           string    `json:"full_name" bson:"full_name"`
	Email              string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone              string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash       string    `json:"-" bson:"password_hash,omitempty"`
	PartyCode          string    `json:"party_cd" bson:"party_cd"`
	ResCity            string    `json:"res_city,omitempty" bson:"res_city,omitempty"`
	SenateDistrict     string    `json:"nc_senate_dist" bson:"nc_senate_dist"`
	HouseDistrict      string    `json:"nc_house_dist" bson:"nc_house_dist"`
	Role               string    `json:"role" bson:"role"`
	Tier               string    `json:"user_tier" bson:"user_tier"`
	SubscriptionStatus string    `json:"subscription_status,omitempty" bson:"subscription_status,omitempty"`
	IsContributor      bool      `json:"is_contributor" bson:"is_contributor"`
	EmailVerified      bool      `json:"email_verified" bson:"email_verified"`
	PhoneVerified      bool      `json:"phone_verified" bson:"phone_verified"`
	LastLogin          time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	AccountUpdatedAt   time.Time `json:"account_updated_at,omitempty" bson:"account_updated_at,omitempty"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// HasPassword reports whether the member completed self-service claim.
func (m *Member) HasPassword() bool { return m.PasswordHash != "" }

// AdminUser is a back-office identity, separate from Member.
type AdminUser struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	FullName     string    `json:"full_name" bson:"full_name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	LastLogin    time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// PublicUser is the unauthenticated-tier identity: name and phone only.
type PublicUser struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FullName    string    `json:"full_name" bson:"full_name"`
	PhoneNumber string    `json:"phone_number" bson:"phone_number"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	LastLogin   time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
