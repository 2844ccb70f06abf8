package domain

import "time"

// Customer carries the contact and address fields for a user account.
// One row per user.
type Customer struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	UserID         int64     `json:"user_id" gorm:"uniqueIndex"`
	PhoneNumber    string    `json:"phone_number,omitempty" gorm:"size:25"`
	AddressStreet  string    `json:"address_street,omitempty" gorm:"size:254"`
	AddressCity    string    `json:"address_city,omitempty" gorm:"size:35"`
	AddressState   string    `json:"address_state,omitempty" gorm:"size:35"`
	AddressZipcode string    `json:"address_zipcode,omitempty" gorm:"size:25"`
	AddressCountry string    `json:"address_country,omitempty" gorm:"size:35"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Customer) TableName() string { return "customers" }
