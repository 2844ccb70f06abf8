package reservation

type CreateRequest struct {
	RoomTypeID int64  `json:"room_type_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Guests     int    `json:"guests" binding:"required,min=1"`

	// Guest contact snapshot; blank fields are prefilled from the caller's
	// customer profile when one exists.
	GuestFirstName string `json:"guest_first_name" binding:"max=35"`
	GuestLastName  string `json:"guest_last_name" binding:"max=35"`
	GuestPhone     string `json:"guest_phone" binding:"max=25"`
	GuestEmail     string `json:"guest_email" binding:"omitempty,email,max=254"`

	Hold bool `json:"hold"`

	// Extra confirmation recipients, comma or semicolon separated.
	AdditionalEmails string `json:"additional_emails"`

	// Staff only: book on behalf of an existing customer.
	CustomerID *int64 `json:"customer_id"`
}

type ModifyRequest struct {
	RoomTypeID       *int64 `json:"room_type_id"`
	CheckIn          string `json:"check_in" binding:"required"`
	CheckOut         string `json:"check_out" binding:"required"`
	Guests           int    `json:"guests" binding:"required,min=1"`
	GuestFirstName   string `json:"guest_first_name" binding:"required,max=35"`
	GuestLastName    string `json:"guest_last_name" binding:"required,max=35"`
	GuestPhone       string `json:"guest_phone" binding:"required,max=25"`
	GuestEmail       string `json:"guest_email" binding:"required,email,max=254"`
	AdditionalEmails string `json:"additional_emails"`
}

type ShareRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SearchRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PublicID  string `json:"public_id"`
}
