package content

import "time"

// Entity is any backend-owned record mirrored by the site.
type Entity interface {
	EntityID() string
}

const (
	ContactPending   = "pending"
	ContactResponded = "responded"

	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Record fields an admin edits carry no omitempty: an update must send a
// cleared string or a zero number so the backend overwrites it. Images only
// change through uploads and are left out when empty.

type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id,omitempty"`
}

// Place is a destination. The backend spells the active flag "isAtive".
type Place struct {
	ID          string     `json:"_id,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Images      []Image    `json:"images,omitempty"`
	Rating      float64    `json:"rating"`
	Visitors    int        `json:"visitors"`
	Trips       int        `json:"trips"`
	Cleaness    float64    `json:"cleaness"`
	EntryFee    float64    `json:"entryFee"`
	Price       float64    `json:"price"`
	Active      bool       `json:"isAtive"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func (p Place) EntityID() string { return p.ID }

type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Package is a sellable tour. Status is the active flag.
type Package struct {
	ID            string         `json:"_id,omitempty"`
	Slug          string         `json:"slug,omitempty"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Destination   string         `json:"destination"`
	Category      string         `json:"category"`
	Duration      string         `json:"duration"`
	PickupPoint   string         `json:"pickupPoint"`
	DropPoint     string         `json:"dropPoint"`
	TripDate      string         `json:"tripDate"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"originalPrice"`
	Discount      float64        `json:"discount"`
	Itinerary     []ItineraryDay `json:"itinerary"`
	Inclusions    []string       `json:"inclusions"`
	Exclusions    []string       `json:"exclusions"`
	Images        []Image        `json:"images,omitempty"`
	Status        bool           `json:"status"`
	CreatedAt     *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time     `json:"updatedAt,omitempty"`
}

func (p Package) EntityID() string { return p.ID }

// SalePrice is the price a visitor pays after the discount percentage.
func (p Package) SalePrice() float64 {
	if p.Discount <= 0 || p.Discount >= 100 {
		return p.Price
	}
	return p.Price * (100 - p.Discount) / 100
}

// Blog entries come back keyed by either "_id" or "id".
type Blog struct {
	ID        string     `json:"_id,omitempty"`
	AltID     string     `json:"id,omitempty"`
	Slug      string     `json:"slug,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Excerpt   string     `json:"excerpt"`
	Author    string     `json:"author"`
	Category  string     `json:"category"`
	Image     string     `json:"image"`
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (b Blog) EntityID() string {
	if b.ID != "" {
		return b.ID
	}
	return b.AltID
}

// Published returns the first known timestamp of the post.
func (b Blog) Published() time.Time {
	for _, t := range []*time.Time{b.Date, b.CreatedAt, b.UpdatedAt} {
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}

type Gallery struct {
	ID            string     `json:"_id,omitempty"`
	Slug          string     `json:"slug,omitempty"`
	Name          string     `json:"name"`
	Location      string     `json:"location"`
	PassengerName string     `json:"passengerName"`
	Story         string     `json:"story"`
	Images        []Image    `json:"images,omitempty"`
	Status        bool       `json:"status"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func (g Gallery) EntityID() string { return g.ID }

type Contact struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    string     `json:"status,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (c Contact) EntityID() string { return c.ID }

type Review struct {
	ID        string     `json:"_id,omitempty"`
	UserName  string     `json:"userName"`
	Email     string     `json:"email,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	Status    string     `json:"status,omitempty"`
	PackageID string     `json:"packageId,omitempty"`
	PlaceID   string     `json:"placeId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (r Review) EntityID() string { return r.ID }

type Admin struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
