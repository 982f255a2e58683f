package family

import "time"

// RelationshipType is how two Sims are related.
type RelationshipType string

const (
	Partner  RelationshipType = "partner"
	Spouse   RelationshipType = "spouse"
	Parent   RelationshipType = "parent"
	Child    RelationshipType = "child"
	Sibling  RelationshipType = "sibling"
	Friend   RelationshipType = "friend"
	Enemy    RelationshipType = "enemy"
	Roommate RelationshipType = "roommate"
)

// RelationshipTypes lists the accepted relationship types.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{Partner, Spouse, Parent, Child, Sibling, Friend, Enemy, Roommate}
}

// World is a save's neighbourhood world, such as Willow Creek.
type World struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description,omitempty" validate:"max=1000"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

// House is a household lot in a world.
type House struct {
	ID          string    `json:"id,omitempty"`
	WorldID     string    `json:"worldId" validate:"required"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description,omitempty" validate:"max=1000"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Sim is one family member. Labels are stored as read or entered, normally
// in Swedish.
type Sim struct {
	ID         string         `json:"id,omitempty"`
	HouseID    string         `json:"houseId" validate:"required"`
	Name       string         `json:"name" validate:"required,max=100"`
	Age        string         `json:"age,omitempty"`
	Traits     []string       `json:"traits" validate:"max=3,dive,required"`
	Aspiration string         `json:"aspiration,omitempty"`
	Career     string         `json:"career,omitempty"`
	Skills     map[string]int `json:"skills" validate:"dive,keys,required,endkeys,gte=1,lte=15"`
	Notes      string         `json:"notes,omitempty" validate:"max=5000"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Relationship links two Sims. Parent means Sim1 is the parent of Sim2.
type Relationship struct {
	ID        string           `json:"id,omitempty"`
	Sim1ID    string           `json:"sim1Id" validate:"required"`
	Sim2ID    string           `json:"sim2Id" validate:"required,nefield=Sim1ID"`
	Type      RelationshipType `json:"type" validate:"required,oneof=partner spouse parent child sibling friend enemy roommate"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Involves reports whether simID is either side of the relationship.
func (r Relationship) Involves(simID string) bool {
	return r.Sim1ID == simID || r.Sim2ID == simID
}

// DiaryEntry is a dated note about a Sim. Date is YYYY-MM-DD.
type DiaryEntry struct {
	ID        string    `json:"id,omitempty"`
	SimID     string    `json:"simId" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Title     string    `json:"title,omitempty" validate:"max=200"`
	Text      string    `json:"text" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w *World) setID(id string)        { w.ID = id }
func (h *House) setID(id string)        { h.ID = id }
func (s *Sim) setID(id string)          { s.ID = id }
func (r *Relationship) setID(id string) { r.ID = id }
func (d *DiaryEntry) setID(id string)   { d.ID = id }

// WorldPatch changes the non-nil fields of a World.
type WorldPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Order       *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
}

// HousePatch changes the non-nil fields of a House.
type HousePatch struct {
	WorldID     *string `json:"worldId,omitempty" validate:"omitempty,min=1"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// SimPatch changes the non-nil fields of a Sim. Traits and Skills replace
// the stored values as a whole; point them at an empty value to clear them.
type SimPatch struct {
	HouseID    *string         `json:"houseId,omitempty" validate:"omitempty,min=1"`
	Name       *string         `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Age        *string         `json:"age,omitempty"`
	Traits     *[]string       `json:"traits,omitempty" validate:"omitempty,max=3,dive,required"`
	Aspiration *string         `json:"aspiration,omitempty"`
	Career     *string         `json:"career,omitempty"`
	Skills     *map[string]int `json:"skills,omitempty" validate:"omitempty,dive,keys,required,endkeys,gte=1,lte=15"`
	Notes      *string         `json:"notes,omitempty" validate:"omitempty,max=5000"`
}
