package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is the organisation whose public reputation is tracked.
// Each company has exactly one owning user.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_companies_owner_name" json:"name"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;unique;uniqueIndex:idx_companies_owner_name" json:"owner_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Company model.
func (Company) TableName() string {
	return "companies"
}
