package models

import (
	"strings"
	"time"

	"github.com/neerajsamtani/budget.rip-sub001/internal/ids"
	"gorm.io/gorm"
)

// IntegrationAccount is one linked external account. The unique index on
// Source enforces that only one account per external source type can be
// linked.
type IntegrationAccount struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	Source          Source     `json:"source" gorm:"uniqueIndex"`
	DisplayName     string     `json:"display_name"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

func (IntegrationAccount) Self() string {
	return "Integration Account"
}

func (a *IntegrationAccount) BeforeCreate(_ *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = ids.New(ids.PrefixIntegrationAcct)
	}
	return nil
}

func (a *IntegrationAccount) BeforeSave(_ *gorm.DB) (err error) {
	a.DisplayName = strings.TrimSpace(a.DisplayName)
	return nil
}

// User is a reference-data row carried through the migration. The core never
// creates users, it only compares them between the stores.
type User struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	Name string `json:"name" gorm:"uniqueIndex"`
}

func (User) Self() string {
	return "User"
}

func (u *User) BeforeCreate(_ *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = ids.New(ids.PrefixUser)
	}
	return nil
}
