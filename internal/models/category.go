package models

import (
	"strings"

	"github.com/neerajsamtani/budget.rip-sub001/internal/ids"
	"gorm.io/gorm"
)

// Category is a classification label for events. Categories are seeded by an
// administrator and deliberately never created on the fly, so a typo in an
// event submission cannot silently grow the category set.
type Category struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	Name string `json:"name" gorm:"uniqueIndex"`
}

func (Category) Self() string {
	return "Category"
}

func (c *Category) BeforeCreate(_ *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = ids.New(ids.PrefixCategory)
	}
	return nil
}

func (c *Category) BeforeSave(_ *gorm.DB) (err error) {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// Tag is a free-form label attached to events, created on demand.
type Tag struct {
	ID string `json:"id" gorm:"primaryKey"`
	Timestamps
	Name string `json:"name" gorm:"uniqueIndex"`
}

func (Tag) Self() string {
	return "Tag"
}

func (t *Tag) BeforeCreate(_ *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = ids.New(ids.PrefixTag)
	}
	return nil
}

func (t *Tag) BeforeSave(_ *gorm.DB) (err error) {
	t.Name = strings.TrimSpace(t.Name)
	return nil
}
