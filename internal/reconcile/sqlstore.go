package reconcile

import (
	"context"
	"fmt"

	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"gorm.io/gorm"
)

// SQLStore reads the relational store through the same gorm models the sync
// pipeline writes.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore returns a Store over db.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Name() string {
	return "relational"
}

func (s *SQLStore) CategoryNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Category{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	return names, nil
}

func (s *SQLStore) TagNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.Tag{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}

	return names, nil
}

func (s *SQLStore) LineItemCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.LineItem{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting line items: %w", err)
	}

	return count, nil
}

func (s *SQLStore) LineItems(ctx context.Context, limit int) ([]LineItem, error) {
	query := s.db.WithContext(ctx).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.LineItem
	err := query.Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("reading line items: %w", err)
	}

	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toLineItem(row))
	}

	return items, nil
}

func (s *SQLStore) LineItemsByID(ctx context.Context, ids []string) (map[string]LineItem, error) {
	var rows []models.LineItem
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("reading line items by id: %w", err)
	}

	items := make(map[string]LineItem, len(rows))
	for _, row := range rows {
		items[row.ID] = toLineItem(row)
	}

	return items, nil
}

func (s *SQLStore) Events(ctx context.Context) ([]Event, error) {
	var rows []models.Event
	err := s.db.WithContext(ctx).Preload("Category").Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		var lineItemIDs []string
		err := s.db.WithContext(ctx).Model(&models.EventLineItem{}).
			Where("event_id = ?", row.ID).
			Order("line_item_id").
			Pluck("line_item_id", &lineItemIDs).Error
		if err != nil {
			return nil, fmt.Errorf("reading line item junctions for event %s: %w", row.ID, err)
		}

		var tagNames []string
		err = s.db.WithContext(ctx).Model(&models.EventTag{}).
			Joins("JOIN tags ON tags.id = event_tags.tag_id").
			Where("event_tags.event_id = ?", row.ID).
			Order("tags.name").
			Pluck("tags.name", &tagNames).Error
		if err != nil {
			return nil, fmt.Errorf("reading tag junctions for event %s: %w", row.ID, err)
		}

		events = append(events, Event{
			ID:          row.ID,
			Name:        row.Name,
			Category:    row.Category.Name,
			LineItemIDs: lineItemIDs,
			TagNames:    tagNames,
		})
	}

	return events, nil
}

func (s *SQLStore) AccountSources(ctx context.Context) ([]string, error) {
	var sources []string
	err := s.db.WithContext(ctx).Model(&models.IntegrationAccount{}).Order("source").Pluck("source", &sources).Error
	if err != nil {
		return nil, fmt.Errorf("reading integration accounts: %w", err)
	}

	return sources, nil
}

func (s *SQLStore) UserNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).Model(&models.User{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("reading users: %w", err)
	}

	return names, nil
}

func toLineItem(row models.LineItem) LineItem {
	return LineItem{
		ID:               row.ID,
		Date:             row.Date,
		ResponsibleParty: row.ResponsibleParty,
		PaymentMethod:    row.PaymentMethod,
		Description:      row.Description,
		Amount:           row.Amount,
		Source:           string(row.Source),
		SourceID:         row.SourceID,
	}
}
