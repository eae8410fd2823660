package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DocumentStore reads the legacy document store. It is read-only: all writes
// to the relational store go through the ledger package, so no
// reconciliation-specific write path can diverge from normal behavior.
type DocumentStore struct {
	db *mongo.Database
}

// NewDocumentStore returns a Store over the legacy database.
func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Name() string {
	return "legacy"
}

// Document shapes as the legacy application wrote them. Amounts are floats
// there; they are converted to decimals for comparison.
type lineItemDocument struct {
	ID               string  `bson:"_id"`
	Date             int64   `bson:"date"`
	ResponsibleParty string  `bson:"responsible_party"`
	PaymentMethod    string  `bson:"payment_method"`
	Description      string  `bson:"description"`
	Amount           float64 `bson:"amount"`
	Source           string  `bson:"source"`
	SourceID         string  `bson:"source_id"`
}

type eventDocument struct {
	ID        string   `bson:"_id"`
	Name      string   `bson:"name"`
	Category  string   `bson:"category"`
	LineItems []string `bson:"line_items"`
	Tags      []string `bson:"tags"`
}

type namedDocument struct {
	Name string `bson:"name"`
}

func (s *DocumentStore) CategoryNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, "categories")
}

func (s *DocumentStore) TagNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, "tags")
}

func (s *DocumentStore) LineItemCount(ctx context.Context) (int64, error) {
	count, err := s.db.Collection("line_items").CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("counting line items: %w", err)
	}

	return count, nil
}

func (s *DocumentStore) LineItems(ctx context.Context, limit int) ([]LineItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := s.db.Collection("line_items").Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("reading line items: %w", err)
	}

	var documents []lineItemDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decoding line items: %w", err)
	}

	items := make([]LineItem, 0, len(documents))
	for _, document := range documents {
		items = append(items, documentToLineItem(document))
	}

	return items, nil
}

func (s *DocumentStore) LineItemsByID(ctx context.Context, ids []string) (map[string]LineItem, error) {
	cursor, err := s.db.Collection("line_items").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("reading line items by id: %w", err)
	}

	var documents []lineItemDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decoding line items: %w", err)
	}

	items := make(map[string]LineItem, len(documents))
	for _, document := range documents {
		items[document.ID] = documentToLineItem(document)
	}

	return items, nil
}

func (s *DocumentStore) Events(ctx context.Context) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.db.Collection("events").Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	var documents []eventDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}

	events := make([]Event, 0, len(documents))
	for _, document := range documents {
		sort.Strings(document.LineItems)
		sort.Strings(document.Tags)

		events = append(events, Event{
			ID:          document.ID,
			Name:        document.Name,
			Category:    document.Category,
			LineItemIDs: document.LineItems,
			TagNames:    document.Tags,
		})
	}

	return events, nil
}

func (s *DocumentStore) AccountSources(ctx context.Context) ([]string, error) {
	cursor, err := s.db.Collection("accounts").Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}

	var documents []struct {
		Source string `bson:"source"`
	}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decoding accounts: %w", err)
	}

	sources := make([]string, 0, len(documents))
	for _, document := range documents {
		sources = append(sources, document.Source)
	}
	sort.Strings(sources)

	return sources, nil
}

func (s *DocumentStore) UserNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, "users")
}

// names collects the name field of every document in the collection, sorted.
func (s *DocumentStore) names(ctx context.Context, collection string) ([]string, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}

	var documents []namedDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", collection, err)
	}

	names := make([]string, 0, len(documents))
	for _, document := range documents {
		names = append(names, document.Name)
	}
	sort.Strings(names)

	return names, nil
}

func documentToLineItem(document lineItemDocument) LineItem {
	return LineItem{
		ID:               document.ID,
		Date:             document.Date,
		ResponsibleParty: document.ResponsibleParty,
		PaymentMethod:    document.PaymentMethod,
		Description:      document.Description,
		Amount:           decimal.NewFromFloat(document.Amount),
		Source:           document.Source,
		SourceID:         document.SourceID,
	}
}
