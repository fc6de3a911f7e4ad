package reportstore

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/ykhdr/hashprobe/internal/messages/report"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ReportCollection = "reports"
)

var NotFoundErr = errors.New("report not found")

type ReportStore interface {
	Get(ctx context.Context, id report.Id) (*report.Info, error)
	List(ctx context.Context) ([]*report.Info, error)
	Save(ctx context.Context, r *report.Info) error
}

// reportStore caches reports in memory and mirrors them to MongoDB when a
// database is given.
type reportStore struct {
	data     map[report.Id]*report.Info
	database *mongo.Database
	m        sync.RWMutex
}

// NewReportStore returns a store backed by database, or an in-memory store
// when database is nil.
func NewReportStore(database *mongo.Database) ReportStore {
	return &reportStore{
		data:     make(map[report.Id]*report.Info),
		database: database,
	}
}

func (s *reportStore) Get(ctx context.Context, id report.Id) (*report.Info, error) {
	s.m.RLock()
	r, exists := s.data[id]
	s.m.RUnlock()
	if exists {
		return r.Copy(), nil
	}
	if s.database == nil {
		return nil, NotFoundErr
	}
	var found report.Info
	err := s.database.Collection(ReportCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&found)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NotFoundErr
		}
		return nil, errors.Wrap(err, "error loading report")
	}
	s.m.Lock()
	s.data[id] = found.Copy()
	s.m.Unlock()
	return &found, nil
}

// List returns reports newest first.
func (s *reportStore) List(ctx context.Context) ([]*report.Info, error) {
	if s.database != nil {
		return s.listDatabase(ctx)
	}
	s.m.RLock()
	defer s.m.RUnlock()
	reports := make([]*report.Info, 0, len(s.data))
	for _, r := range s.data {
		reports = append(reports, r.Copy())
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (s *reportStore) listDatabase(ctx context.Context) ([]*report.Info, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.database.Collection(ReportCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "error listing reports")
	}
	var reports []*report.Info
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, errors.Wrap(err, "error decoding reports")
	}
	return reports, nil
}

func (s *reportStore) Save(ctx context.Context, r *report.Info) error {
	if r.ID == "" {
		return errors.New("report has no id")
	}
	s.m.Lock()
	s.data[r.ID] = r.Copy()
	s.m.Unlock()
	if s.database == nil {
		return nil
	}
	filter := bson.M{"_id": r.ID}
	_, err := s.database.Collection(ReportCollection).
		ReplaceOne(ctx, filter, r.Copy(), options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, "error saving report")
	}
	return nil
}
