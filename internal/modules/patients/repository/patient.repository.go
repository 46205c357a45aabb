package repository

import (
	"context"
	"fmt"
	"time"

	"clinic-core/internal/infrastructure/database/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const patientsCollection = "patients"

// Note is a patient note embedded in its parent document. Notes never exist
// outside their patient.
type Note struct {
	ID      string    `bson:"id"`
	Title   string    `bson:"title"`
	Content string    `bson:"content"`
	Date    time.Time `bson:"date"`
}

// Patient is the persisted patient document, notes embedded.
type Patient struct {
	ID            string     `bson:"_id"`
	FirstName     string     `bson:"firstName"`
	LastName      string     `bson:"lastName"`
	Phone         string     `bson:"phone"`
	Gender        string     `bson:"gender"`
	Address       *string    `bson:"address,omitempty"`
	BirthDate     *time.Time `bson:"birthDate,omitempty"`
	MaritalStatus *string    `bson:"maritalStatus,omitempty"`
	Occupation    *string    `bson:"occupation,omitempty"`
	VisitDate     *time.Time `bson:"visitDate,omitempty"`
	Vaccination   []string   `bson:"vaccination"`
	Notes         []Note     `bson:"notes"`
	CreatedAt     time.Time  `bson:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt"`
}

// StatsResult is the raw output of the stats aggregation.
type StatsResult struct {
	Total      int64    `bson:"total"`
	Male       int64    `bson:"male"`
	Female     int64    `bson:"female"`
	Children   int64    `bson:"children"`
	AverageAge *float64 `bson:"averageAge"`
}

type PatientRepository struct {
	db *mongodb.Client
}

// NewPatientRepository creates a new patient repository.
func NewPatientRepository(db *mongodb.Client) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) collection() *mongo.Collection {
	return r.db.Collection(patientsCollection)
}

// Insert persists a new patient document.
func (r *PatientRepository) Insert(ctx context.Context, patient *Patient) error {
	if _, err := r.collection().InsertOne(ctx, patient); err != nil {
		return fmt.Errorf("failed to insert patient: %w", err)
	}
	return nil
}

// FindByID returns the patient or (nil, nil) when no patient matches.
func (r *PatientRepository) FindByID(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find patient: %w", err)
	}
	return &patient, nil
}

// FindByPhone returns the first patient whose phone matches the digits of
// the input, or (nil, nil) when none matches.
func (r *PatientRepository) FindByPhone(ctx context.Context, phone string) (*Patient, error) {
	var patient Patient
	err := r.collection().FindOne(ctx, BuildPhoneFilter(phone)).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find patient by phone: %w", err)
	}
	return &patient, nil
}

// PhoneExists reports whether another patient (excluding excludeID when
// non-empty) already holds the exact phone number.
func (r *PatientRepository) PhoneExists(ctx context.Context, phone, excludeID string) (bool, error) {
	filter := bson.M{"phone": phone}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.collection().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}
	return count > 0, nil
}

// Update applies a partial $set and refreshes updatedAt, returning the
// updated document or (nil, nil) when the patient does not exist.
func (r *PatientRepository) Update(ctx context.Context, id string, set bson.M) (*Patient, error) {
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var patient Patient
	err := r.collection().
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return &patient, nil
}

// Delete removes a patient; its embedded notes go with the document.
func (r *PatientRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete patient: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// Search runs a filtered, paginated query sorted by creation time
// descending with _id ascending as tie-break, and returns the page plus
// the total matching count.
func (r *PatientRepository) Search(ctx context.Context, filter bson.M, limit, offset int) ([]Patient, int64, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, 0, fmt.Errorf("failed to decode patients: %w", err)
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	return patients, total, nil
}

// PushNote appends a note and refreshes updatedAt, returning the updated
// document or (nil, nil) when the patient does not exist.
func (r *PatientRepository) PushNote(ctx context.Context, id string, note Note) (*Patient, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	update := bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	var patient Patient
	err := r.collection().
		FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).
		Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return &patient, nil
}

// PullNote removes a note by id and refreshes updatedAt. The filter
// requires the note to be present, so (nil, nil) means patient or note
// missing; the caller distinguishes the two.
func (r *PatientRepository) PullNote(ctx context.Context, id, noteID string) (*Patient, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	filter := bson.M{"_id": id, "notes.id": noteID}
	update := bson.M{
		"$pull": bson.M{"notes": bson.M{"id": noteID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	var patient Patient
	err := r.collection().
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to remove note: %w", err)
	}
	return &patient, nil
}

// Stats runs the aggregate counts in one pipeline. averageAge is computed
// from birthDate with $dateDiff, so patients without a birth date are
// skipped by $avg rather than counted as zero.
func (r *PatientRepository) Stats(ctx context.Context) (*StatsResult, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "male", Value: genderCounter("male")},
			{Key: "female", Value: genderCounter("female")},
			{Key: "children", Value: genderCounter("child")},
			{Key: "averageAge", Value: bson.D{{Key: "$avg", Value: bson.D{
				{Key: "$dateDiff", Value: bson.D{
					{Key: "startDate", Value: "$birthDate"},
					{Key: "endDate", Value: "$$NOW"},
					{Key: "unit", Value: "year"},
				}},
			}}}},
		}}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []StatsResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}

	if len(results) == 0 {
		return &StatsResult{}, nil
	}
	return &results[0], nil
}

// CountRecentVisits counts patients whose visit date falls within the last
// 30 days.
func (r *PatientRepository) CountRecentVisits(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -30)

	count, err := r.collection().CountDocuments(ctx, bson.M{
		"visitDate": bson.M{"$gte": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count recent visits: %w", err)
	}
	return count, nil
}

// IsDuplicateKey reports whether err is a unique-index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func genderCounter(gender string) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{
		{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$gender", gender}}},
			1,
			0,
		}},
	}}}
}
