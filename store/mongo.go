package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-api/models"
)

// NewMongoStore wires the entity stores over collections of the given
// database. The client is shared; the driver handles concurrent use.
func NewMongoStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		Users:    &mongoUsers{col: db.Collection("users")},
		Products: &mongoProducts{col: db.Collection("products")},
		Orders:   &mongoOrders{col: db.Collection("orders")},
		Reviews:  &mongoReviews{col: db.Collection("reviews")},
	}
}

// newestFirst sorts by descending _id; ObjectIDs are time-prefixed so this
// is insertion order, newest first.
var newestFirst = options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})

type mongoUsers struct {
	col *mongo.Collection
}

func (s *mongoUsers) Upsert(ctx context.Context, email string, profile models.Profile) (bool, error) {
	update := bson.M{
		"$setOnInsert": bson.M{"email": email, "role": models.RoleUser},
	}
	// Mongo rejects an empty $set document.
	if set := profileSet(profile); len(set) > 0 {
		update["$set"] = set
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (s *mongoUsers) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) All(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *mongoUsers) UpdateProfile(ctx context.Context, email string, profile models.Profile) error {
	set := profileSet(profile)
	if len(set) == 0 {
		_, err := s.ByEmail(ctx, email)
		return err
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) GrantAdmin(ctx context.Context, email string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) Delete(ctx context.Context, email string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// profileSet builds the $set document for a profile patch. Only the email
// key and role are off limits; everything else on the profile is fair game.
func profileSet(p models.Profile) bson.M {
	set := bson.M{}
	if p.Name != "" {
		set["name"] = p.Name
	}
	if p.Address != "" {
		set["address"] = p.Address
	}
	if p.Phone != "" {
		set["phone"] = p.Phone
	}
	if p.Company != "" {
		set["company"] = p.Company
	}
	if p.Education != "" {
		set["education"] = p.Education
	}
	if p.Image != "" {
		set["image"] = p.Image
	}
	return set
}

type mongoProducts struct {
	col *mongo.Collection
}

func (s *mongoProducts) Insert(ctx context.Context, p *models.Product) (primitive.ObjectID, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *mongoProducts) All(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *mongoProducts) ByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *mongoProducts) AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// Conditional update: only matches while enough stock remains, so
		// concurrent decrements cannot drive the quantity negative.
		filter["availableQty"] = bson.M{"$gte": -delta}
	}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"availableQty": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.ByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

func (s *mongoProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoOrders struct {
	col *mongo.Collection
}

func (s *mongoOrders) Insert(ctx context.Context, o *models.Order) (primitive.ObjectID, error) {
	o.Status = models.StatusCreated
	o.IsPaid = false
	o.Shipment = false
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *mongoOrders) ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *mongoOrders) ByBuyer(ctx context.Context, buyer string) ([]models.Order, error) {
	return s.find(ctx, bson.M{"buyer": buyer})
}

func (s *mongoOrders) All(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoOrders) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *mongoOrders) MarkAwaitingPayment(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "status": models.StatusCreated}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": models.StatusAwaitingPayment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Already advanced, or gone. Only the latter is an error.
		_, err := s.ByID(ctx, id)
		return err
	}
	return nil
}

func (s *mongoOrders) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error {
	filter := bson.M{"_id": id, "status": bson.M{"$ne": models.StatusShipped}}
	update := bson.M{"$set": bson.M{
		"status":        models.StatusPaid,
		"isPaid":        true,
		"transactionId": transactionID,
	}}
	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.ByID(ctx, id); err != nil {
			return err
		}
		return ErrOrderShipped
	}
	return nil
}

func (s *mongoOrders) MarkShipped(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "status": models.StatusPaid}
	update := bson.M{"$set": bson.M{
		"status":   models.StatusShipped,
		"shipment": true,
	}}
	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		order, err := s.ByID(ctx, id)
		if err != nil {
			return err
		}
		if order.Status == models.StatusShipped {
			return nil
		}
		return ErrOrderNotPaid
	}
	return nil
}

func (s *mongoOrders) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoReviews struct {
	col *mongo.Collection
}

func (s *mongoReviews) Insert(ctx context.Context, r *models.Review) (primitive.ObjectID, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, r)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (s *mongoReviews) All(ctx context.Context) ([]models.Review, error) {
	cursor, err := s.col.Find(ctx, bson.M{}, newestFirst)
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
