package carbon

import (
	"context"
	"errors"
	"fmt"
	"time"

	model "github.com/glkeru/carbon/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RulesDB struct {
	mgo  *mongo.Client
	coll *mongo.Collection
}

func NewRulesDB(uri string, database string) (*RulesDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if uri == "" {
		return nil, fmt.Errorf("env CARBON_MONGO is not set")
	}

	options := options.Client().ApplyURI("mongodb://" + uri)
	client, err := mongo.Connect(ctx, options)
	if err != nil {
		return nil, err
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}
	coll := client.Database(database).Collection("rules")

	// одно правило на активность
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "activity", Value: 1}},
		Options: optionsUnique(),
	})
	if err != nil {
		return nil, err
	}

	return &RulesDB{client, coll}, nil
}

func optionsUnique() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

func (r RulesDB) Close(ctx context.Context) error {
	return r.mgo.Disconnect(ctx)
}

func (r RulesDB) GetAllRules(ctx context.Context) ([]model.EarnRule, error) {
	var rules []model.EarnRule
	result, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "activity", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer result.Close(ctx)

	for result.Next(ctx) {
		var rule model.EarnRule
		err := result.Decode(&rule)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, result.Err()
}

func (r RulesDB) GetRule(ctx context.Context, activity string) (rule model.EarnRule, err error) {
	filter := bson.M{"activity": activity}
	err = r.coll.FindOne(ctx, filter).Decode(&rule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rule, fmt.Errorf("rule %s: %w", activity, model.ErrNotFound)
	}
	return rule, err
}

func (r RulesDB) SaveRule(ctx context.Context, rule model.EarnRule) (model.EarnRule, error) {
	// если ID пустой, значит новое правило
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
		_, err := r.coll.InsertOne(ctx, rule)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return rule, fmt.Errorf("rule %s already exists: %w", rule.Activity, model.ErrValidation)
			}
			return rule, err
		}
		return rule, nil
	}
	// Обновление
	filter := bson.M{"id": rule.ID}
	result, err := r.coll.ReplaceOne(ctx, filter, rule)
	if err != nil {
		// переименование в уже занятую activity
		if mongo.IsDuplicateKeyError(err) {
			return rule, fmt.Errorf("rule %s already exists: %w", rule.Activity, model.ErrValidation)
		}
		return rule, err
	}
	if result.MatchedCount == 0 {
		return rule, fmt.Errorf("rule %s: %w", rule.ID, model.ErrNotFound)
	}
	return rule, nil
}
