package repositories

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoFindOptions(opts ListOptions) *options.FindOptions {
	fo := options.Find().SetSort(bson.D{{Key: "_id", Value: opts.sortDirection()}})
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	return fo
}
